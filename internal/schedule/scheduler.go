package schedule

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/reeloomstudios/postpilot/internal/infra"
)

// Scheduler holds timestamp-keyed one-shot callbacks and fires each at most
// once at or after its due time. Re-arming an id replaces the prior timer, so
// the same id is never armed twice; that replacement is also the only
// cancellation path. Recurring entries (the autopilot cadence) ride on an
// embedded cron instance.
type Scheduler struct {
	mu     sync.Mutex
	jobs   map[string]*armedJob
	cron   *cron.Cron
	logger infra.Logger
}

type armedJob struct {
	timer *time.Timer
	due   time.Time
}

// NewScheduler builds a stopped scheduler; call Start before arming cron
// entries. One-shot jobs may be armed at any point.
func NewScheduler(logger infra.Logger) *Scheduler {
	return &Scheduler{
		jobs:   make(map[string]*armedJob),
		cron:   cron.New(),
		logger: logger,
	}
}

// Start begins cron processing.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the cron loop and every armed one-shot timer.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, job := range s.jobs {
		job.timer.Stop()
		delete(s.jobs, id)
	}
	s.logger.Info().Msg("scheduler: stopped")
}

// Arm schedules fn to run once at the given time, replacing any prior timer
// armed under the same id. Past-due times fire immediately. The callback runs
// on its own goroutine; overlapping executions of different ids are fine.
func (s *Scheduler) Arm(id string, at time.Time, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prior, ok := s.jobs[id]; ok {
		prior.timer.Stop()
		delete(s.jobs, id)
	}

	delay := time.Until(at)
	if delay < 0 {
		delay = 0
	}
	job := &armedJob{due: at}
	job.timer = time.AfterFunc(delay, func() { s.fire(id, job, fn) })
	s.jobs[id] = job
	s.logger.Info().Str("job_id", id).Time("due", at).Msg("scheduler: job armed")
}

// fire runs a due job's callback. A timer replaced while its callback was
// already in flight must not remove the replacement entry, so the delete
// checks that the map still holds this job.
func (s *Scheduler) fire(id string, job *armedJob, fn func()) {
	s.mu.Lock()
	if s.jobs[id] == job {
		delete(s.jobs, id)
	}
	s.mu.Unlock()
	fn()
}

// Cancel stops an armed job. It reports whether a timer was actually removed.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return false
	}
	job.timer.Stop()
	delete(s.jobs, id)
	return true
}

// Due returns the due time of an armed job, if any.
func (s *Scheduler) Due(id string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return time.Time{}, false
	}
	return job.due, true
}

// ArmedCount reports how many one-shot jobs are currently armed.
func (s *Scheduler) ArmedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// AddCron registers a recurring entry with a standard cron spec.
func (s *Scheduler) AddCron(spec string, fn func()) (cron.EntryID, error) {
	return s.cron.AddFunc(spec, fn)
}
