package pipeline

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"

	"github.com/reeloomstudios/postpilot/internal/domain"
)

type fakeStage struct {
	name string
	run  func(ctx context.Context, pc Context) (Delta, error)
}

func (f *fakeStage) Name() string { return f.name }

func (f *fakeStage) Run(ctx context.Context, pc Context) (Delta, error) {
	return f.run(ctx, pc)
}

func discardLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestExecutorMergesDeltasInOrder(t *testing.T) {
	e := NewExecutor(discardLogger(),
		&fakeStage{name: "one", run: func(ctx context.Context, pc Context) (Delta, error) {
			return Delta{OptimizedInput: "optimized"}, nil
		}},
		&fakeStage{name: "two", run: func(ctx context.Context, pc Context) (Delta, error) {
			if pc.OptimizedInput != "optimized" {
				t.Fatalf("stage two saw OptimizedInput = %q, want %q", pc.OptimizedInput, "optimized")
			}
			return Delta{Strategy: &domain.Strategy{PostType: "story"}}, nil
		}},
	)
	out, err := e.Run(context.Background(), Context{RawInput: "seed"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if out.RawInput != "seed" || out.OptimizedInput != "optimized" || out.Strategy == nil {
		t.Fatalf("unexpected merged context: %+v", out)
	}
}

func TestExecutorFirstWriterWins(t *testing.T) {
	e := NewExecutor(discardLogger(),
		&fakeStage{name: "one", run: func(ctx context.Context, pc Context) (Delta, error) {
			return Delta{OptimizedInput: "first"}, nil
		}},
		&fakeStage{name: "two", run: func(ctx context.Context, pc Context) (Delta, error) {
			return Delta{OptimizedInput: "second"}, nil
		}},
	)
	out, err := e.Run(context.Background(), Context{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if out.OptimizedInput != "first" {
		t.Fatalf("OptimizedInput = %q, want %q (set-once merge)", out.OptimizedInput, "first")
	}
}

func TestExecutorShortCircuitsOnStageError(t *testing.T) {
	boom := errors.New("boom")
	thirdRan := false
	e := NewExecutor(discardLogger(),
		&fakeStage{name: "one", run: func(ctx context.Context, pc Context) (Delta, error) {
			return Delta{OptimizedInput: "kept"}, nil
		}},
		&fakeStage{name: "two", run: func(ctx context.Context, pc Context) (Delta, error) {
			return Delta{}, boom
		}},
		&fakeStage{name: "three", run: func(ctx context.Context, pc Context) (Delta, error) {
			thirdRan = true
			return Delta{}, nil
		}},
	)
	out, err := e.Run(context.Background(), Context{})
	if err == nil {
		t.Fatal("Run returned nil error, want stage failure")
	}
	if thirdRan {
		t.Fatal("stage three ran after a failure")
	}
	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("error %T, want *StageError", err)
	}
	if stageErr.Stage != "two" {
		t.Fatalf("Stage = %q, want %q", stageErr.Stage, "two")
	}
	if !errors.Is(err, boom) {
		t.Fatal("StageError does not unwrap to the cause")
	}
	if out.OptimizedInput != "kept" {
		t.Fatalf("accumulated context lost earlier delta: %+v", out)
	}
}

func TestInsightStageDegradesOnProviderError(t *testing.T) {
	stage := &insightStage{
		provider: failingInsights{},
		logger:   discardLogger(),
	}
	delta, err := stage.Run(context.Background(), Context{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if delta.Summary == nil || !delta.Summary.IsZero() {
		t.Fatalf("Summary = %+v, want empty summary", delta.Summary)
	}
}

type failingInsights struct{}

func (failingInsights) PerformanceInsights(ctx context.Context) (domain.PerformanceSummary, error) {
	return domain.PerformanceSummary{}, errors.New("no history")
}

func TestRenderAnalytics(t *testing.T) {
	got := renderAnalytics(domain.PerformanceSummary{
		BestDays:        []string{"Tuesday", "Thursday"},
		BestTimeWindows: []string{"08:00-10:00"},
		IdealLength:     "short",
		HookPattern:     "question",
	})
	want := "Best days: Tuesday, Thursday. Best times: 08:00-10:00. Ideal length: short. Hook style: question."
	if got != want {
		t.Fatalf("renderAnalytics = %q, want %q", got, want)
	}
}
