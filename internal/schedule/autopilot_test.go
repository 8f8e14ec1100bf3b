package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/reeloomstudios/postpilot/internal/domain"
)

type fakeFactory struct {
	draft *domain.Draft
	err   error
	calls int
	input string
}

func (f *fakeFactory) Generate(ctx context.Context, rawInput string) (*domain.Draft, error) {
	f.calls++
	f.input = rawInput
	return f.draft, f.err
}

type fakeAccountRepo struct {
	account *domain.Account
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeAccountRepo) GetByType(ctx context.Context, accountType domain.AccountType) (*domain.Account, error) {
	if f.account == nil {
		return nil, domain.ErrNotFound
	}
	return f.account, nil
}

func (f *fakeAccountRepo) ListActive(ctx context.Context) ([]domain.Account, error) {
	return nil, nil
}

func (f *fakeAccountRepo) Upsert(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAccountRepo) SetMemberURN(ctx context.Context, id int64, urn string) error {
	return errors.New("not implemented")
}

func TestAutopilotRunPublishesGeneratedDraft(t *testing.T) {
	publisher := &fakePublisher{publish: func(ctx context.Context, accountID int64, text string) (string, error) {
		return "urn:li:share:5", nil
	}}
	o, _, history := testOrchestrator(t, publisher)

	factory := &fakeFactory{draft: &domain.Draft{ID: 7, Hook: "h", Body: "b"}}
	accounts := &fakeAccountRepo{account: &domain.Account{ID: 1, AccountType: domain.AccountTypePersonal}}
	a := NewAutopilot(factory, o, accounts, testLogger())

	a.Run(context.Background())

	if factory.calls != 1 {
		t.Fatalf("factory calls = %d, want 1", factory.calls)
	}
	if factory.input != "" {
		t.Fatalf("factory input = %q, want empty (pipeline picks the topic)", factory.input)
	}
	// Fixed clock sits inside the default best window, so the tick publishes.
	if len(history.appended) != 1 {
		t.Fatalf("history rows = %d, want 1", len(history.appended))
	}
}

func TestAutopilotSkipsWithoutAccount(t *testing.T) {
	publisher := &fakePublisher{}
	o, _, _ := testOrchestrator(t, publisher)

	factory := &fakeFactory{draft: &domain.Draft{ID: 7}}
	a := NewAutopilot(factory, o, &fakeAccountRepo{}, testLogger())

	a.Run(context.Background())

	if factory.calls != 0 {
		t.Fatalf("factory calls = %d, want 0 when no account is connected", factory.calls)
	}
}

func TestAutopilotAbsorbsGenerationFailure(t *testing.T) {
	publisher := &fakePublisher{}
	o, _, history := testOrchestrator(t, publisher)

	factory := &fakeFactory{err: domain.ErrProviderUnavailable}
	accounts := &fakeAccountRepo{account: &domain.Account{ID: 1}}
	a := NewAutopilot(factory, o, accounts, testLogger())

	a.Run(context.Background())

	if publisher.calls != 0 {
		t.Fatalf("publisher calls = %d, want 0 after a failed generation", publisher.calls)
	}
	if len(history.appended) != 0 {
		t.Fatalf("history rows = %d, want 0", len(history.appended))
	}
}

func TestAutopilotRegisterRejectsBadSpec(t *testing.T) {
	s := NewScheduler(testLogger())
	defer s.Stop()
	a := NewAutopilot(&fakeFactory{}, nil, &fakeAccountRepo{}, testLogger())
	if err := a.Register(s, "not a cron spec"); err == nil {
		t.Fatal("Register accepted an invalid cron spec")
	}
}
