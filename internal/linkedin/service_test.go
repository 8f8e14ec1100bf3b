package linkedin

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/reeloomstudios/postpilot/internal/domain"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

type fakeAccounts struct {
	byID   map[int64]*domain.Account
	setURN func(id int64, urn string) error
}

func (f *fakeAccounts) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	account, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return account, nil
}

func (f *fakeAccounts) GetByType(ctx context.Context, accountType domain.AccountType) (*domain.Account, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeAccounts) ListActive(ctx context.Context) ([]domain.Account, error) {
	return nil, nil
}

func (f *fakeAccounts) Upsert(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	return account, nil
}

func (f *fakeAccounts) SetMemberURN(ctx context.Context, id int64, urn string) error {
	if f.setURN != nil {
		return f.setURN(id, urn)
	}
	return nil
}

func testService(accounts *fakeAccounts, rt roundTripFunc) *Service {
	return NewService(accounts, Options{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURI:  "http://localhost/callback",
		HTTPClient:   &http.Client{Transport: rt},
	}, zerolog.New(io.Discard))
}

func TestPublishSkipsMissingAccount(t *testing.T) {
	s := testService(&fakeAccounts{byID: map[int64]*domain.Account{}}, func(r *http.Request) (*http.Response, error) {
		t.Fatal("no HTTP call expected without a usable account")
		return nil, nil
	})
	id, err := s.Publish(context.Background(), 1, "text")
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if id != "" {
		t.Fatalf("external id = %q, want empty for soft failure", id)
	}
}

func TestPublishSkipsAccountWithoutToken(t *testing.T) {
	accounts := &fakeAccounts{byID: map[int64]*domain.Account{
		1: {ID: 1, AccountType: domain.AccountTypePersonal},
	}}
	s := testService(accounts, func(r *http.Request) (*http.Response, error) {
		t.Fatal("no HTTP call expected without a token")
		return nil, nil
	})
	id, err := s.Publish(context.Background(), 1, "text")
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if id != "" {
		t.Fatalf("external id = %q, want empty", id)
	}
}

func TestPublishReturnsRestliID(t *testing.T) {
	accounts := &fakeAccounts{byID: map[int64]*domain.Account{
		1: {ID: 1, AccessToken: "tok", MemberURN: "urn:li:person:abc"},
	}}
	s := testService(accounts, func(r *http.Request) (*http.Response, error) {
		if !strings.HasSuffix(r.URL.Path, "/v2/ugcPosts") {
			t.Fatalf("path = %q, want ugcPosts", r.URL.Path)
		}
		if got := r.Header.Get("X-Restli-Protocol-Version"); got != "2.0.0" {
			t.Fatalf("X-Restli-Protocol-Version = %q, want 2.0.0", got)
		}
		header := make(http.Header)
		header.Set("X-Restli-Id", "urn:li:share:123")
		return &http.Response{StatusCode: http.StatusCreated, Body: io.NopCloser(strings.NewReader("{}")), Header: header}, nil
	})
	id, err := s.Publish(context.Background(), 1, "post text")
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if id != "urn:li:share:123" {
		t.Fatalf("external id = %q, want urn:li:share:123", id)
	}
}

func TestPublishResolvesAndPersistsURN(t *testing.T) {
	var persisted string
	accounts := &fakeAccounts{
		byID: map[int64]*domain.Account{
			1: {ID: 1, AccessToken: "tok"},
		},
		setURN: func(id int64, urn string) error {
			persisted = urn
			return nil
		},
	}
	s := testService(accounts, func(r *http.Request) (*http.Response, error) {
		if strings.HasSuffix(r.URL.Path, "/v2/userinfo") {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(`{"sub":"abc123"}`)),
				Header:     make(http.Header),
			}, nil
		}
		header := make(http.Header)
		header.Set("X-Restli-Id", "urn:li:share:9")
		return &http.Response{StatusCode: http.StatusCreated, Body: io.NopCloser(strings.NewReader("{}")), Header: header}, nil
	})
	id, err := s.Publish(context.Background(), 1, "text")
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if id != "urn:li:share:9" {
		t.Fatalf("external id = %q, want urn:li:share:9", id)
	}
	if persisted != "urn:li:person:abc123" {
		t.Fatalf("persisted urn = %q, want urn:li:person:abc123", persisted)
	}
}

func TestPublishRejectedShareIsSoftFailure(t *testing.T) {
	accounts := &fakeAccounts{byID: map[int64]*domain.Account{
		1: {ID: 1, AccessToken: "tok", MemberURN: "urn:li:person:abc"},
	}}
	s := testService(accounts, func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusUnauthorized, Body: io.NopCloser(strings.NewReader("{}")), Header: make(http.Header)}, nil
	})
	id, err := s.Publish(context.Background(), 1, "text")
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if id != "" {
		t.Fatalf("external id = %q, want empty for rejected share", id)
	}
}

func TestAuthorizationURLScopes(t *testing.T) {
	s := testService(&fakeAccounts{}, nil)

	personal := s.AuthorizationURL("personal", domain.AccountTypePersonal)
	if !strings.Contains(personal, "w_member_social") {
		t.Fatalf("personal url %q missing member scope", personal)
	}
	if strings.Contains(personal, "w_organization_social") {
		t.Fatal("personal url must not request organization scopes")
	}

	company := s.AuthorizationURL("company", domain.AccountTypeCompany)
	if !strings.Contains(company, "w_organization_social") {
		t.Fatalf("company url %q missing organization scope", company)
	}
}
