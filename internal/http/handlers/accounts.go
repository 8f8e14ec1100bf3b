package handlers

import (
	"net/http"
	"time"

	"github.com/reeloomstudios/postpilot/internal/domain"
)

type accountResponse struct {
	ID             int64      `json:"id"`
	AccountType    string     `json:"account_type"`
	DisplayName    string     `json:"display_name"`
	MemberURN      string     `json:"member_urn"`
	TokenExpiresAt *time.Time `json:"token_expires_at"`
	IsActive       bool       `json:"is_active"`
}

// ListAccounts returns connected accounts without their tokens.
func (a *App) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := a.Accounts.ListActive(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]accountResponse, 0, len(accounts))
	for _, acc := range accounts {
		items = append(items, accountResponse{
			ID:             acc.ID,
			AccountType:    string(acc.AccountType),
			DisplayName:    acc.DisplayName,
			MemberURN:      acc.MemberURN,
			TokenExpiresAt: acc.TokenExpiresAt,
			IsActive:       acc.IsActive,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// LinkedInAuthStart redirects the browser into the LinkedIn consent flow.
func (a *App) LinkedInAuthStart(w http.ResponseWriter, r *http.Request) {
	accountType := parseAccountType(r.URL.Query().Get("type"))
	// The account type rides along in state so the callback knows which
	// scopes were requested.
	authURL := a.LinkedIn.AuthorizationURL(string(accountType), accountType)
	http.Redirect(w, r, authURL, http.StatusTemporaryRedirect)
}

// LinkedInAuthCallback exchanges the authorization code and stores the account.
func (a *App) LinkedInAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "code is required")
		return
	}
	accountType := parseAccountType(r.URL.Query().Get("state"))

	account, err := a.LinkedIn.ExchangeCode(r.Context(), code, accountType, r.URL.Query().Get("name"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, accountResponse{
		ID:             account.ID,
		AccountType:    string(account.AccountType),
		DisplayName:    account.DisplayName,
		MemberURN:      account.MemberURN,
		TokenExpiresAt: account.TokenExpiresAt,
		IsActive:       account.IsActive,
	})
}

func parseAccountType(raw string) domain.AccountType {
	if raw == string(domain.AccountTypeCompany) {
		return domain.AccountTypeCompany
	}
	return domain.AccountTypePersonal
}
