// Package linkedin implements OAuth connection and UGC publishing against
// the LinkedIn API.
package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/reeloomstudios/postpilot/internal/domain"
	"github.com/reeloomstudios/postpilot/internal/infra"
)

const (
	authURL       = "https://www.linkedin.com/oauth/v2/authorization"
	tokenURL      = "https://www.linkedin.com/oauth/v2/accessToken"
	apiBase       = "https://api.linkedin.com"
	restliVersion = "2.0.0"
)

// Options configures the LinkedIn service.
type Options struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	HTTPClient   *http.Client
}

// Service connects accounts and publishes posts. Publish never raises for a
// failed post: soft failures (missing account, no token, HTTP error) come
// back as an empty external id so the orchestrator can record them as failed
// history without losing the job.
type Service struct {
	accounts     domain.AccountRepository
	client       *http.Client
	clientID     string
	clientSecret string
	redirectURI  string
	logger       infra.Logger
}

func NewService(accounts domain.AccountRepository, opts Options, logger infra.Logger) *Service {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Service{
		accounts:     accounts,
		client:       client,
		clientID:     opts.ClientID,
		clientSecret: opts.ClientSecret,
		redirectURI:  opts.RedirectURI,
		logger:       logger,
	}
}

var _ domain.SocialPublisher = (*Service)(nil)

// AuthorizationURL builds the OAuth consent URL for the given state.
func (s *Service) AuthorizationURL(state string, accountType domain.AccountType) string {
	scopes := []string{"openid", "profile", "email", "w_member_social", "r_member_social"}
	if accountType == domain.AccountTypeCompany {
		scopes = append(scopes, "w_organization_social", "r_organization_social")
	}
	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", s.clientID)
	params.Set("redirect_uri", s.redirectURI)
	params.Set("state", state)
	params.Set("scope", strings.Join(scopes, " "))
	return authURL + "?" + params.Encode()
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	Scope        string `json:"scope"`
}

// ExchangeCode trades an authorization code for tokens and upserts the
// account for its type.
func (s *Service) ExchangeCode(ctx context.Context, code string, accountType domain.AccountType, displayName string) (*domain.Account, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", s.redirectURI)
	form.Set("client_id", s.clientID)
	form.Set("client_secret", s.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("token exchange: status %d", resp.StatusCode)
	}

	var tokens tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("token exchange: decode: %w", err)
	}
	if tokens.AccessToken == "" {
		return nil, fmt.Errorf("token exchange: no access token in response")
	}

	var expiresAt *time.Time
	if tokens.ExpiresIn > 0 {
		t := time.Now().UTC().Truncate(time.Second).Add(time.Duration(tokens.ExpiresIn) * time.Second)
		expiresAt = &t
	}

	urn := s.memberURN(ctx, tokens.AccessToken)

	account := &domain.Account{
		AccountType:    accountType,
		DisplayName:    displayName,
		MemberURN:      urn,
		AccessToken:    tokens.AccessToken,
		RefreshToken:   tokens.RefreshToken,
		TokenExpiresAt: expiresAt,
		IsActive:       true,
	}
	return s.accounts.Upsert(ctx, account)
}

// memberURN resolves the author URN via OpenID Connect userinfo.
func (s *Service) memberURN(ctx context.Context, accessToken string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiBase+"/v2/userinfo", nil)
	if err != nil {
		return ""
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn().Err(err).Msg("linkedin: userinfo request failed")
		return ""
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		s.logger.Warn().Int("status", resp.StatusCode).Msg("linkedin: userinfo rejected")
		return ""
	}

	var payload struct {
		Sub string `json:"sub"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Sub == "" {
		return ""
	}
	if strings.HasPrefix(payload.Sub, "urn:") {
		return payload.Sub
	}
	return "urn:li:person:" + payload.Sub
}

type ugcShareRequest struct {
	Author          string         `json:"author"`
	LifecycleState  string         `json:"lifecycleState"`
	SpecificContent map[string]any `json:"specificContent"`
	Visibility      map[string]any `json:"visibility"`
}

// Publish creates a UGC post and returns its external id, or "" on any soft
// failure.
func (s *Service) Publish(ctx context.Context, accountID int64, text string) (string, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil || account.AccessToken == "" {
		s.logger.Warn().Int64("account_id", accountID).Msg("linkedin: publish skipped, no usable account")
		return "", nil
	}

	urn := account.MemberURN
	if urn == "" {
		urn = s.memberURN(ctx, account.AccessToken)
		if urn != "" {
			if err := s.accounts.SetMemberURN(ctx, account.ID, urn); err != nil {
				s.logger.Warn().Err(err).Int64("account_id", accountID).Msg("linkedin: persist urn failed")
			}
		}
	}
	if urn == "" {
		s.logger.Warn().Int64("account_id", accountID).Msg("linkedin: publish skipped, no author urn")
		return "", nil
	}

	payload := ugcShareRequest{
		Author:         urn,
		LifecycleState: "PUBLISHED",
		SpecificContent: map[string]any{
			"com.linkedin.ugc.ShareContent": map[string]any{
				"shareCommentary":    map[string]any{"text": text},
				"shareMediaCategory": "NONE",
			},
		},
		Visibility: map[string]any{"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC"},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		s.logger.Warn().Err(err).Msg("linkedin: encode share failed")
		return "", nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiBase+"/v2/ugcPosts", &buf)
	if err != nil {
		return "", nil
	}
	req.Header.Set("Authorization", "Bearer "+account.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Restli-Protocol-Version", restliVersion)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn().Err(err).Int64("account_id", accountID).Msg("linkedin: share request failed")
		return "", nil
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		s.logger.Warn().Int("status", resp.StatusCode).Int64("account_id", accountID).Msg("linkedin: share rejected")
		return "", nil
	}
	return resp.Header.Get("X-Restli-Id"), nil
}
