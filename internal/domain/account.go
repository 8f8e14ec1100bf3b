package domain

import "time"

// AccountType distinguishes a personal profile from a company page.
type AccountType string

const (
	AccountTypePersonal AccountType = "personal"
	AccountTypeCompany  AccountType = "company"
)

// Account is a connected LinkedIn account with its OAuth tokens.
type Account struct {
	ID             int64
	AccountType    AccountType
	DisplayName    string
	MemberURN      string
	AccessToken    string
	RefreshToken   string
	TokenExpiresAt *time.Time
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
