package domain

import "strings"

// Upload limits that depend on the account's Premium status.
const (
	UploadLimitPremium = 4 << 30
	UploadLimitRegular = 2 << 30
)

// Account is a snapshot of the authenticated Telegram user.
// The remote service owns the account; this is read-only.
type Account struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
	Phone     string
	Premium   bool
}

// DisplayName joins the first and last name.
func (a Account) DisplayName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Handle returns the @username or a placeholder when none is set.
func (a Account) Handle() string {
	if a.Username == "" {
		return "@no username"
	}
	return "@" + a.Username
}

// UploadLimit returns the largest file the account may upload, in bytes.
func (a Account) UploadLimit() int64 {
	if a.Premium {
		return UploadLimitPremium
	}
	return UploadLimitRegular
}

// Channel is a resolved broadcast channel or supergroup.
type Channel struct {
	ID    int64
	Title string
}
