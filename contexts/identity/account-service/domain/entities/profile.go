package entities

import "time"

// Profile is the public account view: handle data joined with the
// reputation columns the community ledger maintains on the same row.
type Profile struct {
	AccountID    string
	Username     string
	DisplayName  string
	Exempt       bool
	Score        int
	IsAdmin      bool
	IsSuperAdmin bool
	LastActivity time.Time
	JoinedAt     time.Time
}
