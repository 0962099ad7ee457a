package entities

import "time"

// Admin action vocabulary. Unknown actions are rejected before any state
// changes.
const (
	ActionDeletePost  = "delete_post"
	ActionDeleteReply = "delete_reply"
	ActionBanUser     = "ban_user"
	ActionWarnUser    = "warn_user"
)

func IsValidAction(action string) bool {
	switch action {
	case ActionDeletePost, ActionDeleteReply, ActionBanUser, ActionWarnUser:
		return true
	}
	return false
}

// AdminReport is one audit row. Every executed admin action appends exactly
// one, whether or not the target still existed.
type AdminReport struct {
	ReportID  string
	Actor     string
	Action    string
	TargetID  string
	Note      string
	CreatedAt time.Time
}
