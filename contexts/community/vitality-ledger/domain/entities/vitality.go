package entities

import "time"

const (
	MinScore = 0
	MaxScore = 1_000_000
)

// Reason vocabulary for vitality log entries. Callers outside the ledger
// pass these labels with their deltas; ReasonSystem is the default when a
// caller supplies none.
const (
	ReasonSystem          = "system"
	ReasonPostCreated     = "post_created"
	ReasonReplyCreated    = "reply_created"
	ReasonReceivedLike    = "received_like"
	ReasonReceivedDislike = "received_dislike"
	ReasonReceivedUseful  = "received_useful"
	ReasonFollowed        = "followed"
	ReasonUnfollowed      = "unfollowed"
	ReasonWeeklyDecay     = "weekly_decay"
)

// Fixed reputation policy table.
const (
	DeltaPostCreated     = 2
	DeltaReplyCreated    = 1
	DeltaReceivedLike    = 2
	DeltaReceivedDislike = -2
	DeltaReceivedUseful  = 5
	DeltaFollowed        = 5
	DeltaUnfollowed      = -5
	DeltaWeeklyDecay     = -1
)

// Vitality is the tagged reputation state of an account. Exempt accounts
// (administrators) sit outside bounding and decay entirely; their score
// field is meaningless and must never be read as a finite number.
type Vitality struct {
	Exempt bool
	Score  int
}

func Normal(score int) Vitality {
	return Vitality{Score: Clamp(score)}
}

func Exempt() Vitality {
	return Vitality{Exempt: true}
}

// Apply returns the state after a delta. Exempt state is a fixed point.
func (v Vitality) Apply(delta int) Vitality {
	if v.Exempt {
		return v
	}
	return Vitality{Score: Clamp(v.Score + delta)}
}

func Clamp(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// LedgerEntry is one immutable audit record of a vitality change. Delta is
// the requested (pre-clamp) value; the account row holds the clamped score.
type LedgerEntry struct {
	EntryID   string
	AccountID string
	Delta     int
	Reason    string
	CreatedAt time.Time
}
