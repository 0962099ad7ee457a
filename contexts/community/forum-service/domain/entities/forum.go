package entities

import "time"

type Post struct {
	PostID    string
	Author    string
	Title     string
	Content   string
	CreatedAt time.Time
}

type Reply struct {
	ReplyID   string
	PostID    string
	Author    string
	Content   string
	CreatedAt time.Time
}

type TargetType string

const (
	TargetPost  TargetType = "post"
	TargetReply TargetType = "reply"
)

type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
	ReactionUseful  ReactionKind = "useful"
)

func IsValidReactionKind(kind ReactionKind) bool {
	switch kind {
	case ReactionLike, ReactionDislike, ReactionUseful:
		return true
	default:
		return false
	}
}

type Reaction struct {
	ReactionID string
	TargetType TargetType
	TargetID   string
	Author     string
	Kind       ReactionKind
	CreatedAt  time.Time
}

type Follow struct {
	Follower  string
	Followee  string
	CreatedAt time.Time
}
