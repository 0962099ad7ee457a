package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreatePostRequest struct {
	Author  string `json:"author"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type CreatePostResponse struct {
	Status string `json:"status"`
	Data   struct {
		PostID string `json:"post_id"`
	} `json:"data"`
}

type PostDTO struct {
	PostID    string `json:"post_id"`
	Author    string `json:"author"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type ListPostsResponse struct {
	Status string `json:"status"`
	Data   struct {
		Posts []PostDTO `json:"posts"`
	} `json:"data"`
}

type CreateReplyRequest struct {
	Author  string `json:"author"`
	PostID  string `json:"post_id"`
	Content string `json:"content"`
}

type CreateReplyResponse struct {
	Status string `json:"status"`
	Data   struct {
		ReplyID string `json:"reply_id"`
	} `json:"data"`
}

type ReactRequest struct {
	Author     string `json:"author"`
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	Kind       string `json:"kind"`
}

type FollowRequest struct {
	Follower string `json:"follower"`
	Followee string `json:"followee"`
	Action   string `json:"action"`
}

type OkResponse struct {
	Status string `json:"status"`
}

type FollowListResponse struct {
	Status string `json:"status"`
	Data   struct {
		AccountID string   `json:"account_id"`
		Accounts  []string `json:"accounts"`
	} `json:"data"`
}
