package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type InitProfileRequest struct {
	AccountID   string `json:"account_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

type InitProfileResponse struct {
	Status string `json:"status"`
	Data   struct {
		AccountID    string `json:"account_id"`
		Created      bool   `json:"created"`
		Bootstrapped bool   `json:"bootstrapped"`
	} `json:"data"`
}

type ProfileResponse struct {
	Status string `json:"status"`
	Data   struct {
		AccountID    string `json:"account_id"`
		Username     string `json:"username"`
		DisplayName  string `json:"display_name"`
		Vitality     *int   `json:"vitality"`
		Exempt       bool   `json:"exempt"`
		IsAdmin      bool   `json:"is_admin"`
		IsSuperAdmin bool   `json:"is_super_admin"`
		LastActivity string `json:"last_activity"`
		JoinedAt     string `json:"joined_at"`
	} `json:"data"`
}
