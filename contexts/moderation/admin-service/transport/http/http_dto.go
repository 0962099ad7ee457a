package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type AdminActionRequest struct {
	Actor    string `json:"actor"`
	Action   string `json:"action"`
	TargetID string `json:"target_id"`
	Note     string `json:"note"`
}

type AdminActionResponse struct {
	Status string `json:"status"`
	Data   struct {
		Action   string `json:"action"`
		TargetID string `json:"target_id"`
		Affected bool   `json:"affected"`
	} `json:"data"`
}

type ReportDTO struct {
	ReportID  string `json:"report_id"`
	Actor     string `json:"actor"`
	Action    string `json:"action"`
	TargetID  string `json:"target_id"`
	Note      string `json:"note"`
	CreatedAt string `json:"created_at"`
}

type ListReportsResponse struct {
	Status string `json:"status"`
	Data   struct {
		Reports []ReportDTO `json:"reports"`
	} `json:"data"`
}
