package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type VitalityResponse struct {
	Status string `json:"status"`
	Data   struct {
		AccountID    string `json:"account_id"`
		Vitality     *int   `json:"vitality"`
		Exempt       bool   `json:"exempt"`
		IsAdmin      bool   `json:"is_admin"`
		IsSuperAdmin bool   `json:"is_super_admin"`
		LastActivity string `json:"last_activity"`
	} `json:"data"`
}

type HistoryEntryDTO struct {
	EntryID   string `json:"entry_id"`
	Delta     int    `json:"delta"`
	Reason    string `json:"reason"`
	CreatedAt string `json:"created_at"`
}

type HistoryResponse struct {
	Status string `json:"status"`
	Data   struct {
		AccountID string            `json:"account_id"`
		Entries   []HistoryEntryDTO `json:"entries"`
	} `json:"data"`
}

type DecayResponse struct {
	Status string `json:"status"`
	Data   struct {
		Affected int `json:"affected"`
		Failed   int `json:"failed"`
	} `json:"data"`
}
