package models

// Requests for the HTTP endpoints. Defined in domain for consistency and reuse.

type TokenRequest struct {
	Chain string `query:"chain" json:"chain" validate:"required,max=32"`
	Token string `query:"token" json:"token" validate:"required,max=128"`
}

type WatchRequest struct {
	Chain string `json:"chain" validate:"required,max=32"`
	Token string `json:"token" validate:"required,max=128"`
}

type HistoryRequest struct {
	Chain string `query:"chain" json:"chain" validate:"required,max=32"`
	Token string `query:"token" json:"token" validate:"required,max=128"`
	Limit int    `query:"limit" json:"limit" default:"50" validate:"gte=1,lte=500"`
}
