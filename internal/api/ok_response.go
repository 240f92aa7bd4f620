package api

// swagger:model api.OKResponse
type OKResponse struct {
	OK bool `json:"ok" example:"true"`
}
