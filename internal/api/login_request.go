package api

// swagger:model api.LoginRequest
type LoginRequest struct {
	Email    string `json:"email" validate:"required" example:"alice@example.com"`
	Password string `json:"password" validate:"required" example:"Secret123!"`
}
