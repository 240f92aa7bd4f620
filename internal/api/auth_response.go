package api

// AuthUser is the public view of an account. The password hash is never
// part of any response.
// swagger:model api.AuthUser
type AuthUser struct {
	ID    int    `json:"id" example:"1"`
	Email string `json:"email" example:"alice@example.com"`
}

// swagger:model api.AuthResponse
type AuthResponse struct {
	User AuthUser `json:"user"`
}
