package dto

// AuthRequest describes login/password payload.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// RegisterRequest extends AuthRequest with renter contact data.
type RegisterRequest struct {
	AuthRequest
	Name  string `json:"name"`
	Email string `json:"email"`
}
