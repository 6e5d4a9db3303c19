package auth

// LoginRequest captures the credentials sent as form fields to the token
// endpoint. Username carries the account email.
type LoginRequest struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// LoginResponse contains the bearer token produced by a successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
