package dto

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token emitido.
type LoginResponse struct {
	Token     string `json:"token"`
	Role      string `json:"role"`
	ExpiresIn int    `json:"expires_in"` // segundos
}
