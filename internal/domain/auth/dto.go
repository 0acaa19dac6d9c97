package auth

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginWithEmployeeCodeRequest struct {
	EmployeeCode string `json:"employee_code" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresAt    int64  `json:"expires_at"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt int64
	Revoked   bool
}
