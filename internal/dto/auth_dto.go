package dto

// ─── Requests ────────────────────────────────────────────────────────────────

type RegisterRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required,min=8"`
	CompanyName string `json:"company_name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required,max=15"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UpdateProfileRequest struct {
	// Password re-verification is required for profile edits.
	Password    string  `json:"password"     validate:"required"`
	CompanyName *string `json:"company_name" validate:"omitempty"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=15"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type UserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	CompanyName string `json:"company_name"`
	PhoneNumber string `json:"phone_number"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserResponse `json:"user"`
}

// ProfileResponse combines user account data with the company profile,
// returned by GET /v1/auth/me.
type ProfileResponse struct {
	UserResponse
	Company CompanyResponse `json:"company"`
}
