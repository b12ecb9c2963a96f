package dto

type CreateVendorRequest struct {
	Name        string `json:"name"         validate:"required"`
	Email       string `json:"email"        validate:"omitempty,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=15"`
	Address     string `json:"address"`
}

type VendorResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}
