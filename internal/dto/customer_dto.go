package dto

type CreateCustomerRequest struct {
	Name        string `json:"name"         validate:"required"`
	Email       string `json:"email"        validate:"omitempty,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=15"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
}

type UpdateCustomerRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=15"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	Pincode     *string `json:"pincode"`
}

type CustomerResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
}
