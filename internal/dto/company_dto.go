package dto

type UpsertCompanyRequest struct {
	// Password re-verification is required for company profile edits.
	Password          string `json:"password"            validate:"required"`
	CompanyName       string `json:"company_name"        validate:"required"`
	GSTNumber         string `json:"gst_number"`
	PhoneNumber       string `json:"phone_number"        validate:"omitempty,max=15"`
	Address           string `json:"address"`
	City              string `json:"city"`
	State             string `json:"state"`
	Pincode           string `json:"pincode"`
	BankName          string `json:"bank_name"`
	BankAccountNumber string `json:"bank_account_number"`
	IFSCCode          string `json:"ifsc_code"`
}

type CompanyResponse struct {
	CompanyName       string `json:"company_name"`
	GSTNumber         string `json:"gst_number"`
	PhoneNumber       string `json:"phone_number"`
	Address           string `json:"address"`
	City              string `json:"city"`
	State             string `json:"state"`
	Pincode           string `json:"pincode"`
	BankName          string `json:"bank_name"`
	BankAccountNumber string `json:"bank_account_number"`
	IFSCCode          string `json:"ifsc_code"`
}
