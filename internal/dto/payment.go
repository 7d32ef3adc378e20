package dto

type InvoiceRequestDTO struct {
	Amount      int    `json:"amount" validate:"required,gt=0" example:"50"`
	Description string `json:"description" validate:"required,max=200" example:"50 Stars top-up"`
}

type InvoiceResponseDTO struct {
	InvoiceURL string `json:"invoiceUrl"`
}
