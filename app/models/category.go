package models

// Category describes one jewelry line for the browse pages.
type Category struct {
	Slug        ProductCategory `json:"slug"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Image       Image           `json:"image"`
}

// ContactForm is an inquiry submitted from the storefront.
type ContactForm struct {
	Name     string `json:"name"     validate:"required,max=120"`
	Email    string `json:"email"    validate:"required,email"`
	WhatsApp string `json:"whatsapp" validate:"omitempty,max=32,phone"`
	Message  string `json:"message"  validate:"required,max=5000"`
}

// ContactResult is returned once a submission is accepted.
type ContactResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
