package models

type EmailMessage struct {
	To          string   `json:"to" validate:"required,email"`
	Subject     string   `json:"subject" validate:"required"`
	Content     string   `json:"content" validate:"required"`
	HTMLContent string   `json:"html_content,omitempty"`
	BCC         []string `json:"bcc,omitempty" validate:"omitempty,dive,email"`
}
