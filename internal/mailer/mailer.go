package mailer

import "embed"

const (
	FromName               = "RevTrack"
	maxRetries             = 3
	UserWelcomeTemplate    = "user_welcome.tmpl"
	PaymentSettledTemplate = "payment_settled.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, username, email string, data any) (int, error)
}
