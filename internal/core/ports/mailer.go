package ports

import "context"

// Mailer dispatches transactional email (OTP codes).
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
