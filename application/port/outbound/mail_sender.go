package outbound

import (
	"context"
)

// MailSender delivers the password-reset message. Callers do not wait for
// delivery confirmation; a returned error only means the handoff failed.
type MailSender interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}
