package service

import "context"

// MailSender delivers transactional mail. Delivery failures are logged by the
// caller and never surfaced to the end user, so enumeration-safe endpoints stay
// enumeration safe.
type MailSender interface {
	// Send delivers a plain-text message to a single recipient.
	Send(ctx context.Context, to, subject, body string) error
}
