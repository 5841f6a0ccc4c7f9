// Package mail implements the MailSender domain service over SMTP.
package mail

import (
	"context"
	"log/slog"

	"cookbook/config"
	"cookbook/internal/domain/service"
	"cookbook/internal/errors"

	gomail "github.com/wneessen/go-mail"
)

// smtpSender delivers transactional mail through a configured SMTP relay.
type smtpSender struct {
	client *gomail.Client
	from   string
	logger *slog.Logger
}

// NewSMTPSender is the constructor for smtpSender.
func NewSMTPSender(cfg *config.Config, logger *slog.Logger) (service.MailSender, error) {
	if cfg.SMTP == nil {
		return nil, errors.New("smtp configuration must be provided")
	}

	client, err := gomail.NewClient(cfg.SMTP.Host,
		gomail.WithPort(cfg.SMTP.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.SMTP.Username),
		gomail.WithPassword(cfg.SMTP.Password),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create smtp client")
	}

	return &smtpSender{
		client: client,
		from:   cfg.SMTP.From,
		logger: logger,
	}, nil
}

// Send delivers a plain-text message to a single recipient.
func (s *smtpSender) Send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return errors.Wrap(err, "invalid sender address")
	}
	if err := msg.To(to); err != nil {
		return errors.Wrap(err, "invalid recipient address")
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrap(err, "failed to send mail")
	}

	s.logger.Debug("mail sent", slog.String("subject", subject))

	return nil
}
