// Package mailer delivers transactional email: a template identifier plus
// named substitution fields, with the delivery credential held by the sender.
package mailer

import (
	"context"
	"fmt"

	"github.com/nursemoves/beta-signup/pkg/clients/emailjs"
	"github.com/nursemoves/beta-signup/pkg/config"
	"github.com/nursemoves/beta-signup/pkg/logger"
)

// Message is one templated email
type Message struct {
	TemplateID string
	To         string
	ToName     string
	Params     map[string]string
}

// Sender delivers a templated message. A nil error means the provider
// accepted it.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender creates the sender selected by cfg.MailDriver.
func NewSender(cfg *config.Config) (Sender, error) {
	log := logger.Scope("mailer")

	switch cfg.MailDriver {
	case config.MailEmailJS:
		log.WithField("service_id", cfg.EmailJSServiceID).Info("using EmailJS sender")
		return NewEmailJSSender(emailjs.NewClient(cfg.EmailJSServiceID, cfg.EmailJSPublicKey, cfg.EmailJSPrivateKey)), nil
	case config.MailMailgun:
		log.WithField("domain", cfg.MailgunDomain).Info("using Mailgun sender")
		return NewMailgunSender(MailgunConfig{
			Domain:    cfg.MailgunDomain,
			APIKey:    cfg.MailgunAPIKey,
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		})
	case config.MailNoop:
		log.Info("using no-op email sender")
		return NoopSender{}, nil
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.MailDriver)
	}
}

// EmailJSSender sends through an EmailJS hosted template
type EmailJSSender struct {
	client emailjs.Client
}

func NewEmailJSSender(client emailjs.Client) *EmailJSSender {
	return &EmailJSSender{client: client}
}

func (s *EmailJSSender) Send(ctx context.Context, msg Message) error {
	if msg.TemplateID == "" {
		return fmt.Errorf("emailjs: template id is required")
	}
	return s.client.Send(ctx, msg.TemplateID, msg.Params)
}

// NoopSender logs and accepts every message. Development only.
type NoopSender struct{}

func (NoopSender) Send(ctx context.Context, msg Message) error {
	logger.WithContext(ctx).WithField("template_id", msg.TemplateID).Info("email send (no-op)")
	return nil
}
