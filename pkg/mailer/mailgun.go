package mailer

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/aymerick/raymond"
	"github.com/mailgun/mailgun-go/v4"

	"github.com/nursemoves/beta-signup/pkg/logger"
)

//go:embed templates/*.hbs
var templateFS embed.FS

// MailgunConfig contains Mailgun sender configuration
type MailgunConfig struct {
	Domain    string
	APIKey    string
	FromEmail string
	FromName  string
	// APIBase overrides the Mailgun endpoint (EU region, tests)
	APIBase string
}

func (c MailgunConfig) validate() error {
	if c.Domain == "" {
		return fmt.Errorf("MAILGUN_DOMAIN is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("MAILGUN_API_KEY is required")
	}
	if c.FromEmail == "" {
		return fmt.Errorf("EMAIL_FROM_ADDRESS is required")
	}
	return nil
}

// MailgunSender sends via the Mailgun API. A non-empty Message.TemplateID
// selects a template stored in Mailgun; otherwise the body is rendered from
// the embedded handlebars templates.
type MailgunSender struct {
	cfg     MailgunConfig
	client  *mailgun.MailgunImpl
	subject *raymond.Template
	body    *raymond.Template
}

func NewMailgunSender(cfg MailgunConfig) (*MailgunSender, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	subject, err := parseTemplate("templates/confirmation.subject.hbs")
	if err != nil {
		return nil, err
	}
	body, err := parseTemplate("templates/confirmation.txt.hbs")
	if err != nil {
		return nil, err
	}

	client := mailgun.NewMailgun(cfg.Domain, cfg.APIKey)
	if cfg.APIBase != "" {
		client.SetAPIBase(cfg.APIBase)
	}

	return &MailgunSender{cfg: cfg, client: client, subject: subject, body: body}, nil
}

func parseTemplate(name string) (*raymond.Template, error) {
	content, err := templateFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("template not found: %s", name)
	}
	tmpl, err := raymond.Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// render produces the subject line and plain-text body for msg
func (s *MailgunSender) render(msg Message) (string, string, error) {
	subject, err := s.subject.Exec(msg.Params)
	if err != nil {
		return "", "", fmt.Errorf("failed to render subject: %w", err)
	}
	if msg.TemplateID != "" {
		return strings.TrimSpace(subject), "", nil
	}
	body, err := s.body.Exec(msg.Params)
	if err != nil {
		return "", "", fmt.Errorf("failed to render body: %w", err)
	}
	return strings.TrimSpace(subject), body, nil
}

func (s *MailgunSender) Send(ctx context.Context, msg Message) error {
	subject, text, err := s.render(msg)
	if err != nil {
		return err
	}

	to := msg.To
	if msg.ToName != "" {
		to = fmt.Sprintf("%s <%s>", msg.ToName, msg.To)
	}
	from := s.cfg.FromEmail
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromEmail)
	}

	message := s.client.NewMessage(from, subject, text, to)
	if msg.TemplateID != "" {
		message.SetTemplate(msg.TemplateID)
		for k, v := range msg.Params {
			if err := message.AddVariable(k, v); err != nil {
				return fmt.Errorf("failed to add template variable %s: %w", k, err)
			}
		}
	}

	sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, messageID, err := s.client.Send(sendCtx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.WithContext(ctx).WithField("message_id", messageID).Info("email sent via Mailgun")
	return nil
}
