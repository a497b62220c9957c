package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store drivers
const (
	StoreMemory    = "memory"
	StoreAirtable  = "airtable"
	StoreFirestore = "firestore"
	StorePostgres  = "postgres"
)

// Mail drivers
const (
	MailNoop    = "noop"
	MailEmailJS = "emailjs"
	MailMailgun = "mailgun"
)

// Config holds all application configuration values
type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	GinMode         string        `env:"GIN_MODE" envDefault:"release"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"text"`
	CORSAllowOrigin string        `env:"CORS_ALLOW_ORIGIN" envDefault:"*"`
	Collection      string        `env:"SIGNUP_COLLECTION" envDefault:"beta_signups"`
	SubmitTimeout   time.Duration `env:"SUBMIT_TIMEOUT" envDefault:"20s"`
	SessionTTL      time.Duration `env:"FORM_SESSION_TTL" envDefault:"30m"`

	StoreDriver              string `env:"STORE_DRIVER" envDefault:"memory"`
	AirtableAPIKey           string `env:"AIRTABLE_API_KEY"`
	AirtableBaseID           string `env:"AIRTABLE_BASE_ID"`
	FirestoreProjectID       string `env:"FIRESTORE_PROJECT_ID"`
	FirestoreCredentialsFile string `env:"FIRESTORE_CREDENTIALS_FILE"`
	DatabaseURL              string `env:"DATABASE_URL"`

	MailDriver        string `env:"MAIL_DRIVER" envDefault:"noop"`
	EmailJSServiceID  string `env:"EMAILJS_SERVICE_ID"`
	EmailJSTemplateID string `env:"EMAILJS_TEMPLATE_ID"`
	EmailJSPublicKey  string `env:"EMAILJS_PUBLIC_KEY"`
	EmailJSPrivateKey string `env:"EMAILJS_PRIVATE_KEY"`
	MailgunDomain     string `env:"MAILGUN_DOMAIN"`
	MailgunAPIKey     string `env:"MAILGUN_API_KEY"`
	MailgunTemplate   string `env:"MAILGUN_TEMPLATE"`
	FromEmail         string `env:"EMAIL_FROM_ADDRESS"`
	FromName          string `env:"EMAIL_FROM_NAME" envDefault:"NurseMoves"`

	TwilioAccountSID string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `env:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber string `env:"TWILIO_FROM_NUMBER"`
}

// LoadConfig reads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("error parsing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the selected drivers have their credentials.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory:
	case StoreAirtable:
		if c.AirtableAPIKey == "" || c.AirtableBaseID == "" {
			return fmt.Errorf("AIRTABLE_API_KEY and AIRTABLE_BASE_ID are required for store driver %q", c.StoreDriver)
		}
	case StoreFirestore:
		if c.FirestoreProjectID == "" {
			return fmt.Errorf("FIRESTORE_PROJECT_ID is required for store driver %q", c.StoreDriver)
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for store driver %q", c.StoreDriver)
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}

	switch c.MailDriver {
	case MailNoop:
	case MailEmailJS:
		if c.EmailJSServiceID == "" || c.EmailJSTemplateID == "" || c.EmailJSPublicKey == "" {
			return fmt.Errorf("EMAILJS_SERVICE_ID, EMAILJS_TEMPLATE_ID and EMAILJS_PUBLIC_KEY are required for mail driver %q", c.MailDriver)
		}
	case MailMailgun:
		if c.MailgunDomain == "" || c.MailgunAPIKey == "" || c.FromEmail == "" {
			return fmt.Errorf("MAILGUN_DOMAIN, MAILGUN_API_KEY and EMAIL_FROM_ADDRESS are required for mail driver %q", c.MailDriver)
		}
	default:
		return fmt.Errorf("unknown mail driver %q", c.MailDriver)
	}

	if c.SubmitTimeout <= 0 {
		return fmt.Errorf("SUBMIT_TIMEOUT must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("FORM_SESSION_TTL must be positive")
	}
	if c.Collection == "" {
		return fmt.Errorf("SIGNUP_COLLECTION must not be empty")
	}
	return nil
}

// TwilioConfigured reports whether SMS confirmations can be sent.
func (c *Config) TwilioConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != ""
}

// MailTemplateID is the template identifier handed to the email sender.
func (c *Config) MailTemplateID() string {
	if c.MailDriver == MailMailgun {
		return c.MailgunTemplate
	}
	return c.EmailJSTemplateID
}
