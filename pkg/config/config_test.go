package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "beta_signups", cfg.Collection)
	assert.Equal(t, 20*time.Second, cfg.SubmitTimeout)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, MailNoop, cfg.MailDriver)
	assert.False(t, cfg.TwilioConfigured())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "airtable")
	t.Setenv("AIRTABLE_API_KEY", "key")
	t.Setenv("AIRTABLE_BASE_ID", "app123")
	t.Setenv("MAIL_DRIVER", "emailjs")
	t.Setenv("EMAILJS_SERVICE_ID", "service_x")
	t.Setenv("EMAILJS_TEMPLATE_ID", "template_x")
	t.Setenv("EMAILJS_PUBLIC_KEY", "pub")
	t.Setenv("SUBMIT_TIMEOUT", "15s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoreAirtable, cfg.StoreDriver)
	assert.Equal(t, "template_x", cfg.MailTemplateID())
	assert.Equal(t, 15*time.Second, cfg.SubmitTimeout)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			StoreDriver:   StoreMemory,
			MailDriver:    MailNoop,
			Collection:    "beta_signups",
			SubmitTimeout: time.Second,
			SessionTTL:    time.Minute,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "unknown store", mutate: func(c *Config) { c.StoreDriver = "mongo" }, wantErr: `unknown store driver "mongo"`},
		{name: "airtable without key", mutate: func(c *Config) { c.StoreDriver = StoreAirtable }, wantErr: "AIRTABLE_API_KEY"},
		{name: "firestore without project", mutate: func(c *Config) { c.StoreDriver = StoreFirestore }, wantErr: "FIRESTORE_PROJECT_ID"},
		{name: "postgres without dsn", mutate: func(c *Config) { c.StoreDriver = StorePostgres }, wantErr: "DATABASE_URL"},
		{name: "unknown mail", mutate: func(c *Config) { c.MailDriver = "smtp" }, wantErr: `unknown mail driver "smtp"`},
		{name: "mailgun without domain", mutate: func(c *Config) { c.MailDriver = MailMailgun }, wantErr: "MAILGUN_DOMAIN"},
		{name: "emailjs without ids", mutate: func(c *Config) { c.MailDriver = MailEmailJS }, wantErr: "EMAILJS_SERVICE_ID"},
		{name: "zero timeout", mutate: func(c *Config) { c.SubmitTimeout = 0 }, wantErr: "SUBMIT_TIMEOUT"},
		{name: "zero session ttl", mutate: func(c *Config) { c.SessionTTL = 0 }, wantErr: "FORM_SESSION_TTL"},
		{name: "negative session ttl", mutate: func(c *Config) { c.SessionTTL = -time.Minute }, wantErr: "FORM_SESSION_TTL"},
		{name: "empty collection", mutate: func(c *Config) { c.Collection = "" }, wantErr: "SIGNUP_COLLECTION"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMailTemplateIDMailgun(t *testing.T) {
	cfg := Config{MailDriver: MailMailgun, MailgunTemplate: "beta-confirmation", EmailJSTemplateID: "ignored"}
	assert.Equal(t, "beta-confirmation", cfg.MailTemplateID())
}

func TestLoadConfigRejectsZeroSessionTTL(t *testing.T) {
	t.Setenv("FORM_SESSION_TTL", "0s")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FORM_SESSION_TTL")
}
