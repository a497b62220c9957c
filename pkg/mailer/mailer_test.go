package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nursemoves/beta-signup/pkg/clients/emailjs"
	"github.com/nursemoves/beta-signup/pkg/config"
)

var confirmationParams = map[string]string{
	"full_name": "Jane O'Neil & Co",
	"email":     "jane@x.com",
	"role":      "RN",
	"date":      "3/4/2025",
}

func TestNewSenderSelection(t *testing.T) {
	s, err := NewSender(&config.Config{MailDriver: config.MailNoop})
	require.NoError(t, err)
	assert.IsType(t, NoopSender{}, s)

	s, err = NewSender(&config.Config{MailDriver: config.MailEmailJS, EmailJSServiceID: "svc", EmailJSPublicKey: "pub"})
	require.NoError(t, err)
	assert.IsType(t, &EmailJSSender{}, s)

	s, err = NewSender(&config.Config{
		MailDriver: config.MailMailgun, MailgunDomain: "mg.example.com",
		MailgunAPIKey: "key", FromEmail: "beta@nursemoves.com", FromName: "NurseMoves",
	})
	require.NoError(t, err)
	assert.IsType(t, &MailgunSender{}, s)

	_, err = NewSender(&config.Config{MailDriver: config.MailMailgun})
	assert.Error(t, err)

	_, err = NewSender(&config.Config{MailDriver: "pigeon"})
	assert.Error(t, err)
}

func TestMailgunConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       MailgunConfig
		wantError string
	}{
		{name: "valid", cfg: MailgunConfig{Domain: "mg.example.com", APIKey: "key", FromEmail: "a@b.c"}},
		{name: "missing domain", cfg: MailgunConfig{APIKey: "key", FromEmail: "a@b.c"}, wantError: "MAILGUN_DOMAIN is required"},
		{name: "missing key", cfg: MailgunConfig{Domain: "mg.example.com", FromEmail: "a@b.c"}, wantError: "MAILGUN_API_KEY is required"},
		{name: "missing from", cfg: MailgunConfig{Domain: "mg.example.com", APIKey: "key"}, wantError: "EMAIL_FROM_ADDRESS is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantError, err.Error())
		})
	}
}

func TestMailgunRenderLocalTemplate(t *testing.T) {
	s, err := NewMailgunSender(MailgunConfig{Domain: "mg.example.com", APIKey: "key", FromEmail: "beta@nursemoves.com"})
	require.NoError(t, err)

	subject, body, err := s.render(Message{To: "jane@x.com", Params: confirmationParams})
	require.NoError(t, err)

	assert.Equal(t, "Welcome to the NurseMoves Beta, Jane O'Neil & Co!", subject)
	assert.Contains(t, body, "Hi Jane O'Neil & Co,")
	assert.Contains(t, body, "on 3/4/2025.")
	assert.Contains(t, body, "Nursing role: RN")
}

func TestMailgunRenderHostedTemplateSkipsBody(t *testing.T) {
	s, err := NewMailgunSender(MailgunConfig{Domain: "mg.example.com", APIKey: "key", FromEmail: "beta@nursemoves.com"})
	require.NoError(t, err)

	subject, body, err := s.render(Message{TemplateID: "beta-confirmation", Params: confirmationParams})
	require.NoError(t, err)
	assert.NotEmpty(t, subject)
	assert.Empty(t, body)
}

func TestEmailJSSender(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("OK"))
	}))
	defer server.Close()

	sender := NewEmailJSSender(emailjs.NewClientWithBaseURL("svc", "pub", "", server.URL))
	err := sender.Send(context.Background(), Message{TemplateID: "template_44", Params: confirmationParams})
	require.NoError(t, err)
	assert.Equal(t, "template_44", got["template_id"])

	err = sender.Send(context.Background(), Message{Params: confirmationParams})
	assert.Error(t, err)
}

func TestNoopSender(t *testing.T) {
	assert.NoError(t, NoopSender{}.Send(context.Background(), Message{TemplateID: "x"}))
}
