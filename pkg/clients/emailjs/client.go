package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nursemoves/beta-signup/pkg/logger"
)

// DefaultBaseURL is the EmailJS REST endpoint
const DefaultBaseURL = "https://api.emailjs.com"

// Client defines the interface for interacting with the EmailJS API
type Client interface {
	Send(ctx context.Context, templateID string, params map[string]string) error
}

type clientImpl struct {
	serviceID  string
	publicKey  string
	privateKey string
	baseURL    string
	http       *http.Client
}

// NewClient creates a new EmailJS client. privateKey may be empty when the
// account does not require it for API calls.
func NewClient(serviceID, publicKey, privateKey string) Client {
	return NewClientWithBaseURL(serviceID, publicKey, privateKey, DefaultBaseURL)
}

// NewClientWithBaseURL creates a client against a non-default endpoint
func NewClientWithBaseURL(serviceID, publicKey, privateKey, baseURL string) Client {
	return &clientImpl{
		serviceID:  serviceID,
		publicKey:  publicKey,
		privateKey: privateKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		http:       &http.Client{Timeout: 30 * time.Second},
	}
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

func (c *clientImpl) Send(ctx context.Context, templateID string, params map[string]string) error {
	payload := sendRequest{
		ServiceID:      c.serviceID,
		TemplateID:     templateID,
		UserID:         c.publicKey,
		AccessToken:    c.privateKey,
		TemplateParams: params,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1.0/email/send", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("error from EmailJS API: status %d: %s", resp.StatusCode, string(body))
	}

	logger.WithContext(ctx).WithField("template_id", templateID).Info("Sent email via EmailJS")
	return nil
}
