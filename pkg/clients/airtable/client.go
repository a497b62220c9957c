package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nursemoves/beta-signup/pkg/logger"
)

// DefaultBaseURL is the Airtable REST endpoint
const DefaultBaseURL = "https://api.airtable.com/v0"

// Record is a single Airtable row
type Record struct {
	ID     string                 `json:"id"`
	Fields map[string]interface{} `json:"fields"`
}

// Client defines the interface for interacting with Airtable API
type Client interface {
	FindRecords(ctx context.Context, table, field, value string) ([]Record, error)
	CreateRecord(ctx context.Context, table string, data map[string]interface{}) (string, error)
}

type clientImpl struct {
	apiKey  string
	baseID  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new Airtable client
func NewClient(apiKey, baseID string) Client {
	return NewClientWithBaseURL(apiKey, baseID, DefaultBaseURL)
}

// NewClientWithBaseURL creates a client against a non-default endpoint
func NewClientWithBaseURL(apiKey, baseID, baseURL string) Client {
	return &clientImpl{
		apiKey:  apiKey,
		baseID:  baseID,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// formulaString quotes a value for use inside filterByFormula
func formulaString(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `"`, `\"`)
	return `"` + value + `"`
}

func (c *clientImpl) tableURL(table string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, c.baseID, url.PathEscape(table))
}

func (c *clientImpl) FindRecords(ctx context.Context, table, field, value string) ([]Record, error) {
	params := url.Values{}
	params.Set("filterByFormula", fmt.Sprintf("{%s}=%s", field, formulaString(value)))
	reqURL := c.tableURL(table) + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Add("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error querying Airtable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error from Airtable API: status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Records []Record `json:"records"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}

	logger.WithContext(ctx).WithFields(logrus.Fields{
		"table":   table,
		"field":   field,
		"matches": len(response.Records),
	}).Debug("Airtable record lookup")

	return response.Records, nil
}

func (c *clientImpl) CreateRecord(ctx context.Context, table string, data map[string]interface{}) (string, error) {
	payload := map[string]interface{}{
		"records": []map[string]interface{}{
			{
				"fields": data,
			},
		},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tableURL(table), bytes.NewBuffer(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Add("Authorization", "Bearer "+c.apiKey)
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("error creating Airtable record: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("error from Airtable API: status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Records []Record `json:"records"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("error parsing response: %w", err)
	}
	if len(response.Records) == 0 {
		return "", fmt.Errorf("error from Airtable API: no record returned")
	}

	logger.WithContext(ctx).WithField("table", table).Info("Created record in Airtable")
	return response.Records[0].ID, nil
}
