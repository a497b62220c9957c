package twilio

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/nursemoves/beta-signup/pkg/logger"
)

// Client defines the interface for sending text messages through Twilio
type Client interface {
	// SendMessage returns once Twilio answers or ctx is done, whichever is first
	SendMessage(ctx context.Context, to, body string) (string, error)
}

// messageCreator is the slice of the Twilio REST API the client uses
type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

type clientImpl struct {
	api  messageCreator
	from string
}

// NewClient creates a new Twilio client sending from the given number
func NewClient(accountSid, authToken, from string) Client {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})

	return &clientImpl{
		api:  client.Api,
		from: from,
	}
}

type createResult struct {
	resp *openapi.ApiV2010Message
	err  error
}

func (c *clientImpl) SendMessage(ctx context.Context, to, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("error sending message: %w", err)
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(c.from)
	params.SetBody(body)

	// the REST client takes no context, so the call is raced against ctx
	done := make(chan createResult, 1)
	go func() {
		resp, err := c.api.CreateMessage(params)
		done <- createResult{resp: resp, err: err}
	}()

	var res createResult
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("error sending message: %w", ctx.Err())
	case res = <-done:
	}
	if res.err != nil {
		return "", fmt.Errorf("error sending message: %w", res.err)
	}
	resp := res.resp

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	status := ""
	if resp.Status != nil {
		status = *resp.Status
	}

	logger.Scope("twilio").WithField("sid", sid).WithField("status", status).Info("Sent text message")
	return sid, nil
}
