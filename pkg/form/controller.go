// Package form holds the per-visitor state of the beta signup form and
// drives a submission through the signup service.
package form

import (
	"context"
	"errors"
	"sync"

	"github.com/nursemoves/beta-signup/pkg/legal"
	"github.com/nursemoves/beta-signup/pkg/logger"
	"github.com/nursemoves/beta-signup/pkg/metrics"
	"github.com/nursemoves/beta-signup/pkg/models"
	"github.com/nursemoves/beta-signup/pkg/services"
)

// Phase is the submission phase of a form
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// Outcome is the result of one submit attempt
type Outcome string

const (
	OutcomeSuccess           Outcome = "success"
	OutcomeAlreadyRegistered Outcome = "already_registered"
	OutcomeValidationFailed  Outcome = "validation_failed"
	OutcomeTransientFailure  Outcome = "transient_failure"
)

// User-facing messages, one per outcome
const (
	MessageSuccess           = "Successfully submitted! Check your email for confirmation."
	MessageValidationFailed  = "Please fill all required fields and check all boxes."
	MessageAlreadyRegistered = "This email is already registered for the NurseMoves Beta."
	MessageTransientFailure  = "Something went wrong. Please try again."
)

var (
	// ErrSubmissionInFlight is returned when a submit or an edit arrives while
	// a submission is running, including one for the same email from another
	// form
	ErrSubmissionInFlight = services.ErrSubmissionInFlight
	// ErrAlreadySubmitted is returned by Submit after a successful submission
	// until a field is edited again
	ErrAlreadySubmitted = errors.New("form already submitted")
)

// State is a point-in-time copy of a form
type State struct {
	ID      string              `json:"id"`
	Fields  models.SignupFields `json:"fields"`
	Phase   Phase               `json:"phase"`
	Message string              `json:"message,omitempty"`
	Modal   string              `json:"modal"`
	Date    string              `json:"date"`
}

// Controller owns the state of one signup form. All methods are safe for
// concurrent use.
type Controller struct {
	id      string
	date    string
	service services.SignupSubmissionService

	mu      sync.Mutex
	fields  models.SignupFields
	phase   Phase
	message string
	modal   legal.Document
}

// NewController creates an idle, empty form. date is the submission date
// recorded with the signup, captured when the form was opened.
func NewController(id, date string, service services.SignupSubmissionService) *Controller {
	return &Controller{
		id:      id,
		date:    date,
		service: service,
		phase:   PhaseIdle,
		modal:   legal.None,
	}
}

// ID returns the form identifier
func (c *Controller) ID() string {
	return c.id
}

// SetField edits one field. Editing a failed or submitted form returns it to
// idle and clears the message.
func (c *Controller) SetField(name string, value interface{}) error {
	return c.SetFields(map[string]interface{}{name: value})
}

// SetFields applies several edits at once. Either all edits are applied or,
// on the first bad name or value, none are.
func (c *Controller) SetFields(values map[string]interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhaseSubmitting {
		return ErrSubmissionInFlight
	}

	fields := c.fields
	for name, value := range values {
		if err := fields.Set(name, value); err != nil {
			return err
		}
	}
	c.fields = fields

	if c.phase == PhaseFailed || c.phase == PhaseSucceeded {
		c.phase = PhaseIdle
		c.message = ""
	}
	return nil
}

// Fields returns the current field values
func (c *Controller) Fields() models.SignupFields {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields
}

// Snapshot returns a copy of the whole form state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		ID:      c.id,
		Fields:  c.fields,
		Phase:   c.phase,
		Message: c.message,
		Modal:   c.modal.String(),
		Date:    c.date,
	}
}

// Submit validates the form and, when valid, hands it to the signup service.
// Every outcome is reflected in the form state; the returned error is only
// set when the submit was refused (ErrSubmissionInFlight, ErrAlreadySubmitted);
// a refused submit leaves the form as it was.
func (c *Controller) Submit(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	switch c.phase {
	case PhaseSubmitting:
		c.mu.Unlock()
		return "", ErrSubmissionInFlight
	case PhaseSucceeded:
		c.mu.Unlock()
		return "", ErrAlreadySubmitted
	}

	fields := c.fields
	if err := services.Validate(fields); err != nil {
		c.phase = PhaseFailed
		c.message = MessageValidationFailed
		c.mu.Unlock()
		metrics.SubmissionsTotal.WithLabelValues(string(OutcomeValidationFailed)).Inc()
		return OutcomeValidationFailed, nil
	}

	prevPhase, prevMessage := c.phase, c.message
	c.phase = PhaseSubmitting
	c.message = ""
	c.mu.Unlock()

	_, err := c.service.ProcessSignup(ctx, fields, c.date)
	if errors.Is(err, services.ErrSubmissionInFlight) {
		c.mu.Lock()
		c.phase, c.message = prevPhase, prevMessage
		c.mu.Unlock()
		return "", ErrSubmissionInFlight
	}
	outcome := OutcomeOf(err)
	if outcome == OutcomeTransientFailure {
		logger.WithContext(ctx).WithField("form_id", c.id).WithError(err).Warn("Signup submission failed")
	}

	c.mu.Lock()
	switch outcome {
	case OutcomeSuccess:
		c.phase = PhaseSucceeded
		c.fields = models.SignupFields{}
	default:
		c.phase = PhaseFailed
	}
	c.message = outcome.Message()
	c.mu.Unlock()

	metrics.SubmissionsTotal.WithLabelValues(string(outcome)).Inc()
	return outcome, nil
}

// Open shows a legal document in the modal, replacing any open one.
// Opening None closes the modal.
func (c *Controller) Open(doc legal.Document) error {
	if doc != legal.None {
		if _, err := legal.Lookup(doc); err != nil {
			return err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.modal = doc
	return nil
}

// Close hides the modal
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modal = legal.None
}

// Modal returns the document currently shown
func (c *Controller) Modal() legal.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modal
}

// Message returns the fixed user-facing message for o
func (o Outcome) Message() string {
	switch o {
	case OutcomeSuccess:
		return MessageSuccess
	case OutcomeAlreadyRegistered:
		return MessageAlreadyRegistered
	case OutcomeValidationFailed:
		return MessageValidationFailed
	default:
		return MessageTransientFailure
	}
}

// OutcomeOf classifies a signup service error
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, services.ErrValidation):
		return OutcomeValidationFailed
	case errors.Is(err, services.ErrAlreadyRegistered):
		return OutcomeAlreadyRegistered
	default:
		return OutcomeTransientFailure
	}
}
