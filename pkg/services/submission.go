package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zekroTJA/timedmap"

	"github.com/nursemoves/beta-signup/pkg/clients/twilio"
	"github.com/nursemoves/beta-signup/pkg/config"
	"github.com/nursemoves/beta-signup/pkg/docstore"
	"github.com/nursemoves/beta-signup/pkg/logger"
	"github.com/nursemoves/beta-signup/pkg/mailer"
	"github.com/nursemoves/beta-signup/pkg/metrics"
	"github.com/nursemoves/beta-signup/pkg/models"
	"github.com/nursemoves/beta-signup/pkg/utils"
)

// SignupSubmissionService defines the interface for handling beta signups
type SignupSubmissionService interface {
	// ProcessSignup runs the duplicate check, the insert and the confirmation
	// email in that order. When the email fails after the insert succeeded,
	// the stored record is returned together with the error. A second call for
	// an email whose signup is still running returns ErrSubmissionInFlight.
	ProcessSignup(ctx context.Context, fields models.SignupFields, date string) (*models.SignupRecord, error)
}

type signupSubmissionServiceImpl struct {
	store        docstore.Store
	sender       mailer.Sender
	twilioClient twilio.Client
	config       *config.Config
	now          func() time.Time

	// emails with a signup in progress; entries expire as a fallback release
	inflightMu sync.Mutex
	inflight   *timedmap.TimedMap
}

// NewSignupSubmissionService creates a new submission service. twilioClient
// may be nil, which disables text confirmations.
func NewSignupSubmissionService(
	store docstore.Store,
	sender mailer.Sender,
	twilioClient twilio.Client,
	config *config.Config,
) SignupSubmissionService {
	return &signupSubmissionServiceImpl{
		store:        store,
		sender:       sender,
		twilioClient: twilioClient,
		config:       config,
		now:          time.Now,
		inflight:     timedmap.New(time.Minute),
	}
}

func (s *signupSubmissionServiceImpl) ProcessSignup(ctx context.Context, fields models.SignupFields, date string) (*models.SignupRecord, error) {
	fields.Normalize()
	if err := Validate(fields); err != nil {
		return nil, err
	}

	log := logger.WithContext(ctx).WithField("email_hash", utils.EmailDigest(fields.Email))

	if !s.claim(fields.Email) {
		log.Info("Refusing signup: another submission for this email is running")
		return nil, ErrSubmissionInFlight
	}
	defer s.release(fields.Email)

	log.Info("Processing beta signup")

	ctx, cancel := context.WithTimeout(ctx, s.config.SubmitTimeout)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.SubmissionDuration.Observe(time.Since(start).Seconds())
	}()

	existing, err := s.store.FindByField(ctx, s.config.Collection, models.FieldEmail, fields.Email)
	if err != nil {
		log.WithError(err).Error("Error checking for existing signup")
		return nil, transient("duplicate check", err)
	}
	if len(existing) > 0 {
		log.WithField("matches", len(existing)).Info("Skipping signup: email already registered")
		return nil, ErrAlreadyRegistered
	}

	if date == "" {
		date = models.FormatDate(s.now())
	}
	record := models.NewSignupRecord(fields, date, s.now())

	id, err := s.store.Insert(ctx, s.config.Collection, record.Document())
	if err != nil {
		log.WithError(err).Error("Error storing signup")
		return nil, transient("insert", err)
	}
	record.ID = id
	log = log.WithField("record_id", id)

	msg := mailer.Message{
		TemplateID: s.config.MailTemplateID(),
		To:         record.Email,
		ToName:     record.FullName,
		Params:     record.ConfirmationParams(),
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		metrics.NotificationFailures.WithLabelValues("email").Inc()
		log.WithError(err).Error("Error sending confirmation email; signup remains stored")
		return record, transient("confirmation email", err)
	}

	s.sendText(ctx, log, record)

	log.Info("Beta signup completed")
	return record, nil
}

// claim marks email as being submitted. It reports false when a submission
// for the same email already holds it.
func (s *signupSubmissionServiceImpl) claim(email string) bool {
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()

	if s.inflight.Contains(email) {
		return false
	}
	s.inflight.Set(email, struct{}{}, s.config.SubmitTimeout+time.Minute)
	return true
}

func (s *signupSubmissionServiceImpl) release(email string) {
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()
	s.inflight.Remove(email)
}

// sendText sends the optional SMS confirmation. Failures are logged only.
func (s *signupSubmissionServiceImpl) sendText(ctx context.Context, log *logrus.Entry, record *models.SignupRecord) {
	if s.twilioClient == nil || record.Phone == "" {
		return
	}

	message := fmt.Sprintf("Hi %s! You're in: welcome to the NurseMoves Beta. Check %s for your confirmation.",
		record.FullName, record.Email)
	if _, err := s.twilioClient.SendMessage(ctx, record.Phone, message); err != nil {
		metrics.NotificationFailures.WithLabelValues("sms").Inc()
		log.WithError(err).Warn("Error sending confirmation text")
	}
}
