package form

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zekroTJA/timedmap"

	"github.com/nursemoves/beta-signup/pkg/models"
	"github.com/nursemoves/beta-signup/pkg/services"
)

// ErrSessionNotFound is returned for unknown or expired form ids
var ErrSessionNotFound = errors.New("form session not found")

// Registry keeps open forms in memory. A form expires when it has not been
// touched for the configured TTL.
type Registry struct {
	service services.SignupSubmissionService
	ttl     time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions *timedmap.TimedMap
}

// NewRegistry creates a registry whose expired forms are swept once a minute
// or once per ttl, whichever is shorter.
func NewRegistry(service services.SignupSubmissionService, ttl time.Duration) *Registry {
	sweep := time.Minute
	if ttl < sweep {
		sweep = ttl
	}
	return &Registry{
		service:  service,
		ttl:      ttl,
		now:      time.Now,
		sessions: timedmap.New(sweep),
	}
}

// Open creates a new empty form, dated today
func (r *Registry) Open() *Controller {
	c := NewController(uuid.NewString(), models.FormatDate(r.now()), r.service)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions.Set(c.ID(), c, r.ttl)
	return c
}

// Get returns the form with the given id and restarts its expiry
func (r *Registry) Get(id string) (*Controller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.sessions.GetValue(id).(*Controller)
	if !ok {
		return nil, ErrSessionNotFound
	}
	r.sessions.Set(id, c, r.ttl)
	return c, nil
}

// Close discards the form with the given id
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.sessions.Contains(id) {
		return ErrSessionNotFound
	}
	r.sessions.Remove(id)
	return nil
}

// Len returns the number of open forms
func (r *Registry) Len() int {
	return r.sessions.Size()
}

// Stop ends the background sweep
func (r *Registry) Stop() {
	r.sessions.StopCleaner()
}
