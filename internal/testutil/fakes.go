// Package testutil provides recording fakes for the document store and the
// email sender.
package testutil

import (
	"context"
	"sync"

	"github.com/nursemoves/beta-signup/pkg/docstore"
	"github.com/nursemoves/beta-signup/pkg/mailer"
	"github.com/nursemoves/beta-signup/pkg/models"
)

// Store wraps a MemoryStore, counts calls and can inject failures.
type Store struct {
	*docstore.MemoryStore

	mu      sync.Mutex
	finds   int
	inserts int

	// FindErr is returned by FindByField when set
	FindErr error
	// InsertErr is returned by Insert when set
	InsertErr error
	// PersistOnInsertErr stores the document before returning InsertErr,
	// simulating a write that landed server-side but failed on the way back
	PersistOnInsertErr bool
	// Gate, when non-nil, blocks FindByField until it is closed
	Gate chan struct{}
	// Entered receives a value each time FindByField starts
	Entered chan struct{}
}

func NewStore() *Store {
	return &Store{MemoryStore: docstore.NewMemoryStore()}
}

func (s *Store) FindByField(ctx context.Context, collection, field string, value interface{}) ([]models.Document, error) {
	s.mu.Lock()
	s.finds++
	s.mu.Unlock()

	if s.Entered != nil {
		s.Entered <- struct{}{}
	}
	if s.Gate != nil {
		select {
		case <-s.Gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.FindErr != nil {
		return nil, s.FindErr
	}
	return s.MemoryStore.FindByField(ctx, collection, field, value)
}

func (s *Store) Insert(ctx context.Context, collection string, doc models.Document) (string, error) {
	s.mu.Lock()
	s.inserts++
	s.mu.Unlock()

	if s.InsertErr != nil {
		if s.PersistOnInsertErr {
			_, _ = s.MemoryStore.Insert(ctx, collection, doc)
		}
		return "", s.InsertErr
	}
	return s.MemoryStore.Insert(ctx, collection, doc)
}

// Finds returns the number of FindByField calls
func (s *Store) Finds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finds
}

// Inserts returns the number of Insert calls
func (s *Store) Inserts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inserts
}

// Sender records every message it is asked to send.
type Sender struct {
	mu   sync.Mutex
	sent []mailer.Message

	// Err is returned by Send when set
	Err error
}

func (s *Sender) Send(ctx context.Context, msg mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return s.Err
}

// Sent returns a copy of the recorded messages
func (s *Sender) Sent() []mailer.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]mailer.Message, len(s.sent))
	copy(out, s.sent)
	return out
}

// ValidFields returns the Jane Doe field set used across tests.
func ValidFields() models.SignupFields {
	return models.SignupFields{
		FullName:  "Jane Doe",
		Email:     "jane@x.com",
		Country:   "Illinois, USA",
		Role:      "RN",
		Signature: "Jane Doe",
		Checkbox1: true,
		Checkbox2: true,
		Checkbox3: true,
	}
}
