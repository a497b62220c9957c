package docstore

import (
	"context"
	"reflect"
	"sync"

	"github.com/google/uuid"

	"github.com/nursemoves/beta-signup/pkg/models"
)

// MemoryStore keeps documents in process memory.
// Used for local development and tests.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]models.Document
	order       map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]models.Document),
		order:       make(map[string][]string),
	}
}

func (s *MemoryStore) FindByField(ctx context.Context, collection, field string, value interface{}) ([]models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Document
	docs := s.collections[collection]
	for _, id := range s.order[collection] {
		doc := docs[id]
		if v, ok := doc[field]; ok && reflect.DeepEqual(v, value) {
			result = append(result, copyDocument(doc))
		}
	}
	return result, nil
}

func (s *MemoryStore) Insert(ctx context.Context, collection string, doc models.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	if _, ok := s.collections[collection]; !ok {
		s.collections[collection] = make(map[string]models.Document)
	}
	stored := copyDocument(doc)
	stored["id"] = id
	s.collections[collection][id] = stored
	s.order[collection] = append(s.order[collection], id)
	return id, nil
}

// Count returns the number of documents in a collection
func (s *MemoryStore) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}

func copyDocument(doc models.Document) models.Document {
	out := make(models.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
