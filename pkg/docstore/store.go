// Package docstore is the document store the signup workflow reads and
// writes: equality lookups and inserts on named collections.
package docstore

import (
	"context"
	"fmt"

	"github.com/nursemoves/beta-signup/pkg/clients/airtable"
	"github.com/nursemoves/beta-signup/pkg/config"
	"github.com/nursemoves/beta-signup/pkg/models"
)

// Store is the document store interface consumed by the signup service
type Store interface {
	// FindByField returns every document in collection whose field equals value.
	FindByField(ctx context.Context, collection, field string, value interface{}) ([]models.Document, error)
	// Insert adds doc to collection and returns the new document ID.
	Insert(ctx context.Context, collection string, doc models.Document) (string, error)
}

// Closer is implemented by stores holding connections
type Closer interface {
	Close() error
}

// Open builds the store selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return NewMemoryStore(), nil
	case config.StoreAirtable:
		return NewAirtableStore(airtable.NewClient(cfg.AirtableAPIKey, cfg.AirtableBaseID)), nil
	case config.StoreFirestore:
		return NewFirestoreStore(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
	case config.StorePostgres:
		return NewPostgresStore(ctx, cfg.DatabaseURL, cfg.Collection)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
