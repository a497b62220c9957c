package docstore

import (
	"context"
	"fmt"

	"github.com/nursemoves/beta-signup/pkg/clients/airtable"
	"github.com/nursemoves/beta-signup/pkg/models"
)

// AirtableStore maps collections onto Airtable tables
type AirtableStore struct {
	client airtable.Client
}

func NewAirtableStore(client airtable.Client) *AirtableStore {
	return &AirtableStore{client: client}
}

func (s *AirtableStore) FindByField(ctx context.Context, collection, field string, value interface{}) ([]models.Document, error) {
	records, err := s.client.FindRecords(ctx, collection, field, fmt.Sprint(value))
	if err != nil {
		return nil, err
	}

	docs := make([]models.Document, 0, len(records))
	for _, r := range records {
		doc := models.Document(r.Fields)
		if doc == nil {
			doc = models.Document{}
		}
		doc["id"] = r.ID
		docs = append(docs, models.UpgradeDocument(doc))
	}
	return docs, nil
}

func (s *AirtableStore) Insert(ctx context.Context, collection string, doc models.Document) (string, error) {
	return s.client.CreateRecord(ctx, collection, doc)
}
