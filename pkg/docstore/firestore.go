package docstore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	"github.com/nursemoves/beta-signup/pkg/logger"
	"github.com/nursemoves/beta-signup/pkg/models"
)

// FirestoreStore stores documents in Cloud Firestore collections
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore connects to projectID. An empty credentialsFile falls
// back to application default credentials.
func NewFirestoreStore(ctx context.Context, projectID, credentialsFile string) (*FirestoreStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating Firestore client: %w", err)
	}

	logger.Scope("docstore.firestore").WithField("project", projectID).Info("connected to Firestore")
	return &FirestoreStore{client: client}, nil
}

func (s *FirestoreStore) FindByField(ctx context.Context, collection, field string, value interface{}) ([]models.Document, error) {
	snaps, err := s.client.Collection(collection).Where(field, "==", value).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("error querying Firestore: %w", err)
	}

	docs := make([]models.Document, 0, len(snaps))
	for _, snap := range snaps {
		doc := models.Document(snap.Data())
		doc["id"] = snap.Ref.ID
		docs = append(docs, models.UpgradeDocument(doc))
	}
	return docs, nil
}

func (s *FirestoreStore) Insert(ctx context.Context, collection string, doc models.Document) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, map[string]interface{}(doc))
	if err != nil {
		return "", fmt.Errorf("error writing Firestore document: %w", err)
	}
	return ref.ID, nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
