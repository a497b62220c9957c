package docstore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nursemoves/beta-signup/pkg/clients/airtable"
	"github.com/nursemoves/beta-signup/pkg/config"
	"github.com/nursemoves/beta-signup/pkg/models"
)

func TestMemoryStoreInsertAndFind(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	id, err := store.Insert(ctx, "beta_signups", models.Document{"email": "jane@x.com", "fullName": "Jane Doe"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	_, err = store.Insert(ctx, "beta_signups", models.Document{"email": "sam@x.com"})
	require.NoError(t, err)
	_, err = store.Insert(ctx, "other", models.Document{"email": "jane@x.com"})
	require.NoError(t, err)

	docs, err := store.FindByField(ctx, "beta_signups", "email", "jane@x.com")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, id, docs[0]["id"])
	assert.Equal(t, "Jane Doe", docs[0]["fullName"])

	docs, err = store.FindByField(ctx, "beta_signups", "email", "nobody@x.com")
	require.NoError(t, err)
	assert.Empty(t, docs)

	assert.Equal(t, 2, store.Count("beta_signups"))
	assert.Equal(t, 0, store.Count("missing"))
}

func TestMemoryStoreIsolatesCallerDocuments(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	doc := models.Document{"email": "jane@x.com"}
	_, err := store.Insert(ctx, "beta_signups", doc)
	require.NoError(t, err)
	doc["email"] = "changed@x.com"

	docs, err := store.FindByField(ctx, "beta_signups", "email", "jane@x.com")
	require.NoError(t, err)
	require.Len(t, docs, 1)

	docs[0]["email"] = "mutated"
	docs, err = store.FindByField(ctx, "beta_signups", "email", "jane@x.com")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestMemoryStoreHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemoryStore()
	_, err := store.Insert(ctx, "beta_signups", models.Document{"email": "jane@x.com"})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = store.FindByField(ctx, "beta_signups", "email", "jane@x.com")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, store.Count("beta_signups"))
}

func TestMemoryStoreConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Insert(ctx, "beta_signups", models.Document{"email": "x@x.com"})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, store.Count("beta_signups"))
}

func TestAirtableStoreUpgradesLegacyRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"records":[{"id":"rec1","fields":{"email":"jane@x.com","state":"IL"}}]}`))
	}))
	defer server.Close()

	store := NewAirtableStore(airtable.NewClientWithBaseURL("key", "app", server.URL))
	docs, err := store.FindByField(context.Background(), "beta_signups", "email", "jane@x.com")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "rec1", docs[0]["id"])
	assert.Equal(t, "IL", docs[0]["country"])
}

func TestAirtableStoreInsert(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"records":[{"id":"recABC","fields":{}}]}`))
	}))
	defer server.Close()

	store := NewAirtableStore(airtable.NewClientWithBaseURL("key", "app", server.URL))
	id, err := store.Insert(context.Background(), "beta_signups", models.Document{"email": "jane@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "recABC", id)
}

func TestFieldPredicate(t *testing.T) {
	pred, onDoc := fieldPredicate("email")
	assert.Equal(t, "email = ?", pred)
	assert.False(t, onDoc)

	pred, onDoc = fieldPredicate("role")
	assert.Equal(t, "doc->>? = ?", pred)
	assert.True(t, onDoc)
}

func TestOpenMemoryAndUnknown(t *testing.T) {
	store, err := Open(context.Background(), &config.Config{StoreDriver: config.StoreMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	store, err = Open(context.Background(), &config.Config{StoreDriver: config.StoreAirtable, AirtableAPIKey: "k", AirtableBaseID: "b"})
	require.NoError(t, err)
	assert.IsType(t, &AirtableStore{}, store)

	_, err = Open(context.Background(), &config.Config{StoreDriver: "cassandra"})
	assert.Error(t, err)
}
