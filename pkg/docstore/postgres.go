package docstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/nursemoves/beta-signup/pkg/logger"
	"github.com/nursemoves/beta-signup/pkg/models"
)

// documentRow is one document in a Postgres-backed collection. The email is
// lifted into its own indexed column; everything else lives in doc.
type documentRow struct {
	bun.BaseModel `bun:"table:documents,alias:d"`

	ID        string                 `bun:"id,pk,type:uuid"`
	Email     string                 `bun:"email,notnull"`
	Doc       map[string]interface{} `bun:"doc,type:jsonb,notnull"`
	CreatedAt time.Time              `bun:"created_at,notnull,default:current_timestamp"`
}

// PostgresStore keeps each collection in its own table
type PostgresStore struct {
	db *bun.DB
}

// NewPostgresStore connects to dsn and makes sure the table for collection exists.
func NewPostgresStore(ctx context.Context, dsn, collection string) (*PostgresStore, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error connecting to Postgres: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.ensureCollection(ctx, collection); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Scope("docstore.postgres").WithField("collection", collection).Info("connected to Postgres")
	return s, nil
}

func (s *PostgresStore) ensureCollection(ctx context.Context, collection string) error {
	_, err := s.db.NewCreateTable().
		Model((*documentRow)(nil)).
		ModelTableExpr("?", bun.Ident(collection)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("error creating table %s: %w", collection, err)
	}

	_, err = s.db.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS ? ON ? (email)",
		bun.Ident(collection+"_email_idx"), bun.Ident(collection))
	if err != nil {
		return fmt.Errorf("error creating email index on %s: %w", collection, err)
	}
	return nil
}

// fieldPredicate is the WHERE clause for an equality match on field
func fieldPredicate(field string) (string, bool) {
	if field == models.FieldEmail {
		return "email = ?", false
	}
	return "doc->>? = ?", true
}

func (s *PostgresStore) FindByField(ctx context.Context, collection, field string, value interface{}) ([]models.Document, error) {
	var rows []documentRow

	q := s.db.NewSelect().Model(&rows).ModelTableExpr("? AS d", bun.Ident(collection))
	if pred, onDoc := fieldPredicate(field); onDoc {
		q = q.Where(pred, field, fmt.Sprint(value))
	} else {
		q = q.Where(pred, value)
	}

	if err := q.OrderExpr("created_at ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("error querying %s: %w", collection, err)
	}

	docs := make([]models.Document, 0, len(rows))
	for _, r := range rows {
		doc := models.Document(r.Doc)
		if doc == nil {
			doc = models.Document{}
		}
		doc["id"] = r.ID
		docs = append(docs, models.UpgradeDocument(doc))
	}
	return docs, nil
}

func (s *PostgresStore) Insert(ctx context.Context, collection string, doc models.Document) (string, error) {
	email, _ := doc[models.FieldEmail].(string)
	row := &documentRow{
		ID:        uuid.New().String(),
		Email:     email,
		Doc:       map[string]interface{}(doc),
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.NewInsert().Model(row).ModelTableExpr("?", bun.Ident(collection)).Exec(ctx)
	if err != nil {
		return "", fmt.Errorf("error inserting into %s: %w", collection, err)
	}
	return row.ID, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
