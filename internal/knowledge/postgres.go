package knowledge

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	apperrors "notch-chatbot/internal/common/errors"
	"notch-chatbot/internal/models"
)

const (
	selectDocuments = `SELECT name, body FROM knowledge_documents WHERE name = ANY($1)`

	createDocumentsTable = `CREATE TABLE IF NOT EXISTS knowledge_documents (
	name       TEXT PRIMARY KEY,
	body       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

	upsertDocument = `INSERT INTO knowledge_documents (name, body, updated_at) VALUES ($1, $2, now())
ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`
)

// Querier is the subset of *sql.DB used by PostgresSource.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// TxBeginner is the subset of *sql.DB used by Import.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// PostgresSource reads the four knowledge documents from the
// knowledge_documents(name text primary key, body jsonb) table.
type PostgresSource struct {
	db Querier
}

func NewPostgresSource(db Querier) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) Load(ctx context.Context) (*models.KnowledgeBase, error) {
	rows, err := s.db.QueryContext(ctx, selectDocuments, pq.Array(documentNames))
	if err != nil {
		return nil, apperrors.NewKnowledgeSourceFailedError("postgres", err)
	}
	defer rows.Close()

	docs := make(map[string][]byte, len(documentNames))
	for rows.Next() {
		var (
			name string
			body []byte
		)
		if err := rows.Scan(&name, &body); err != nil {
			return nil, apperrors.NewKnowledgeSourceFailedError("postgres", err)
		}
		docs[name] = body
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewKnowledgeSourceFailedError("postgres", err)
	}

	for _, name := range documentNames {
		if _, ok := docs[name]; !ok {
			return nil, apperrors.NewKnowledgeResourceNotFoundError(rowLabel(name), sql.ErrNoRows)
		}
	}

	return decodeDocuments(docs, rowLabel)
}

func rowLabel(name string) string {
	return fmt.Sprintf("knowledge_documents[%s]", name)
}

// Import validates the documents in src and writes all four to
// knowledge_documents in one transaction. Nothing is written when any
// document fails validation.
func Import(ctx context.Context, db TxBeginner, src *DirSource) (Stats, error) {
	docs, err := src.Documents(ctx)
	if err != nil {
		return Stats{}, err
	}
	kb, err := decodeDocuments(docs, fileLabel)
	if err != nil {
		return Stats{}, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, apperrors.NewKnowledgeSourceFailedError("postgres", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, createDocumentsTable); err != nil {
		return Stats{}, apperrors.NewKnowledgeSourceFailedError("postgres", err)
	}
	for _, name := range documentNames {
		if _, err := tx.ExecContext(ctx, upsertDocument, name, docs[name]); err != nil {
			return Stats{}, apperrors.NewKnowledgeSourceFailedError("postgres", fmt.Errorf("%s: %w", rowLabel(name), err))
		}
	}
	if err := tx.Commit(); err != nil {
		return Stats{}, apperrors.NewKnowledgeSourceFailedError("postgres", err)
	}
	return NewStore(kb).Stats(), nil
}
