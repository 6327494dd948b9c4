package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sandevgo/pitchcoach/internal/core"
)

// DocumentsRepo stores the extracted text of training materials.
type DocumentsRepo struct {
	db *sql.DB
}

func NewDocumentsRepo(db *sql.DB) *DocumentsRepo {
	return &DocumentsRepo{db: db}
}

// SaveDocument inserts doc or replaces the document with the same name.
func (r *DocumentsRepo) SaveDocument(ctx context.Context, doc core.StoredDocument) (core.StoredDocument, error) {
	doc.Size = len([]rune(doc.Content))
	doc.CreatedAt = time.Now().UTC().Truncate(time.Second)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO documents (name, source, content, size, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			source = excluded.source,
			content = excluded.content,
			size = excluded.size,
			created_at = excluded.created_at
		RETURNING id`,
		doc.Name, doc.Source, doc.Content, doc.Size, doc.CreatedAt,
	).Scan(&doc.ID)
	if err != nil {
		return core.StoredDocument{}, fmt.Errorf("failed to save document %q: %w", doc.Name, err)
	}
	return doc, nil
}

// ListDocuments returns metadata only, ordered by name.
func (r *DocumentsRepo) ListDocuments(ctx context.Context) ([]core.StoredDocument, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, source, size, created_at FROM documents ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []core.StoredDocument
	for rows.Next() {
		var d core.StoredDocument
		if err := rows.Scan(&d.ID, &d.Name, &d.Source, &d.Size, &d.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// LoadDocuments returns every document with its content, oldest first.
func (r *DocumentsRepo) LoadDocuments(ctx context.Context) ([]core.StoredDocument, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, source, content, size, created_at FROM documents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}
	defer rows.Close()

	var docs []core.StoredDocument
	for rows.Next() {
		var d core.StoredDocument
		if err := rows.Scan(&d.ID, &d.Name, &d.Source, &d.Content, &d.Size, &d.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (r *DocumentsRepo) DeleteDocument(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete document %q: %w", name, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return core.ErrDocumentNotFound
	}
	return nil
}
