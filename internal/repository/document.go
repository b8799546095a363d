package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/studysphere/studysphere-go/internal/model"
)

var ErrDocumentNotFound = errors.New("document not found")

// DocumentRepository handles document persistence. Every read and write
// past Create is filtered by owner.
type DocumentRepository struct {
	db      *sql.DB
	dialect Dialect
}

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(db *sql.DB, dialect Dialect) *DocumentRepository {
	return &DocumentRepository{db: db, dialect: dialect}
}

const documentColumns = `id, owner_id, title, content, created_at, updated_at`

// Create inserts a new document.
func (r *DocumentRepository) Create(ctx context.Context, doc *model.Document) error {
	query := rebind(r.dialect, `INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`)

	return withConn(ctx, r.db, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, query,
			doc.ID, doc.OwnerID, doc.Title, doc.Content, doc.CreatedAt, doc.UpdatedAt,
		)
		return err
	})
}

// GetByID retrieves a document by ID if it belongs to ownerID.
func (r *DocumentRepository) GetByID(ctx context.Context, ownerID, id string) (*model.Document, error) {
	query := rebind(r.dialect, `SELECT `+documentColumns+`
		FROM documents WHERE id = ? AND owner_id = ?`)

	doc := &model.Document{}
	err := withConn(ctx, r.db, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, query, id, ownerID).Scan(
			&doc.ID, &doc.OwnerID, &doc.Title, &doc.Content, &doc.CreatedAt, &doc.UpdatedAt,
		)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	return doc, nil
}

// ListByOwner retrieves all documents for a user, ordered by most recently updated.
func (r *DocumentRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Document, error) {
	query := rebind(r.dialect, `SELECT `+documentColumns+`
		FROM documents WHERE owner_id = ? ORDER BY updated_at DESC`)

	var docs []model.Document
	err := withConn(ctx, r.db, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, ownerID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var d model.Document
			if err := rows.Scan(
				&d.ID, &d.OwnerID, &d.Title, &d.Content, &d.CreatedAt, &d.UpdatedAt,
			); err != nil {
				return err
			}
			docs = append(docs, d)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return docs, nil
}

// Update overwrites title, content and updated_at of a document owned by
// doc.OwnerID. The owner is never changed.
func (r *DocumentRepository) Update(ctx context.Context, doc *model.Document) error {
	query := rebind(r.dialect, `UPDATE documents SET title = ?, content = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`)

	return withConn(ctx, r.db, func(conn *sql.Conn) error {
		result, err := conn.ExecContext(ctx, query,
			doc.Title, doc.Content, doc.UpdatedAt, doc.ID, doc.OwnerID,
		)
		if err != nil {
			return err
		}
		return requireAffected(result)
	})
}

// Delete permanently removes a document owned by ownerID.
func (r *DocumentRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := rebind(r.dialect, `DELETE FROM documents WHERE id = ? AND owner_id = ?`)

	return withConn(ctx, r.db, func(conn *sql.Conn) error {
		result, err := conn.ExecContext(ctx, query, id, ownerID)
		if err != nil {
			return err
		}
		return requireAffected(result)
	})
}

func requireAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}
