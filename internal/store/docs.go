package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("not found")

// CreateDoc inserts a new document owned by userID
func (p *Postgres) CreateDoc(ctx context.Context, title, docType, language, ownerID string) (Doc, error) {
	if docType == "" {
		docType = "text"
	}
	row := p.pool.QueryRow(ctx, `
		INSERT INTO documents (title, content, type, language, owner_id)
		VALUES ($1, '', $2, $3, $4)
		RETURNING id, title, content, type, language, owner_id, last_modified, created_at, updated_at
	`, title, docType, language, ownerID)
	return scanDoc(row)
}

// ListDocsFor returns docs the user owns or collaborates on
func (p *Postgres) ListDocsFor(ctx context.Context, userID string) ([]Doc, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT DISTINCT d.id, d.title, d.content, d.type, d.language, d.owner_id,
		       d.last_modified, d.created_at, d.updated_at
		FROM documents d
		LEFT JOIN document_collaborators c ON c.document_id = d.id
		WHERE d.owner_id = $1 OR c.user_id = $1
		ORDER BY d.updated_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Doc
	for rows.Next() {
		var d Doc
		if err := rows.Scan(&d.ID, &d.Title, &d.Content, &d.Type, &d.Language, &d.OwnerID,
			&d.LastModified, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetDocFor fetches a document the user can access (owner or collaborator)
func (p *Postgres) GetDocFor(ctx context.Context, id, userID string) (Doc, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT d.id, d.title, d.content, d.type, d.language, d.owner_id,
		       d.last_modified, d.created_at, d.updated_at
		FROM documents d
		WHERE d.id = $1
		  AND (d.owner_id = $2 OR EXISTS (
		      SELECT 1 FROM document_collaborators c
		      WHERE c.document_id = d.id AND c.user_id = $2))
	`, id, userID)
	return scanDoc(row)
}

// UpdateDocFor writes title/content/language for an owner or collaborator,
// bumping last_modified.
func (p *Postgres) UpdateDocFor(ctx context.Context, id, userID, title, content, language string) (Doc, error) {
	row := p.pool.QueryRow(ctx, `
		UPDATE documents d
		SET title = COALESCE(NULLIF($3, ''), title),
		    content = $4,
		    language = COALESCE(NULLIF($5, ''), language),
		    last_modified = NOW(),
		    updated_at = NOW()
		WHERE d.id = $1
		  AND (d.owner_id = $2 OR EXISTS (
		      SELECT 1 FROM document_collaborators c
		      WHERE c.document_id = d.id AND c.user_id = $2))
		RETURNING id, title, content, type, language, owner_id, last_modified, created_at, updated_at
	`, id, userID, title, content, language)
	return scanDoc(row)
}

// DeleteDoc removes a document. Owner only.
func (p *Postgres) DeleteDoc(ctx context.Context, id, ownerID string) error {
	ct, err := p.pool.Exec(ctx, `
		DELETE FROM documents WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	p.log.Info("doc.deleted", "id", id)
	return nil
}

// AddCollaborator grants a user access to a document
func (p *Postgres) AddCollaborator(ctx context.Context, docID, userID string) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO document_collaborators (document_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, docID, userID)
	return err
}

func scanDoc(row pgx.Row) (Doc, error) {
	var d Doc
	if err := row.Scan(&d.ID, &d.Title, &d.Content, &d.Type, &d.Language, &d.OwnerID,
		&d.LastModified, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Doc{}, ErrNotFound
		}
		return Doc{}, err
	}
	return d, nil
}
