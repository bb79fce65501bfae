package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/cvbuilder/pkg/profile"
	"github.com/artem13815/cvbuilder/pkg/resume"
)

// DocumentRepository хранит документы резюме: снимок профиля и настройки
// оформления лежат JSONB-колонками.
type DocumentRepository struct {
	pool *pgxpool.Pool
}

func NewDocumentRepository(pool *pgxpool.Pool) (*DocumentRepository, error) {
	r := &DocumentRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *DocumentRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS resumes (
	id UUID PRIMARY KEY,
	owner_id UUID NOT NULL,
	title TEXT NOT NULL,
	profile JSONB NOT NULL,
	settings JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_resumes_owner ON resumes(owner_id);
`)
	return err
}

func (r *DocumentRepository) Create(ctx context.Context, d resume.Document) error {
	profileJSON, settingsJSON, err := marshalDocument(d)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO resumes (id, owner_id, title, profile, settings, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, d.ID, d.OwnerID, d.Title, profileJSON, settingsJSON, d.CreatedAt, d.UpdatedAt)
	return err
}

func (r *DocumentRepository) Update(ctx context.Context, d resume.Document) error {
	profileJSON, settingsJSON, err := marshalDocument(d)
	if err != nil {
		return err
	}
	ct, err := r.pool.Exec(ctx, `
UPDATE resumes SET title = $2, profile = $3, settings = $4, updated_at = $5
WHERE id = $1
`, d.ID, d.Title, profileJSON, settingsJSON, d.UpdatedAt)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *DocumentRepository) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (resume.Document, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, owner_id, title, profile, settings, created_at, updated_at
FROM resumes WHERE id = $1 AND owner_id = $2
`, id, ownerID)
	return scanDocument(row)
}

func (r *DocumentRepository) GetAny(ctx context.Context, id uuid.UUID) (resume.Document, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, owner_id, title, profile, settings, created_at, updated_at
FROM resumes WHERE id = $1
`, id)
	return scanDocument(row)
}

func (r *DocumentRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]resume.Document, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, owner_id, title, profile, settings, created_at, updated_at
FROM resumes WHERE owner_id = $3
ORDER BY updated_at DESC
LIMIT $1 OFFSET $2
`, limit, offset, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDocuments(rows)
}

func (r *DocumentRepository) ListAll(ctx context.Context, limit, offset int) ([]resume.Document, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, owner_id, title, profile, settings, created_at, updated_at
FROM resumes
ORDER BY updated_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDocuments(rows)
}

func (r *DocumentRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *DocumentRepository) DeleteAny(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func marshalDocument(d resume.Document) (profileJSON, settingsJSON []byte, err error) {
	profileJSON, err = json.Marshal(d.Profile)
	if err != nil {
		return nil, nil, err
	}
	settingsJSON, err = json.Marshal(d.Settings)
	if err != nil {
		return nil, nil, err
	}
	return profileJSON, settingsJSON, nil
}

func scanDocument(row pgx.Row) (resume.Document, error) {
	var d resume.Document
	var profileBytes, settingsBytes []byte
	var created, updated time.Time
	if err := row.Scan(&d.ID, &d.OwnerID, &d.Title, &profileBytes, &settingsBytes, &created, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resume.Document{}, pgx.ErrNoRows
		}
		return resume.Document{}, err
	}
	if err := json.Unmarshal(profileBytes, &d.Profile); err != nil {
		d.Profile = profile.Profile{}
	}
	_ = json.Unmarshal(settingsBytes, &d.Settings)
	d.CreatedAt = created.UTC()
	d.UpdatedAt = updated.UTC()
	return d, nil
}

func collectDocuments(rows pgx.Rows) ([]resume.Document, error) {
	var res []resume.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, d)
	}
	return res, rows.Err()
}
