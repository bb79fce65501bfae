package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/cvbuilder/pkg/tailor"
)

// TailoringRepository хранит результаты подгонки резюме под вакансию.
// Отчёт лежит JSONB-колонкой, владение определяется через резюме.
type TailoringRepository struct {
	pool *pgxpool.Pool
}

func NewTailoringRepository(pool *pgxpool.Pool) (*TailoringRepository, error) {
	r := &TailoringRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *TailoringRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS tailorings (
	id UUID PRIMARY KEY,
	resume_id UUID NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
	job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
	score REAL NOT NULL DEFAULT 0,
	model TEXT NOT NULL DEFAULT '',
	report JSONB NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tailorings_resume ON tailorings(resume_id);
CREATE INDEX IF NOT EXISTS idx_tailorings_job ON tailorings(job_id);
`)
	return err
}

func (r *TailoringRepository) Create(ctx context.Context, t tailor.Tailoring) (tailor.Tailoring, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	reportJSON, err := json.Marshal(t.Report)
	if err != nil {
		return tailor.Tailoring{}, err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO tailorings (id, resume_id, job_id, score, model, report, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, t.ID, t.ResumeID, t.JobID, t.Score, t.Model, reportJSON, t.CreatedAt)
	if err != nil {
		return tailor.Tailoring{}, err
	}
	return t, nil
}

const tailoringColumns = `t.id, t.resume_id, t.job_id, t.score, t.model, t.report, t.created_at`

func (r *TailoringRepository) GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (tailor.Tailoring, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+tailoringColumns+`
FROM tailorings t
JOIN resumes res ON res.id = t.resume_id
WHERE t.id = $1 AND res.owner_id = $2
`, id, ownerID)
	return scanTailoring(row)
}

func (r *TailoringRepository) GetByIDAny(ctx context.Context, id uuid.UUID) (tailor.Tailoring, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+tailoringColumns+`
FROM tailorings t
WHERE t.id = $1
`, id)
	return scanTailoring(row)
}

func (r *TailoringRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]tailor.Tailoring, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+tailoringColumns+`
FROM tailorings t
JOIN resumes res ON res.id = t.resume_id
WHERE res.owner_id = $3
ORDER BY t.created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTailorings(rows)
}

func (r *TailoringRepository) ListByJobForOwner(ctx context.Context, ownerID, jobID uuid.UUID, limit, offset int) ([]tailor.Tailoring, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+tailoringColumns+`
FROM tailorings t
JOIN resumes res ON res.id = t.resume_id
WHERE res.owner_id = $3 AND t.job_id = $4
ORDER BY t.created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset, ownerID, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTailorings(rows)
}

func (r *TailoringRepository) ListAll(ctx context.Context, limit, offset int) ([]tailor.Tailoring, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+tailoringColumns+`
FROM tailorings t
ORDER BY t.created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTailorings(rows)
}

func (r *TailoringRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	ct, err := r.pool.Exec(ctx, `
DELETE FROM tailorings t
USING resumes res
WHERE t.id = $1 AND res.id = t.resume_id AND res.owner_id = $2
`, id, ownerID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *TailoringRepository) DeleteAny(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM tailorings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanTailoring(row pgx.Row) (tailor.Tailoring, error) {
	var t tailor.Tailoring
	var reportBytes []byte
	var created time.Time
	if err := row.Scan(&t.ID, &t.ResumeID, &t.JobID, &t.Score, &t.Model, &reportBytes, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tailor.Tailoring{}, pgx.ErrNoRows
		}
		return tailor.Tailoring{}, err
	}
	_ = json.Unmarshal(reportBytes, &t.Report)
	t.CreatedAt = created.UTC()
	return t, nil
}

func collectTailorings(rows pgx.Rows) ([]tailor.Tailoring, error) {
	var res []tailor.Tailoring
	for rows.Next() {
		t, err := scanTailoring(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}
