package postgres

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/cvbuilder/pkg/job"
)

// JobRepository хранит вакансии и их ключевые слова с весами.
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) (*JobRepository, error) {
	r := &JobRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *JobRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
	id UUID PRIMARY KEY,
	owner_id UUID NOT NULL,
	title TEXT NOT NULL,
	company TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	url TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS job_keywords (
	job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
	keyword TEXT NOT NULL,
	weight REAL NOT NULL CHECK (weight >= 0 AND weight <= 1),
	PRIMARY KEY (job_id, keyword)
);
CREATE INDEX IF NOT EXISTS idx_jobs_owner ON jobs(owner_id);
`)
	return err
}

func (r *JobRepository) Create(ctx context.Context, j job.Job) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now().UTC()
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
INSERT INTO jobs (id, owner_id, title, company, description, url, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, j.ID, j.OwnerID, strings.TrimSpace(j.Title), j.Company, j.Description, j.URL, j.CreatedAt)
	if err != nil {
		return err
	}
	for _, kw := range j.Keywords {
		_, err = tx.Exec(ctx, `
INSERT INTO job_keywords (job_id, keyword, weight)
VALUES ($1, $2, $3)
ON CONFLICT (job_id, keyword) DO UPDATE SET weight = EXCLUDED.weight
`, j.ID, strings.ToLower(strings.TrimSpace(kw.Keyword)), kw.Weight)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *JobRepository) UpdateKeywordsForOwner(ctx context.Context, ownerID, id uuid.UUID, keywords []job.KeywordWeight) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	// Проверка владения
	row := tx.QueryRow(ctx, `SELECT 1 FROM jobs WHERE id = $1 AND owner_id = $2`, id, ownerID)
	var one int
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pgx.ErrNoRows
		}
		return err
	}
	_, err = tx.Exec(ctx, `DELETE FROM job_keywords WHERE job_id = $1`, id)
	if err != nil {
		return err
	}
	for _, kw := range keywords {
		_, err = tx.Exec(ctx, `
INSERT INTO job_keywords (job_id, keyword, weight)
VALUES ($1, $2, $3)
`, id, strings.ToLower(strings.TrimSpace(kw.Keyword)), kw.Weight)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *JobRepository) GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (job.Job, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, owner_id, title, company, description, url, created_at
FROM jobs WHERE id = $1 AND owner_id = $2
`, id, ownerID)
	return r.scanWithKeywords(ctx, row)
}

func (r *JobRepository) GetByIDAny(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, owner_id, title, company, description, url, created_at
FROM jobs WHERE id = $1
`, id)
	return r.scanWithKeywords(ctx, row)
}

func (r *JobRepository) scanWithKeywords(ctx context.Context, row pgx.Row) (job.Job, error) {
	var j job.Job
	var created time.Time
	if err := row.Scan(&j.ID, &j.OwnerID, &j.Title, &j.Company, &j.Description, &j.URL, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, pgx.ErrNoRows
		}
		return job.Job{}, err
	}
	j.CreatedAt = created.UTC()
	keywords, err := r.loadKeywords(ctx, j.ID)
	if err != nil {
		return job.Job{}, err
	}
	j.Keywords = keywords
	return j, nil
}

func (r *JobRepository) loadKeywords(ctx context.Context, jobID uuid.UUID) ([]job.KeywordWeight, error) {
	rows, err := r.pool.Query(ctx, `
SELECT keyword, weight FROM job_keywords WHERE job_id = $1
`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []job.KeywordWeight
	for rows.Next() {
		var kw job.KeywordWeight
		if err := rows.Scan(&kw.Keyword, &kw.Weight); err != nil {
			return nil, err
		}
		res = append(res, kw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Slice(res, func(a, b int) bool { return res[a].Keyword < res[b].Keyword })
	return res, nil
}

func (r *JobRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, owner_id, title, company, description, url, created_at
FROM jobs WHERE owner_id = $3
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(ctx, rows)
}

func (r *JobRepository) ListAll(ctx context.Context, limit, offset int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, owner_id, title, company, description, url, created_at
FROM jobs
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(ctx, rows)
}

func (r *JobRepository) collect(ctx context.Context, rows pgx.Rows) ([]job.Job, error) {
	var res []job.Job
	for rows.Next() {
		var j job.Job
		var created time.Time
		if err := rows.Scan(&j.ID, &j.OwnerID, &j.Title, &j.Company, &j.Description, &j.URL, &created); err != nil {
			return nil, err
		}
		j.CreatedAt = created.UTC()
		res = append(res, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Ключевые слова подгружаем после закрытия rows: pgx не любит
	// вложенные запросы на одном соединении.
	for i := range res {
		keywords, err := r.loadKeywords(ctx, res[i].ID)
		if err != nil {
			return nil, err
		}
		res[i].Keywords = keywords
	}
	return res, nil
}

func (r *JobRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *JobRepository) DeleteAny(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
