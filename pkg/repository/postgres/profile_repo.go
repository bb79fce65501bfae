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
)

// ProfileRepository хранит канонический профиль пользователя: скаляры
// колонками, коллекции одним JSONB-документом. Один профиль на владельца.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) (*ProfileRepository, error) {
	r := &ProfileRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ProfileRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS profiles (
	owner_id UUID PRIMARY KEY,
	id UUID NOT NULL,
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	website TEXT NOT NULL DEFAULT '',
	linkedin_url TEXT NOT NULL DEFAULT '',
	github_url TEXT NOT NULL DEFAULT '',
	photo_url TEXT NOT NULL DEFAULT '',
	collections JSONB NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

// profileCollections — JSONB-обёртка для четырёх коллекций.
type profileCollections struct {
	WorkExperience []profile.WorkExperience `json:"workExperience"`
	Education      []profile.Education      `json:"education"`
	Projects       []profile.Project        `json:"projects"`
	Skills         []profile.Skill          `json:"skills"`
}

func (r *ProfileRepository) Upsert(ctx context.Context, p profile.Profile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	cols, err := json.Marshal(profileCollections{
		WorkExperience: p.WorkExperience,
		Education:      p.Education,
		Projects:       p.Projects,
		Skills:         p.Skills,
	})
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO profiles (owner_id, id, first_name, last_name, email, phone, location, website, linkedin_url, github_url, photo_url, collections, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
ON CONFLICT (owner_id) DO UPDATE SET
	first_name = EXCLUDED.first_name,
	last_name = EXCLUDED.last_name,
	email = EXCLUDED.email,
	phone = EXCLUDED.phone,
	location = EXCLUDED.location,
	website = EXCLUDED.website,
	linkedin_url = EXCLUDED.linkedin_url,
	github_url = EXCLUDED.github_url,
	photo_url = EXCLUDED.photo_url,
	collections = EXCLUDED.collections,
	updated_at = EXCLUDED.updated_at
`, p.OwnerID, p.ID, p.FirstName, p.LastName, p.Email, p.Phone, p.Location, p.Website, p.LinkedInURL, p.GitHubURL, p.PhotoURL, cols, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *ProfileRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) (profile.Profile, error) {
	row := r.pool.QueryRow(ctx, `
SELECT owner_id, id, first_name, last_name, email, phone, location, website, linkedin_url, github_url, photo_url, collections, created_at, updated_at
FROM profiles WHERE owner_id = $1
`, ownerID)
	var p profile.Profile
	var cols []byte
	var created, updated time.Time
	if err := row.Scan(&p.OwnerID, &p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.Location, &p.Website, &p.LinkedInURL, &p.GitHubURL, &p.PhotoURL, &cols, &created, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}
	var c profileCollections
	_ = json.Unmarshal(cols, &c)
	p.WorkExperience = c.WorkExperience
	p.Education = c.Education
	p.Projects = c.Projects
	p.Skills = c.Skills
	if p.WorkExperience == nil {
		p.WorkExperience = []profile.WorkExperience{}
	}
	if p.Education == nil {
		p.Education = []profile.Education{}
	}
	if p.Projects == nil {
		p.Projects = []profile.Project{}
	}
	if p.Skills == nil {
		p.Skills = []profile.Skill{}
	}
	p.CreatedAt = created.UTC()
	p.UpdatedAt = updated.UTC()
	return p, nil
}
