package tailor

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Report — результирующий отчёт подгонки резюме под вакансию.
type Report struct {
	CandidateSummary             string   `json:"candidateSummary"`
	MatchedKeywords              []string `json:"matchedKeywords"`
	MissingKeywords              []string `json:"missingKeywords"`
	UniqueStrengths              []string `json:"uniqueStrengths"`
	AIRecommendationForCandidate []string `json:"aiRecommendationForCandidate"`
}

// Tailoring хранит связи и численный скор соответствия.
type Tailoring struct {
	ID        uuid.UUID `json:"id"`
	ResumeID  uuid.UUID `json:"resumeId"`
	JobID     uuid.UUID `json:"jobId"`
	Score     float32   `json:"score"`
	Model     string    `json:"model"`
	Report    Report    `json:"report"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository — порт для сохранения/чтения подгонок.
type Repository interface {
	Create(ctx context.Context, t Tailoring) (Tailoring, error)
	// owner/admin views
	GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (Tailoring, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Tailoring, error)
	ListByJobForOwner(ctx context.Context, ownerID, jobID uuid.UUID, limit, offset int) ([]Tailoring, error)
	GetByIDAny(ctx context.Context, id uuid.UUID) (Tailoring, error)
	ListAll(ctx context.Context, limit, offset int) ([]Tailoring, error)
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
	DeleteAny(ctx context.Context, id uuid.UUID) error
}
