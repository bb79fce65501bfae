package job

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Job описывает вакансию, под которую пользователь подгоняет резюме,
// и эталонные ключевые слова с весами.
type Job struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     uuid.UUID       `json:"ownerId"`
	Title       string          `json:"title"`
	Company     string          `json:"company"`
	Description string          `json:"description"`
	URL         string          `json:"url"`
	CreatedAt   time.Time       `json:"createdAt"`
	Keywords    []KeywordWeight `json:"keywords"`
}

// KeywordWeight — весовой коэффициент важности ключевого слова в [0,1].
type KeywordWeight struct {
	Keyword string  `json:"keyword"`
	Weight  float32 `json:"weight"`
}

// Repository — порт для работы с вакансиями.
type Repository interface {
	Create(ctx context.Context, j Job) error
	// Возвращают только данные владельца
	GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (Job, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Job, error)
	UpdateKeywordsForOwner(ctx context.Context, ownerID, id uuid.UUID, keywords []KeywordWeight) error
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
	// Админ-доступ без фильтра владельца
	GetByIDAny(ctx context.Context, id uuid.UUID) (Job, error)
	ListAll(ctx context.Context, limit, offset int) ([]Job, error)
	DeleteAny(ctx context.Context, id uuid.UUID) error
}
