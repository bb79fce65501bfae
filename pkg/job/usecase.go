package job

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UseCase инкапсулирует приложение для работы с вакансиями.
type UseCase interface {
	Create(ctx context.Context, j Job) (Job, error)
	Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (Job, error)
	List(ctx context.Context, actorID uuid.UUID, isAdmin bool, limit, offset int) ([]Job, error)
	UpdateKeywords(ctx context.Context, actorID uuid.UUID, id uuid.UUID, keywords []KeywordWeight) error
	Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

// ErrValidation простая ошибка валидации.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

func (s *service) Create(ctx context.Context, j Job) (Job, error) {
	j.Title = strings.TrimSpace(j.Title)
	if j.Title == "" {
		return Job{}, ErrValidation("title is required")
	}
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now().UTC()
	}
	if err := s.repo.Create(ctx, j); err != nil {
		return Job{}, err
	}
	return j, nil
}

func (s *service) Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (Job, error) {
	if isAdmin {
		return s.repo.GetByIDAny(ctx, id)
	}
	return s.repo.GetByIDForOwner(ctx, actorID, id)
}

func (s *service) List(ctx context.Context, actorID uuid.UUID, isAdmin bool, limit, offset int) ([]Job, error) {
	if isAdmin {
		return s.repo.ListAll(ctx, limit, offset)
	}
	return s.repo.ListByOwner(ctx, actorID, limit, offset)
}

func (s *service) UpdateKeywords(ctx context.Context, actorID uuid.UUID, id uuid.UUID, keywords []KeywordWeight) error {
	return s.repo.UpdateKeywordsForOwner(ctx, actorID, id, keywords)
}

func (s *service) Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	if isAdmin {
		return s.repo.DeleteAny(ctx, id)
	}
	return s.repo.DeleteForOwner(ctx, actorID, id)
}
