package resume

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/cvbuilder/pkg/profile"
)

// UseCase — сценарии работы с документами резюме.
type UseCase interface {
	Create(ctx context.Context, ownerID uuid.UUID, title string, snapshot profile.Profile) (Document, error)
	Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (Document, error)
	List(ctx context.Context, actorID uuid.UUID, isAdmin bool, limit, offset int) ([]Document, error)
	Update(ctx context.Context, actorID uuid.UUID, isAdmin bool, d Document) (Document, error)
	Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

// ErrValidation — простая ошибка валидации.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, title string, snapshot profile.Profile) (Document, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Document{}, ErrValidation("title is required")
	}
	now := time.Now().UTC()
	d := Document{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     title,
		Profile:   profile.FilterEmpty(snapshot),
		Settings:  DefaultSettings(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return Document{}, err
	}
	return d, nil
}

func (s *service) Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (Document, error) {
	if isAdmin {
		return s.repo.GetAny(ctx, id)
	}
	return s.repo.GetForOwner(ctx, actorID, id)
}

func (s *service) List(ctx context.Context, actorID uuid.UUID, isAdmin bool, limit, offset int) ([]Document, error) {
	if isAdmin {
		return s.repo.ListAll(ctx, limit, offset)
	}
	return s.repo.ListByOwner(ctx, actorID, limit, offset)
}

func (s *service) Update(ctx context.Context, actorID uuid.UUID, isAdmin bool, d Document) (Document, error) {
	current, err := s.Get(ctx, actorID, isAdmin, d.ID)
	if err != nil {
		return Document{}, err
	}
	d.OwnerID = current.OwnerID
	d.CreatedAt = current.CreatedAt
	if strings.TrimSpace(d.Title) == "" {
		d.Title = current.Title
	}
	if d.Settings.DocumentSize == "" {
		d.Settings = current.Settings
	}
	d.Profile = profile.FilterEmpty(d.Profile)
	d.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, d); err != nil {
		return Document{}, err
	}
	return d, nil
}

func (s *service) Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	if isAdmin {
		return s.repo.DeleteAny(ctx, id)
	}
	return s.repo.DeleteForOwner(ctx, actorID, id)
}
