package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound возвращается репозиторием, когда профиль ещё не создавался.
var ErrNotFound = errors.New("profile not found")

// UseCase — сценарии работы с профилем пользователя.
type UseCase interface {
	Get(ctx context.Context, ownerID uuid.UUID) (Profile, error)
	// Save чистит пустые записи, сохраняет профиль и возвращает
	// неблокирующие предупреждения о дубликатах.
	Save(ctx context.Context, ownerID uuid.UUID, p Profile) (Profile, DuplicateWarnings, error)
	// Import сливает кандидата из любого источника импорта в текущий
	// профиль: только добавление нового, ничего не теряется.
	Import(ctx context.Context, ownerID uuid.UUID, candidate PartialProfile, approved ApprovedScalars) (Profile, error)
	// Reset очищает все поля и коллекции, сам профиль остаётся.
	Reset(ctx context.Context, ownerID uuid.UUID) (Profile, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService возвращает реализацию UseCase по умолчанию.
func NewService(repo Repository) UseCase {
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// Get возвращает профиль владельца; если его ещё нет — пустой профиль
// с проставленным владельцем, без записи в хранилище.
func (s *service) Get(ctx context.Context, ownerID uuid.UUID) (Profile, error) {
	p, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return emptyProfile(ownerID), nil
		}
		return Profile{}, err
	}
	return p, nil
}

func (s *service) Save(ctx context.Context, ownerID uuid.UUID, p Profile) (Profile, DuplicateWarnings, error) {
	existing, err := s.Get(ctx, ownerID)
	if err != nil {
		return Profile{}, DuplicateWarnings{}, err
	}
	p.ID = existing.ID
	p.OwnerID = ownerID
	p.CreatedAt = existing.CreatedAt

	p = FilterEmpty(p)
	warns := ScanDuplicates(p)

	p.UpdatedAt = s.now()
	if err := s.repo.Upsert(ctx, p); err != nil {
		return Profile{}, DuplicateWarnings{}, err
	}
	return p, warns, nil
}

func (s *service) Import(ctx context.Context, ownerID uuid.UUID, candidate PartialProfile, approved ApprovedScalars) (Profile, error) {
	existing, err := s.Get(ctx, ownerID)
	if err != nil {
		return Profile{}, err
	}
	merged := Merge(existing, candidate, approved)
	merged = FilterEmpty(merged)
	merged.UpdatedAt = s.now()
	if err := s.repo.Upsert(ctx, merged); err != nil {
		return Profile{}, err
	}
	return merged, nil
}

func (s *service) Reset(ctx context.Context, ownerID uuid.UUID) (Profile, error) {
	existing, err := s.Get(ctx, ownerID)
	if err != nil {
		return Profile{}, err
	}
	p := emptyProfile(ownerID)
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = s.now()
	if err := s.repo.Upsert(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func emptyProfile(ownerID uuid.UUID) Profile {
	return Profile{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		WorkExperience: []WorkExperience{},
		Education:      []Education{},
		Projects:       []Project{},
		Skills:         []Skill{},
	}
}
