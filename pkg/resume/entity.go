package resume

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/cvbuilder/pkg/profile"
)

// Document — редактируемое резюме: снимок данных профиля плюс настройки
// оформления. У пользователя может быть несколько документов (например,
// по одному на вакансию).
type Document struct {
	ID        uuid.UUID           `json:"id"`
	OwnerID   uuid.UUID           `json:"ownerId"`
	Title     string              `json:"title"`
	Profile   profile.Profile     `json:"profile"`
	Settings  StyleSettings       `json:"settings"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// StyleSettings управляют вёрсткой PDF.
type StyleSettings struct {
	ThemeColor   string  `json:"themeColor"`
	FontFamily   string  `json:"fontFamily"`
	FontSizePt   float64 `json:"fontSizePt"`
	DocumentSize string  `json:"documentSize"` // "A4" или "Letter"
}

// DefaultSettings — настройки нового документа.
func DefaultSettings() StyleSettings {
	return StyleSettings{
		ThemeColor:   "#38bdf8",
		FontFamily:   "Roboto",
		FontSizePt:   11,
		DocumentSize: "A4",
	}
}

// Repository — порт хранения документов.
type Repository interface {
	Create(ctx context.Context, d Document) error
	Update(ctx context.Context, d Document) error
	// Только данные владельца
	GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (Document, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Document, error)
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
	// Админ-доступ без фильтра владельца
	GetAny(ctx context.Context, id uuid.UUID) (Document, error)
	ListAll(ctx context.Context, limit, offset int) ([]Document, error)
	DeleteAny(ctx context.Context, id uuid.UUID) error
}
