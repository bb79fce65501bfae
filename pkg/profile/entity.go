package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Profile — канонические карьерные данные пользователя: контактные поля
// и четыре упорядоченные коллекции. Меняется только явным сохранением.
type Profile struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Location    string    `json:"location"`
	Website     string    `json:"website"`
	LinkedInURL string    `json:"linkedinUrl"`
	GitHubURL   string    `json:"githubUrl"`
	PhotoURL    string    `json:"photoUrl,omitempty"`

	WorkExperience []WorkExperience `json:"workExperience"`
	Education      []Education      `json:"education"`
	Projects       []Project        `json:"projects"`
	Skills         []Skill          `json:"skills"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type WorkExperience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Location     string   `json:"location"`
	Date         string   `json:"date"` // свободный текст периода, например "2021 - 2023"
	Description  []string `json:"description"`
	Technologies []string `json:"technologies"`
}

type Education struct {
	School       string   `json:"school"`
	Degree       string   `json:"degree"`
	Field        string   `json:"field"`
	Date         string   `json:"date"`
	Location     string   `json:"location"`
	Achievements []string `json:"achievements"`
	GPA          *float64 `json:"gpa,omitempty"`
}

type Project struct {
	Name         string   `json:"name"`
	Description  []string `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url"`
	GitHubURL    string   `json:"githubUrl"`
	Date         string   `json:"date"`
}

type Skill struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// PartialProfile — кандидат на импорт из любого источника (файл, текст,
// браузерное расширение). Скаляры через указатели: nil означает "поле не
// пришло", отсутствующая коллекция (nil) — no-op для этой коллекции.
type PartialProfile struct {
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Location    *string `json:"location,omitempty"`
	Website     *string `json:"website,omitempty"`
	LinkedInURL *string `json:"linkedinUrl,omitempty"`
	GitHubURL   *string `json:"githubUrl,omitempty"`

	WorkExperience []WorkExperience `json:"workExperience,omitempty"`
	Education      []Education      `json:"education,omitempty"`
	Projects       []Project        `json:"projects,omitempty"`
	Skills         []Skill          `json:"skills,omitempty"`
}

// ApprovedScalars — скалярные поля кандидата, которые пользователь явно
// одобрил к перезаписи. Присутствующий ключ перезаписывает значение в
// профиле даже пустой строкой; отсутствующий — оставляет как было.
type ApprovedScalars struct {
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Location    *string `json:"location,omitempty"`
	Website     *string `json:"website,omitempty"`
	LinkedInURL *string `json:"linkedinUrl,omitempty"`
	GitHubURL   *string `json:"githubUrl,omitempty"`
}

// Repository — порт хранения профилей, один профиль на пользователя.
type Repository interface {
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (Profile, error)
	Upsert(ctx context.Context, p Profile) error
}
