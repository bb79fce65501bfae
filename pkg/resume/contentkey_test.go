package resume

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/artem13815/cvbuilder/pkg/profile"
)

func sampleDocument() Document {
	return Document{
		ID:      uuid.New(),
		OwnerID: uuid.New(),
		Title:   "Backend Developer",
		Profile: profile.Profile{
			FirstName: "Иван",
			LastName:  "Петров",
			Email:     "ivan@example.com",
			WorkExperience: []profile.WorkExperience{
				{Company: "Acme", Position: "Dev", Date: "2021 - 2023", Description: []string{"делал бэкенд"}},
			},
			Skills: []profile.Skill{{Category: "Languages", Items: []string{"Go"}}},
		},
		Settings:  DefaultSettings(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestContentKeyStableAcrossIdentityFields(t *testing.T) {
	d1 := sampleDocument()
	d2 := d1
	// другой id, владелец и таймстемпы — содержимое то же
	d2.ID = uuid.New()
	d2.OwnerID = uuid.New()
	d2.CreatedAt = d1.CreatedAt.Add(time.Hour)
	d2.UpdatedAt = d1.UpdatedAt.Add(time.Hour)

	assert.Equal(t, ContentKey(d1), ContentKey(d2))
}

func TestContentKeyChangesWithContent(t *testing.T) {
	d1 := sampleDocument()

	d2 := d1
	d2.Profile.FirstName = "Пётр"
	assert.NotEqual(t, ContentKey(d1), ContentKey(d2))

	d3 := d1
	d3.Settings.ThemeColor = "#ef4444"
	assert.NotEqual(t, ContentKey(d1), ContentKey(d3))

	d4 := d1
	d4.Settings.FontSizePt = 12
	assert.NotEqual(t, ContentKey(d1), ContentKey(d4))
}

func TestContentKeyIgnoresTitle(t *testing.T) {
	// название документа на вёрстку резюме не влияет
	d1 := sampleDocument()
	d2 := d1
	d2.Title = "Другое название"
	assert.Equal(t, ContentKey(d1), ContentKey(d2))
}

func TestContentKeyDeterministic(t *testing.T) {
	d := sampleDocument()
	assert.Equal(t, ContentKey(d), ContentKey(d))
}
