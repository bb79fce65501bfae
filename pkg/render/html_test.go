package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvbuilder/pkg/profile"
	"github.com/artem13815/cvbuilder/pkg/resume"
)

func TestRenderHTMLIncludesProfileData(t *testing.T) {
	d := resume.Document{
		Title: "CV",
		Profile: profile.Profile{
			FirstName: "Иван",
			LastName:  "Петров",
			Email:     "ivan@example.com",
			WorkExperience: []profile.WorkExperience{
				{Company: "Acme", Position: "Backend Developer", Date: "2021 - 2023"},
			},
			Skills: []profile.Skill{{Category: "Languages", Items: []string{"Go", "SQL"}}},
		},
		Settings: resume.DefaultSettings(),
	}

	html, err := RenderHTML(d)
	require.NoError(t, err)

	assert.Contains(t, html, "Иван")
	assert.Contains(t, html, "Acme")
	assert.Contains(t, html, "Backend Developer")
	assert.Contains(t, html, "Go")
	assert.Contains(t, html, d.Settings.ThemeColor)
	assert.Contains(t, html, d.Settings.FontFamily)
}

func TestRenderHTMLRejectsUnknownFont(t *testing.T) {
	d := resume.Document{Settings: resume.StyleSettings{
		FontFamily:   "Comic Sans MS",
		DocumentSize: "A4",
	}}

	_, err := RenderHTML(d)
	require.Error(t, err)
	assert.True(t, IsUnsupportedFont(err))
	assert.True(t, strings.Contains(err.Error(), "Comic Sans MS"), "ошибка называет шрифт")
}

func TestPageSizeFor(t *testing.T) {
	assert.Equal(t, PageA4, PageSizeFor("A4"))
	assert.Equal(t, PageLetter, PageSizeFor("Letter"))
	assert.Equal(t, PageLetter, PageSizeFor(" letter "))
	// неизвестное значение — A4
	assert.Equal(t, PageA4, PageSizeFor("Tabloid"))
	assert.Equal(t, PageA4, PageSizeFor(""))
}
