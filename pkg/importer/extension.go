package importer

import (
	"encoding/json"
	"fmt"

	"github.com/artem13815/cvbuilder/pkg/profile"
)

// Импорт из браузерного расширения: расширение присылает уже
// структурированный JSON в форме PartialProfile (например, собранный со
// страницы LinkedIn-профиля). Форму нормализуем на этой границе.

// DecodeExtensionPayload разбирает тело сообщения расширения.
func DecodeExtensionPayload(body []byte) (profile.PartialProfile, error) {
	var pp profile.PartialProfile
	if err := json.Unmarshal(body, &pp); err != nil {
		return profile.PartialProfile{}, fmt.Errorf("invalid extension payload: %w", err)
	}
	Sanitize(&pp)
	return pp, nil
}

// Sanitize приводит кандидата к форме, которой доверяет слияние: у каждой
// записи коллекций вместо nil-срезов — пустые. Слияние само форму не
// проверяет, это контракт границы импорта.
func Sanitize(pp *profile.PartialProfile) {
	for i := range pp.WorkExperience {
		if pp.WorkExperience[i].Description == nil {
			pp.WorkExperience[i].Description = []string{}
		}
		if pp.WorkExperience[i].Technologies == nil {
			pp.WorkExperience[i].Technologies = []string{}
		}
	}
	for i := range pp.Education {
		if pp.Education[i].Achievements == nil {
			pp.Education[i].Achievements = []string{}
		}
	}
	for i := range pp.Projects {
		if pp.Projects[i].Description == nil {
			pp.Projects[i].Description = []string{}
		}
		if pp.Projects[i].Technologies == nil {
			pp.Projects[i].Technologies = []string{}
		}
	}
	for i := range pp.Skills {
		if pp.Skills[i].Items == nil {
			pp.Skills[i].Items = []string{}
		}
	}
}
