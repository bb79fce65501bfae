package resume

import (
	"encoding/json"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/artem13815/cvbuilder/pkg/profile"
)

// Ключ содержимого — детерминированный хеш проекции документа, по которой
// кеш отрендеренных PDF решает, изменилось ли что-то видимое. В проекцию
// входят контактные поля, четыре коллекции и настройки оформления;
// идентификаторы и таймстемпы на вёрстку не влияют и исключены, поэтому
// два deepEqual-документа дают одинаковый ключ.

type keyProjection struct {
	FirstName   string `json:"fn"`
	LastName    string `json:"ln"`
	Email       string `json:"em"`
	Phone       string `json:"ph"`
	Location    string `json:"lo"`
	Website     string `json:"ws"`
	LinkedInURL string `json:"li"`
	GitHubURL   string `json:"gh"`
	PhotoURL    string `json:"pu"`

	WorkExperience []profile.WorkExperience `json:"we"`
	Education      []profile.Education      `json:"ed"`
	Projects       []profile.Project        `json:"pr"`
	Skills         []profile.Skill          `json:"sk"`

	Settings StyleSettings `json:"st"`
}

// ContentKey возвращает ключ содержимого документа.
func ContentKey(d Document) string {
	p := keyProjection{
		FirstName:      d.Profile.FirstName,
		LastName:       d.Profile.LastName,
		Email:          d.Profile.Email,
		Phone:          d.Profile.Phone,
		Location:       d.Profile.Location,
		Website:        d.Profile.Website,
		LinkedInURL:    d.Profile.LinkedInURL,
		GitHubURL:      d.Profile.GitHubURL,
		PhotoURL:       d.Profile.PhotoURL,
		WorkExperience: d.Profile.WorkExperience,
		Education:      d.Profile.Education,
		Projects:       d.Profile.Projects,
		Skills:         d.Profile.Skills,
		Settings:       d.Settings,
	}
	// json.Marshal детерминирован для структур: порядок полей фиксирован.
	raw, err := json.Marshal(p)
	if err != nil {
		// Marshal структуры из строк и срезов не падает; ветка на случай
		// будущих полей с несериализуемыми типами.
		return "unkeyed"
	}
	return strconv.FormatUint(xxhash.Sum64(raw), 16)
}
