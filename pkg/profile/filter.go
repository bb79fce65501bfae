package profile

import "strings"

// Перед сохранением профиль чистится от пустых записей (следы спекулятивных
// "добавить строку" в форме), а затем прогоняется диагностика дубликатов,
// которая лишь предупреждает и никогда не блокирует сохранение.

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func allBlank(ss []string) bool {
	for _, s := range ss {
		if !blank(s) {
			return false
		}
	}
	return true
}

func (w WorkExperience) IsEmpty() bool {
	return blank(w.Company) && blank(w.Position) && blank(w.Location) &&
		blank(w.Date) && allBlank(w.Description) && allBlank(w.Technologies)
}

func (e Education) IsEmpty() bool {
	return blank(e.School) && blank(e.Degree) && blank(e.Field) &&
		blank(e.Date) && blank(e.Location) && allBlank(e.Achievements) && e.GPA == nil
}

func (p Project) IsEmpty() bool {
	return blank(p.Name) && allBlank(p.Description) && allBlank(p.Technologies) &&
		blank(p.URL) && blank(p.GitHubURL) && blank(p.Date)
}

func (s Skill) IsEmpty() bool {
	return blank(s.Category) && allBlank(s.Items)
}

// FilterEmpty возвращает профиль без пустых записей в коллекциях, сохраняя
// порядок. Идемпотентна: FilterEmpty(FilterEmpty(p)) == FilterEmpty(p).
func FilterEmpty(p Profile) Profile {
	out := p
	out.WorkExperience = make([]WorkExperience, 0, len(p.WorkExperience))
	for _, w := range p.WorkExperience {
		if !w.IsEmpty() {
			out.WorkExperience = append(out.WorkExperience, w)
		}
	}
	out.Education = make([]Education, 0, len(p.Education))
	for _, e := range p.Education {
		if !e.IsEmpty() {
			out.Education = append(out.Education, e)
		}
	}
	out.Projects = make([]Project, 0, len(p.Projects))
	for _, pr := range p.Projects {
		if !pr.IsEmpty() {
			out.Projects = append(out.Projects, pr)
		}
	}
	out.Skills = make([]Skill, 0, len(p.Skills))
	for _, s := range p.Skills {
		if !s.IsEmpty() {
			out.Skills = append(out.Skills, s)
		}
	}
	return out
}

// DuplicateWarnings — флаги "в коллекции есть повтор". Навыки не
// сканируются: одинаковые категории сливаются ещё при импорте.
type DuplicateWarnings struct {
	Experience bool `json:"experience"`
	Education  bool `json:"education"`
	Projects   bool `json:"projects"`
}

// Any сообщает, есть ли хоть одно предупреждение.
func (d DuplicateWarnings) Any() bool {
	return d.Experience || d.Education || d.Projects
}

// ScanDuplicates ищет повторы внутри каждой из трёх коллекций по тем же
// ключам, что и слияние. Первая встреченная запись "занимает" ключ, любой
// последующий повтор поднимает флаг и прекращает сканирование коллекции.
// Функция только читает профиль.
func ScanDuplicates(p Profile) DuplicateWarnings {
	var out DuplicateWarnings

	seenW := make(map[string]struct{}, len(p.WorkExperience)*2)
	for _, w := range p.WorkExperience {
		kd, kl := workKeyByDate(w), workKeyByLocation(w)
		if _, ok := seenW[kd]; ok {
			out.Experience = true
			break
		}
		if _, ok := seenW[kl]; ok {
			out.Experience = true
			break
		}
		seenW[kd] = struct{}{}
		seenW[kl] = struct{}{}
	}

	seenE := make(map[string]struct{}, len(p.Education))
	for _, e := range p.Education {
		k := educationKey(e)
		if _, ok := seenE[k]; ok {
			out.Education = true
			break
		}
		seenE[k] = struct{}{}
	}

	seenP := make(map[string]struct{}, len(p.Projects))
	for _, pr := range p.Projects {
		k := projectKey(pr)
		if _, ok := seenP[k]; ok {
			out.Projects = true
			break
		}
		seenP[k] = struct{}{}
	}

	return out
}
