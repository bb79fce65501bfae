package profile

import "strings"

// Слияние импортированного кандидата в существующий профиль: добавляем
// только новые записи, ничего не удаляем и не переставляем. Дубликаты
// определяются по нормализованным ключам (нижний регистр, без краевых
// пробелов). Сравнение идёт только новое-против-существующего: если сам
// импорт содержит внутренние дубликаты, обе записи будут добавлены —
// источники импорта считаются предварительно дедуплицированными.

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Ключи work experience: запись считается дубликатом при совпадении
// либо по дате, либо по локации.
func workKeyByDate(w WorkExperience) string {
	return norm(w.Position) + "|" + norm(w.Company) + "|" + norm(w.Date)
}

func workKeyByLocation(w WorkExperience) string {
	return norm(w.Position) + "|" + norm(w.Company) + "|" + norm(w.Location)
}

func educationKey(e Education) string {
	return norm(e.School) + "|" + norm(e.Degree) + "|" + norm(e.Field)
}

func projectKey(p Project) string {
	return norm(p.Name)
}

func skillKey(s Skill) string {
	return norm(s.Category)
}

// Merge возвращает профиль, в котором к existing добавлены только новые
// записи candidate. Скаляры перезаписываются только одобренными значениями
// из approved (присутствующий указатель перезаписывает даже пустой
// строкой). Функция чистая и тотальная: existing и candidate не мутируются,
// ошибок нет; нормализация кривых форм кандидата — забота границы импорта.
func Merge(existing Profile, candidate PartialProfile, approved ApprovedScalars) Profile {
	out := existing
	out.WorkExperience = append([]WorkExperience(nil), existing.WorkExperience...)
	out.Education = append([]Education(nil), existing.Education...)
	out.Projects = append([]Project(nil), existing.Projects...)
	out.Skills = append([]Skill(nil), existing.Skills...)

	applyScalars(&out, approved)

	if candidate.WorkExperience != nil {
		seen := make(map[string]struct{}, len(out.WorkExperience)*2)
		for _, w := range out.WorkExperience {
			seen[workKeyByDate(w)] = struct{}{}
			seen[workKeyByLocation(w)] = struct{}{}
		}
		for _, w := range candidate.WorkExperience {
			if _, dup := seen[workKeyByDate(w)]; dup {
				continue
			}
			if _, dup := seen[workKeyByLocation(w)]; dup {
				continue
			}
			out.WorkExperience = append(out.WorkExperience, w)
		}
	}

	if candidate.Education != nil {
		seen := make(map[string]struct{}, len(out.Education))
		for _, e := range out.Education {
			seen[educationKey(e)] = struct{}{}
		}
		for _, e := range candidate.Education {
			if _, dup := seen[educationKey(e)]; dup {
				continue
			}
			out.Education = append(out.Education, e)
		}
	}

	if candidate.Projects != nil {
		seen := make(map[string]struct{}, len(out.Projects))
		for _, p := range out.Projects {
			seen[projectKey(p)] = struct{}{}
		}
		for _, p := range candidate.Projects {
			if _, dup := seen[projectKey(p)]; dup {
				continue
			}
			out.Projects = append(out.Projects, p)
		}
	}

	if candidate.Skills != nil {
		index := make(map[string]int, len(out.Skills))
		for i, s := range out.Skills {
			index[skillKey(s)] = i
		}
		for _, s := range candidate.Skills {
			i, dup := index[skillKey(s)]
			if !dup {
				out.Skills = append(out.Skills, s)
				continue
			}
			// Совпадение категории — объединяем items как множество,
			// дополняя существующую запись на месте.
			entry := out.Skills[i]
			items := append([]string(nil), entry.Items...)
			have := make(map[string]struct{}, len(items))
			for _, it := range items {
				have[norm(it)] = struct{}{}
			}
			for _, it := range s.Items {
				if _, ok := have[norm(it)]; ok {
					continue
				}
				have[norm(it)] = struct{}{}
				items = append(items, it)
			}
			entry.Items = items
			out.Skills[i] = entry
		}
	}

	return out
}

func applyScalars(p *Profile, a ApprovedScalars) {
	if a.FirstName != nil {
		p.FirstName = *a.FirstName
	}
	if a.LastName != nil {
		p.LastName = *a.LastName
	}
	if a.Email != nil {
		p.Email = *a.Email
	}
	if a.Phone != nil {
		p.Phone = *a.Phone
	}
	if a.Location != nil {
		p.Location = *a.Location
	}
	if a.Website != nil {
		p.Website = *a.Website
	}
	if a.LinkedInURL != nil {
		p.LinkedInURL = *a.LinkedInURL
	}
	if a.GitHubURL != nil {
		p.GitHubURL = *a.GitHubURL
	}
}
