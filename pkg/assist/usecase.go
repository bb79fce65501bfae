package assist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/artem13815/cvbuilder/pkg/llm"
	"github.com/artem13815/cvbuilder/pkg/profile"
	"github.com/artem13815/cvbuilder/pkg/resume"
	"github.com/artem13815/cvbuilder/pkg/tailor"
)

// UseCase — генерация контента резюме с помощью LLM: буллеты опыта,
// сопроводительные письма, оценка резюме.
type UseCase interface {
	ExperienceBullets(ctx context.Context, exp profile.WorkExperience, jobDescription string) ([]string, error)
	CoverLetter(ctx context.Context, doc resume.Document, jobTitle, company, jobDescription string) (string, error)
	ScoreResume(ctx context.Context, doc resume.Document) (Score, error)
}

// Score — оценка резюме по стобалльной шкале с рекомендациями.
type Score struct {
	Value           int      `json:"value"` // 0..100
	Strengths       []string `json:"strengths"`
	Recommendations []string `json:"recommendations"`
}

type service struct {
	llm      llm.ChatModel
	maxChars int
}

func NewService(model llm.ChatModel) UseCase {
	return &service{llm: model, maxChars: 12000}
}

var errNoLLM = errors.New("LLM не настроена")

func (s *service) ExperienceBullets(ctx context.Context, exp profile.WorkExperience, jobDescription string) ([]string, error) {
	if s.llm == nil {
		return nil, errNoLLM
	}
	system := "Ты карьерный консультант. Верни результат СТРОГО в JSON без пояснений. Пустые массивы возвращай как [], не null. Не выдумывай факты."
	var jobPart string
	if strings.TrimSpace(jobDescription) != "" {
		jobPart = fmt.Sprintf("\nПодстрой формулировки под вакансию:\n<<<\n%s\n>>>\n", truncate(jobDescription, s.maxChars/2))
	}
	user := fmt.Sprintf(
		"Позиция: %s\nКомпания: %s\nПериод: %s\nТехнологии: %s\nТекущее описание:\n%s\n%s\nПерепиши описание как 3-5 сильных буллетов (глагол действия, результат, метрика где уместно).\nВерни JSON: {\"bullets\": string[]}\n",
		exp.Position, exp.Company, exp.Date,
		strings.Join(exp.Technologies, ", "),
		strings.Join(exp.Description, "\n"),
		jobPart,
	)
	raw, err := s.llm.Ask(ctx, system, user)
	if err != nil {
		return nil, err
	}
	var out struct {
		Bullets []string `json:"bullets"`
	}
	if err := decodeJSON(raw, &out); err != nil {
		return nil, err
	}
	if len(out.Bullets) == 0 {
		return nil, errors.New("модель не вернула буллеты")
	}
	return out.Bullets, nil
}

func (s *service) CoverLetter(ctx context.Context, doc resume.Document, jobTitle, company, jobDescription string) (string, error) {
	if s.llm == nil {
		return "", errNoLLM
	}
	text := truncate(tailor.FlattenDocument(doc), s.maxChars)
	system := "Ты карьерный консультант. Пиши от первого лица, без клише и воды, на языке описания вакансии."
	user := fmt.Sprintf(
		"Резюме кандидата:\n<<<\n%s\n>>>\n\nВакансия: %s в %s\nОписание вакансии:\n<<<\n%s\n>>>\n\nНапиши сопроводительное письмо на 3 абзаца: зацепка, релевантный опыт с фактами из резюме, призыв к действию. Верни только текст письма.",
		text, jobTitle, company, truncate(jobDescription, s.maxChars/2),
	)
	raw, err := s.llm.Ask(ctx, system, user)
	if err != nil {
		return "", err
	}
	letter := strings.TrimSpace(raw)
	if letter == "" {
		return "", errors.New("модель вернула пустое письмо")
	}
	return letter, nil
}

func (s *service) ScoreResume(ctx context.Context, doc resume.Document) (Score, error) {
	if s.llm == nil {
		return Score{}, errNoLLM
	}
	text := truncate(tailor.FlattenDocument(doc), s.maxChars)
	system := "Ты HR-аналитик. Верни результат СТРОГО в JSON без пояснений."
	user := fmt.Sprintf(
		"Текст резюме:\n<<<\n%s\n>>>\n\nОцени резюме по шкале 0-100 (полнота, конкретика, измеримые результаты, читабельность).\nВерни JSON:\n{\"value\": number, \"strengths\": string[], \"recommendations\": string[]}\n",
		text,
	)
	raw, err := s.llm.Ask(ctx, system, user)
	if err != nil {
		return Score{}, err
	}
	var out Score
	if err := decodeJSON(raw, &out); err != nil {
		return Score{}, err
	}
	if out.Value < 0 {
		out.Value = 0
	}
	if out.Value > 100 {
		out.Value = 100
	}
	if out.Strengths == nil {
		out.Strengths = []string{}
	}
	if out.Recommendations == nil {
		out.Recommendations = []string{}
	}
	return out, nil
}

func decodeJSON(raw string, v any) error {
	raw = strings.TrimSpace(raw)
	if err := json.Unmarshal([]byte(raw), v); err == nil {
		return nil
	}
	if i := strings.Index(raw, "{"); i >= 0 {
		if j := strings.LastIndex(raw, "}"); j > i {
			if err := json.Unmarshal([]byte(raw[i:j+1]), v); err == nil {
				return nil
			}
		}
	}
	return errors.New("не удалось распарсить JSON ответ LLM")
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
