package tailor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/cvbuilder/pkg/job"
	"github.com/artem13815/cvbuilder/pkg/llm"
	"github.com/artem13815/cvbuilder/pkg/nlp"
	"github.com/artem13815/cvbuilder/pkg/resume"
)

// UseCase — сценарии подгонки резюме под вакансию.
type UseCase interface {
	Create(ctx context.Context, actorID uuid.UUID, isAdmin bool, resumeID, jobID uuid.UUID) (Tailoring, error)
	Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (Tailoring, error)
	List(ctx context.Context, actorID uuid.UUID, isAdmin bool, limit, offset int) ([]Tailoring, error)
	ListByJob(ctx context.Context, actorID uuid.UUID, isAdmin bool, jobID uuid.UUID, limit, offset int) ([]Tailoring, error)
	Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error
}

type service struct {
	repo      Repository
	resumes   resume.Repository
	jobs      job.Repository
	llm       llm.ChatModel
	modelName string
}

func NewService(repo Repository, resumes resume.Repository, jobs job.Repository, model llm.ChatModel, modelName string) UseCase {
	return &service{
		repo:      repo,
		resumes:   resumes,
		jobs:      jobs,
		llm:       model,
		modelName: modelName,
	}
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, isAdmin bool, resumeID, jobID uuid.UUID) (Tailoring, error) {
	// Проверка доступа: резюме и вакансия должны принадлежать актору
	// (кроме админа).
	var j job.Job
	var doc resume.Document
	var err error
	if isAdmin {
		j, err = s.jobs.GetByIDAny(ctx, jobID)
		if err != nil {
			return Tailoring{}, err
		}
		doc, err = s.resumes.GetAny(ctx, resumeID)
		if err != nil {
			return Tailoring{}, err
		}
	} else {
		j, err = s.jobs.GetByIDForOwner(ctx, actorID, jobID)
		if err != nil {
			return Tailoring{}, err
		}
		doc, err = s.resumes.GetForOwner(ctx, actorID, resumeID)
		if err != nil {
			return Tailoring{}, err
		}
	}

	text := FlattenDocument(doc)
	if strings.TrimSpace(text) == "" {
		return Tailoring{}, errors.New("пустое резюме: нечего сопоставлять")
	}

	matched, missing, score := MatchKeywords(j.Keywords, text)
	if matched == nil {
		matched = []string{}
	}
	if missing == nil {
		missing = []string{}
	}

	rep := Report{
		MatchedKeywords: matched,
		MissingKeywords: missing,
	}

	// Пытаемся обогатить через LLM; при отказе остаётся детерминированный отчёт.
	modelUsed := ""
	if s.llm != nil {
		llmReport, err := s.askLLM(ctx, j, text, matched, missing)
		if err == nil {
			rep.CandidateSummary = llmReport.CandidateSummary
			rep.UniqueStrengths = llmReport.UniqueStrengths
			rep.AIRecommendationForCandidate = llmReport.AIRecommendationForCandidate
			modelUsed = s.modelName
		} else {
			rep.CandidateSummary = fmt.Sprintf("LLM временно недоступен: %v", err)
		}
	}

	t := Tailoring{
		ID:        uuid.New(),
		ResumeID:  resumeID,
		JobID:     jobID,
		Score:     score,
		Model:     modelUsed,
		Report:    rep,
		CreatedAt: time.Now().UTC(),
	}
	return s.repo.Create(ctx, t)
}

func (s *service) Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (Tailoring, error) {
	if isAdmin {
		return s.repo.GetByIDAny(ctx, id)
	}
	return s.repo.GetByIDForOwner(ctx, actorID, id)
}

func (s *service) List(ctx context.Context, actorID uuid.UUID, isAdmin bool, limit, offset int) ([]Tailoring, error) {
	if isAdmin {
		return s.repo.ListAll(ctx, limit, offset)
	}
	return s.repo.ListByOwner(ctx, actorID, limit, offset)
}

func (s *service) ListByJob(ctx context.Context, actorID uuid.UUID, isAdmin bool, jobID uuid.UUID, limit, offset int) ([]Tailoring, error) {
	if isAdmin {
		return s.repo.ListAll(ctx, limit, offset)
	}
	return s.repo.ListByJobForOwner(ctx, actorID, jobID, limit, offset)
}

func (s *service) Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	if isAdmin {
		return s.repo.DeleteAny(ctx, id)
	}
	return s.repo.DeleteForOwner(ctx, actorID, id)
}

type llmPayload struct {
	CandidateSummary             string   `json:"candidateSummary"`
	UniqueStrengths              []string `json:"uniqueStrengths"`
	AIRecommendationForCandidate []string `json:"aiRecommendationForCandidate"`
}

func (s *service) askLLM(ctx context.Context, j job.Job, resumeText string, matched, missing []string) (llmPayload, error) {
	system := "Ты карьерный консультант. Верни результат строго в JSON без пояснений."
	user := fmt.Sprintf(
		"Вакансия:\nНазвание: %s\nКомпания: %s\nОписание: %s\n\nСовпавшие ключевые слова: %s\nОтсутствующие ключевые слова: %s\n\nТекст резюме:\n<<<\n%s\n>>>\n\nВерни JSON с полями:\n- candidateSummary (string)\n- uniqueStrengths (string[])\n- aiRecommendationForCandidate (string[])\n",
		j.Title,
		j.Company,
		j.Description,
		strings.Join(matched, ", "),
		strings.Join(missing, ", "),
		resumeText,
	)
	raw, err := s.llm.Ask(ctx, system, user)
	if err != nil {
		return llmPayload{}, err
	}
	raw = strings.TrimSpace(raw)
	var out llmPayload
	if err := json.Unmarshal([]byte(raw), &out); err == nil {
		return out, nil
	}
	// best-effort: вытащить JSON из окружающего текста
	if i := strings.Index(raw, "{"); i >= 0 {
		if j := strings.LastIndex(raw, "}"); j > i {
			_ = json.Unmarshal([]byte(raw[i:j+1]), &out)
			if out.CandidateSummary != "" || len(out.AIRecommendationForCandidate) > 0 {
				return out, nil
			}
		}
	}
	return llmPayload{}, fmt.Errorf("не удалось распарсить JSON ответ LLM")
}

// MatchKeywords сопоставляет ключевые слова вакансии с текстом резюме.
// Сравнение идёт по нормализованным фразам с учётом синонимов (go/golang,
// k8s/kubernetes и т.п.), скор — взвешенная доля покрытых слов.
func MatchKeywords(keywords []job.KeywordWeight, resumeText string) (matched []string, missing []string, score float32) {
	norm := nlp.Normalize(resumeText)
	var total float32
	var got float32
	for _, kw := range keywords {
		name := strings.TrimSpace(kw.Keyword)
		if name == "" {
			continue
		}
		w := kw.Weight
		if w < 0 {
			w = 0
		}
		total += w
		found := false
		for _, variant := range nlp.SkillVariants(name) {
			if nlp.ContainsPhrase(norm, variant) {
				found = true
				break
			}
		}
		if found {
			matched = append(matched, kw.Keyword)
			got += w
		} else {
			missing = append(missing, kw.Keyword)
		}
	}
	if total <= 0 {
		return matched, missing, 0
	}
	return matched, missing, got / total
}

// FlattenDocument собирает текстовое представление документа для
// сопоставления ключевых слов и промптов.
func FlattenDocument(d resume.Document) string {
	var b strings.Builder
	p := d.Profile
	for _, s := range []string{p.FirstName, p.LastName, p.Location} {
		if s != "" {
			b.WriteString(s)
			b.WriteString(" ")
		}
	}
	b.WriteString("\n")
	for _, w := range p.WorkExperience {
		b.WriteString(w.Position + " " + w.Company + " " + w.Date + "\n")
		for _, l := range w.Description {
			b.WriteString(l + "\n")
		}
		b.WriteString(strings.Join(w.Technologies, " ") + "\n")
	}
	for _, pr := range p.Projects {
		b.WriteString(pr.Name + "\n")
		for _, l := range pr.Description {
			b.WriteString(l + "\n")
		}
		b.WriteString(strings.Join(pr.Technologies, " ") + "\n")
	}
	for _, e := range p.Education {
		b.WriteString(e.School + " " + e.Degree + " " + e.Field + "\n")
		for _, a := range e.Achievements {
			b.WriteString(a + "\n")
		}
	}
	for _, sk := range p.Skills {
		b.WriteString(sk.Category + " " + strings.Join(sk.Items, " ") + "\n")
	}
	return b.String()
}
