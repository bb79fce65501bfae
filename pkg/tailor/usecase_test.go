package tailor

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvbuilder/pkg/job"
	"github.com/artem13815/cvbuilder/pkg/profile"
	"github.com/artem13815/cvbuilder/pkg/resume"
)

func TestMatchKeywordsVariantsAndScore(t *testing.T) {
	keywords := []job.KeywordWeight{
		{Keyword: "Golang", Weight: 0.6},     // в тексте "Go" — синоним
		{Keyword: "PostgreSQL", Weight: 0.3}, // в тексте "Postgres"
		{Keyword: "Kafka", Weight: 0.1},      // отсутствует
	}
	text := "Писал сервисы на Go, хранил данные в Postgres."

	matched, missing, score := MatchKeywords(keywords, text)

	assert.ElementsMatch(t, []string{"Golang", "PostgreSQL"}, matched)
	assert.Equal(t, []string{"Kafka"}, missing)
	assert.InDelta(t, 0.9, score, 0.0001)
}

func TestMatchKeywordsWholeWordsOnly(t *testing.T) {
	keywords := []job.KeywordWeight{{Keyword: "machine learning", Weight: 1}}

	_, missing, score := MatchKeywords(keywords, "изучал machine learnings")
	assert.Equal(t, []string{"machine learning"}, missing)
	assert.Zero(t, score)

	matched, _, score := MatchKeywords(keywords, "Machine Learning инженер")
	assert.Equal(t, []string{"machine learning"}, matched)
	assert.InDelta(t, 1.0, score, 0.0001)
}

func TestMatchKeywordsEmptyAndNegativeWeights(t *testing.T) {
	keywords := []job.KeywordWeight{
		{Keyword: "  ", Weight: 1},   // пустое слово пропускается
		{Keyword: "go", Weight: -5},  // отрицательный вес зажимается в 0
	}
	matched, _, score := MatchKeywords(keywords, "go разработчик")
	assert.Equal(t, []string{"go"}, matched)
	assert.Zero(t, score, "total нулевой — скор нулевой")
}

func TestFlattenDocumentCollectsProfileText(t *testing.T) {
	d := resume.Document{Profile: profile.Profile{
		FirstName: "Иван",
		WorkExperience: []profile.WorkExperience{
			{Position: "Dev", Company: "Acme", Date: "2020", Description: []string{"строил API"}, Technologies: []string{"Go"}},
		},
		Education: []profile.Education{{School: "МГУ", Degree: "Бакалавр", Field: "ПМ"}},
		Skills:    []profile.Skill{{Category: "Languages", Items: []string{"Go", "SQL"}}},
	}}

	text := FlattenDocument(d)

	assert.Contains(t, text, "Иван")
	assert.Contains(t, text, "Acme")
	assert.Contains(t, text, "строил API")
	assert.Contains(t, text, "МГУ")
	assert.Contains(t, text, "SQL")
}

// --- мок-инфраструктура для сценария Create ---

type mockTailoringRepo struct {
	created []Tailoring
}

func (m *mockTailoringRepo) Create(_ context.Context, t Tailoring) (Tailoring, error) {
	m.created = append(m.created, t)
	return t, nil
}
func (m *mockTailoringRepo) GetByIDForOwner(context.Context, uuid.UUID, uuid.UUID) (Tailoring, error) {
	return Tailoring{}, pgx.ErrNoRows
}
func (m *mockTailoringRepo) ListByOwner(context.Context, uuid.UUID, int, int) ([]Tailoring, error) {
	return nil, nil
}
func (m *mockTailoringRepo) ListByJobForOwner(context.Context, uuid.UUID, uuid.UUID, int, int) ([]Tailoring, error) {
	return nil, nil
}
func (m *mockTailoringRepo) GetByIDAny(context.Context, uuid.UUID) (Tailoring, error) {
	return Tailoring{}, pgx.ErrNoRows
}
func (m *mockTailoringRepo) ListAll(context.Context, int, int) ([]Tailoring, error) { return nil, nil }
func (m *mockTailoringRepo) DeleteForOwner(context.Context, uuid.UUID, uuid.UUID) error {
	return pgx.ErrNoRows
}
func (m *mockTailoringRepo) DeleteAny(context.Context, uuid.UUID) error { return pgx.ErrNoRows }

type mockResumeRepo struct{ doc resume.Document }

func (m *mockResumeRepo) Create(context.Context, resume.Document) error { return nil }
func (m *mockResumeRepo) Update(context.Context, resume.Document) error { return nil }
func (m *mockResumeRepo) GetForOwner(_ context.Context, ownerID, id uuid.UUID) (resume.Document, error) {
	if m.doc.ID == id && m.doc.OwnerID == ownerID {
		return m.doc, nil
	}
	return resume.Document{}, pgx.ErrNoRows
}
func (m *mockResumeRepo) GetAny(_ context.Context, id uuid.UUID) (resume.Document, error) {
	if m.doc.ID == id {
		return m.doc, nil
	}
	return resume.Document{}, pgx.ErrNoRows
}
func (m *mockResumeRepo) ListByOwner(context.Context, uuid.UUID, int, int) ([]resume.Document, error) {
	return nil, nil
}
func (m *mockResumeRepo) ListAll(context.Context, int, int) ([]resume.Document, error) {
	return nil, nil
}
func (m *mockResumeRepo) DeleteForOwner(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (m *mockResumeRepo) DeleteAny(context.Context, uuid.UUID) error                 { return nil }

type mockJobRepo struct{ j job.Job }

func (m *mockJobRepo) Create(context.Context, job.Job) error { return nil }
func (m *mockJobRepo) GetByIDForOwner(_ context.Context, ownerID, id uuid.UUID) (job.Job, error) {
	if m.j.ID == id && m.j.OwnerID == ownerID {
		return m.j, nil
	}
	return job.Job{}, pgx.ErrNoRows
}
func (m *mockJobRepo) GetByIDAny(_ context.Context, id uuid.UUID) (job.Job, error) {
	if m.j.ID == id {
		return m.j, nil
	}
	return job.Job{}, pgx.ErrNoRows
}
func (m *mockJobRepo) ListByOwner(context.Context, uuid.UUID, int, int) ([]job.Job, error) {
	return nil, nil
}
func (m *mockJobRepo) ListAll(context.Context, int, int) ([]job.Job, error) { return nil, nil }
func (m *mockJobRepo) UpdateKeywordsForOwner(context.Context, uuid.UUID, uuid.UUID, []job.KeywordWeight) error {
	return nil
}
func (m *mockJobRepo) DeleteForOwner(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (m *mockJobRepo) DeleteAny(context.Context, uuid.UUID) error                 { return nil }

type stubLLM struct {
	answer string
	err    error
}

func (s stubLLM) Ask(context.Context, string, string) (string, error) { return s.answer, s.err }

func fixtureDocAndJob(owner uuid.UUID) (resume.Document, job.Job) {
	doc := resume.Document{
		ID:      uuid.New(),
		OwnerID: owner,
		Profile: profile.Profile{
			WorkExperience: []profile.WorkExperience{
				{Position: "Backend Developer", Company: "Acme", Technologies: []string{"Go", "Postgres"}},
			},
		},
	}
	j := job.Job{
		ID:      uuid.New(),
		OwnerID: owner,
		Title:   "Go Developer",
		Keywords: []job.KeywordWeight{
			{Keyword: "golang", Weight: 0.7},
			{Keyword: "kafka", Weight: 0.3},
		},
	}
	return doc, j
}

func TestCreateTailoringWithLLM(t *testing.T) {
	owner := uuid.New()
	doc, j := fixtureDocAndJob(owner)
	repo := &mockTailoringRepo{}
	svc := NewService(repo, &mockResumeRepo{doc: doc}, &mockJobRepo{j: j},
		stubLLM{answer: `{"candidateSummary":"сильный бэкендер","uniqueStrengths":["Go"],"aiRecommendationForCandidate":["добавить Kafka"]}`},
		"test-model")

	out, err := svc.Create(context.Background(), owner, false, doc.ID, j.ID)

	require.NoError(t, err)
	assert.Equal(t, []string{"golang"}, out.Report.MatchedKeywords)
	assert.Equal(t, []string{"kafka"}, out.Report.MissingKeywords)
	assert.InDelta(t, 0.7, out.Score, 0.0001)
	assert.Equal(t, "test-model", out.Model)
	assert.Equal(t, "сильный бэкендер", out.Report.CandidateSummary)
	require.Len(t, repo.created, 1)
}

func TestCreateTailoringDegradesWithoutLLM(t *testing.T) {
	owner := uuid.New()
	doc, j := fixtureDocAndJob(owner)
	svc := NewService(&mockTailoringRepo{}, &mockResumeRepo{doc: doc}, &mockJobRepo{j: j},
		stubLLM{err: errors.New("нет сети")}, "test-model")

	out, err := svc.Create(context.Background(), owner, false, doc.ID, j.ID)

	require.NoError(t, err, "отказ LLM не блокирует создание")
	assert.Equal(t, []string{"golang"}, out.Report.MatchedKeywords)
	assert.Empty(t, out.Model, "модель не записывается без её вклада")
	assert.Contains(t, out.Report.CandidateSummary, "LLM временно недоступен")
}

func TestCreateTailoringChecksOwnership(t *testing.T) {
	owner := uuid.New()
	doc, j := fixtureDocAndJob(owner)
	svc := NewService(&mockTailoringRepo{}, &mockResumeRepo{doc: doc}, &mockJobRepo{j: j},
		stubLLM{answer: "{}"}, "m")

	stranger := uuid.New()
	_, err := svc.Create(context.Background(), stranger, false, doc.ID, j.ID)
	assert.Error(t, err)

	// админ проходит без фильтра владельца
	_, err = svc.Create(context.Background(), stranger, true, doc.ID, j.ID)
	assert.NoError(t, err)
}
