package resume

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvbuilder/pkg/profile"
)

type mockDocRepo struct {
	docs map[uuid.UUID]Document
}

func newMockDocRepo() *mockDocRepo {
	return &mockDocRepo{docs: make(map[uuid.UUID]Document)}
}

func (m *mockDocRepo) Create(_ context.Context, d Document) error {
	m.docs[d.ID] = d
	return nil
}

func (m *mockDocRepo) Update(_ context.Context, d Document) error {
	if _, ok := m.docs[d.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.docs[d.ID] = d
	return nil
}

func (m *mockDocRepo) GetForOwner(_ context.Context, ownerID, id uuid.UUID) (Document, error) {
	d, ok := m.docs[id]
	if !ok || d.OwnerID != ownerID {
		return Document{}, pgx.ErrNoRows
	}
	return d, nil
}

func (m *mockDocRepo) GetAny(_ context.Context, id uuid.UUID) (Document, error) {
	d, ok := m.docs[id]
	if !ok {
		return Document{}, pgx.ErrNoRows
	}
	return d, nil
}

func (m *mockDocRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, _, _ int) ([]Document, error) {
	var res []Document
	for _, d := range m.docs {
		if d.OwnerID == ownerID {
			res = append(res, d)
		}
	}
	return res, nil
}

func (m *mockDocRepo) ListAll(_ context.Context, _, _ int) ([]Document, error) {
	var res []Document
	for _, d := range m.docs {
		res = append(res, d)
	}
	return res, nil
}

func (m *mockDocRepo) DeleteForOwner(_ context.Context, ownerID, id uuid.UUID) error {
	d, ok := m.docs[id]
	if !ok || d.OwnerID != ownerID {
		return pgx.ErrNoRows
	}
	delete(m.docs, id)
	return nil
}

func (m *mockDocRepo) DeleteAny(_ context.Context, id uuid.UUID) error {
	if _, ok := m.docs[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.docs, id)
	return nil
}

func TestCreateSnapshotsProfile(t *testing.T) {
	repo := newMockDocRepo()
	svc := NewService(repo)
	owner := uuid.New()

	snapshot := profile.Profile{
		FirstName: "Иван",
		Projects:  []profile.Project{{Name: "x"}, {}},
	}
	d, err := svc.Create(context.Background(), owner, "  Backend CV  ", snapshot)

	require.NoError(t, err)
	assert.Equal(t, "Backend CV", d.Title)
	assert.Equal(t, owner, d.OwnerID)
	assert.Len(t, d.Profile.Projects, 1, "пустые записи снимка отфильтрованы")
	assert.Equal(t, DefaultSettings(), d.Settings)
}

func TestCreateRequiresTitle(t *testing.T) {
	svc := NewService(newMockDocRepo())
	_, err := svc.Create(context.Background(), uuid.New(), "   ", profile.Profile{})
	var ev ErrValidation
	require.ErrorAs(t, err, &ev)
}

func TestOwnerCannotTouchForeignDocument(t *testing.T) {
	repo := newMockDocRepo()
	svc := NewService(repo)
	owner := uuid.New()
	stranger := uuid.New()

	d, err := svc.Create(context.Background(), owner, "CV", profile.Profile{})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), stranger, false, d.ID)
	assert.Error(t, err)

	err = svc.Delete(context.Background(), stranger, false, d.ID)
	assert.Error(t, err)

	// админ видит всё
	_, err = svc.Get(context.Background(), stranger, true, d.ID)
	assert.NoError(t, err)
}

func TestUpdatePreservesOwnerAndCreatedAt(t *testing.T) {
	repo := newMockDocRepo()
	svc := NewService(repo)
	owner := uuid.New()

	d, err := svc.Create(context.Background(), owner, "CV", profile.Profile{})
	require.NoError(t, err)

	patch := d
	patch.Title = ""
	patch.OwnerID = uuid.New() // попытка подменить владельца игнорируется
	patch.Profile.FirstName = "Пётр"

	updated, err := svc.Update(context.Background(), owner, false, patch)
	require.NoError(t, err)

	assert.Equal(t, owner, updated.OwnerID)
	assert.Equal(t, d.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "CV", updated.Title, "пустое название не затирает старое")
	assert.Equal(t, "Пётр", updated.Profile.FirstName)
}
