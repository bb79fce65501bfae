package profile

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepo — репозиторий в памяти, один профиль на владельца.
type mockRepo struct {
	byOwner map[uuid.UUID]Profile
	upserts int
}

func newMockRepo() *mockRepo {
	return &mockRepo{byOwner: make(map[uuid.UUID]Profile)}
}

func (m *mockRepo) GetByOwner(_ context.Context, ownerID uuid.UUID) (Profile, error) {
	p, ok := m.byOwner[ownerID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) Upsert(_ context.Context, p Profile) error {
	m.upserts++
	m.byOwner[p.OwnerID] = p
	return nil
}

func TestGetReturnsEmptyProfileWithoutPersisting(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	owner := uuid.New()

	p, err := svc.Get(context.Background(), owner)

	require.NoError(t, err)
	assert.Equal(t, owner, p.OwnerID)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Empty(t, p.WorkExperience)
	assert.Zero(t, repo.upserts, "Get не должен писать в хранилище")
}

func TestSaveFiltersAndWarns(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	owner := uuid.New()

	p := Profile{
		Projects: []Project{{Name: "x"}, {}, {Name: "X"}},
	}
	saved, warns, err := svc.Save(context.Background(), owner, p)

	require.NoError(t, err)
	assert.Len(t, saved.Projects, 2, "пустая запись удалена")
	assert.True(t, warns.Projects, "дубликат помечен, но сохранение прошло")
	assert.Equal(t, 1, repo.upserts)
	assert.False(t, saved.UpdatedAt.IsZero())
}

func TestSavePreservesIdentity(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	owner := uuid.New()

	first, _, err := svc.Save(context.Background(), owner, Profile{FirstName: "Иван"})
	require.NoError(t, err)

	second, _, err := svc.Save(context.Background(), owner, Profile{FirstName: "Пётр"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, "Пётр", second.FirstName)
}

func TestImportMergesIntoExisting(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	owner := uuid.New()

	_, _, err := svc.Save(context.Background(), owner, Profile{
		Projects: []Project{{Name: "old"}},
	})
	require.NoError(t, err)

	merged, err := svc.Import(context.Background(), owner, PartialProfile{
		Projects: []Project{{Name: "old"}, {Name: "new"}},
	}, ApprovedScalars{})

	require.NoError(t, err)
	require.Len(t, merged.Projects, 2)
	assert.Equal(t, "new", merged.Projects[1].Name)

	stored, err := svc.Get(context.Background(), owner)
	require.NoError(t, err)
	assert.Len(t, stored.Projects, 2)
}

func TestImportIntoFreshProfile(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	owner := uuid.New()

	merged, err := svc.Import(context.Background(), owner, PartialProfile{
		Skills: []Skill{{Category: "Languages", Items: []string{"Go"}}},
	}, ApprovedScalars{FirstName: strp("Иван")})

	require.NoError(t, err)
	assert.Equal(t, "Иван", merged.FirstName)
	require.Len(t, merged.Skills, 1)
	assert.Equal(t, 1, repo.upserts, "импорт персистит результат")
}

func TestResetKeepsIdentityClearsData(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	owner := uuid.New()

	saved, _, err := svc.Save(context.Background(), owner, Profile{
		FirstName: "Иван",
		Projects:  []Project{{Name: "x"}},
	})
	require.NoError(t, err)

	cleared, err := svc.Reset(context.Background(), owner)
	require.NoError(t, err)

	assert.Equal(t, saved.ID, cleared.ID)
	assert.Equal(t, saved.CreatedAt, cleared.CreatedAt)
	assert.Empty(t, cleared.FirstName)
	assert.Empty(t, cleared.Projects)
}
