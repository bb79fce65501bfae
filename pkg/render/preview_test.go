package render

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvbuilder/pkg/profile"
	"github.com/artem13815/cvbuilder/pkg/resume"
)

// immediateOptions — без дебаунса и задержек, чтобы тесты управляли
// порядком событий сами.
func immediateOptions() Options { return Options{} }

func docNamed(name string) resume.Document {
	return resume.Document{
		Title:    "CV",
		Profile:  profile.Profile{FirstName: name},
		Settings: resume.DefaultSettings(),
	}
}

func waitState(t *testing.T, s *PreviewSession, want State) Display {
	t.Helper()
	var snap Display
	require.Eventually(t, func() bool {
		snap = s.Snapshot()
		return snap.State == want
	}, 2*time.Second, 5*time.Millisecond, "ожидалось состояние %s", want)
	return snap
}

func TestPreviewAdoptsRenderedArtifact(t *testing.T) {
	cache := NewArtifactCache(time.Minute, time.Minute, nil)
	defer cache.Close()

	var calls int32
	s := NewPreviewSession(cache, func(_ context.Context, d resume.Document) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte("pdf:" + d.Profile.FirstName), nil
	}, immediateOptions(), nil)
	defer s.Close()

	assert.Equal(t, StateInitial, s.Snapshot().State)

	s.SetDocument(docNamed("Иван"))
	snap := waitState(t, s, StateActive)

	assert.Equal(t, []byte("pdf:Иван"), snap.Artifact)
	assert.Equal(t, resume.ContentKey(docNamed("Иван")), snap.Key)
	assert.Nil(t, snap.Previous)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestPreviewSameContentDoesNotRerender(t *testing.T) {
	cache := NewArtifactCache(time.Minute, time.Minute, nil)
	defer cache.Close()

	var calls int32
	s := NewPreviewSession(cache, func(context.Context, resume.Document) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte("pdf"), nil
	}, immediateOptions(), nil)
	defer s.Close()

	s.SetDocument(docNamed("Иван"))
	waitState(t, s, StateActive)

	// то же содержимое и смена ширины — активный артефакт остаётся
	s.SetDocument(docNamed("Иван"))
	s.SetWidth(640)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, StateActive, s.Snapshot().State)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestPreviewShowsPreviousDuringTransition(t *testing.T) {
	cache := NewArtifactCache(time.Minute, time.Minute, nil)
	defer cache.Close()

	gate := make(chan struct{})
	s := NewPreviewSession(cache, func(_ context.Context, d resume.Document) ([]byte, error) {
		if d.Profile.FirstName == "Пётр" {
			<-gate
		}
		return []byte("pdf:" + d.Profile.FirstName), nil
	}, immediateOptions(), nil)
	defer s.Close()

	s.SetDocument(docNamed("Иван"))
	waitState(t, s, StateActive)

	s.SetDocument(docNamed("Пётр"))
	snap := waitState(t, s, StateTransitioning)
	assert.Equal(t, []byte("pdf:Иван"), snap.Previous, "старый артефакт виден, пока новый в полёте")

	close(gate)
	snap = waitState(t, s, StateActive)
	assert.Equal(t, []byte("pdf:Пётр"), snap.Artifact)
	assert.Nil(t, snap.Previous)
}

func TestPreviewDiscardsStaleRender(t *testing.T) {
	cache := NewArtifactCache(time.Minute, time.Minute, nil)
	defer cache.Close()

	gates := map[string]chan struct{}{
		"Иван": make(chan struct{}),
		"Пётр": make(chan struct{}),
	}
	s := NewPreviewSession(cache, func(_ context.Context, d resume.Document) ([]byte, error) {
		<-gates[d.Profile.FirstName]
		return []byte("pdf:" + d.Profile.FirstName), nil
	}, immediateOptions(), nil)
	defer s.Close()

	// первый рендер зависает в полёте, пользователь успевает поправить документ
	s.SetDocument(docNamed("Иван"))
	s.SetDocument(docNamed("Пётр"))

	// устаревший рендер доезжает первым и должен быть отброшен
	close(gates["Иван"])
	time.Sleep(50 * time.Millisecond)
	snap := s.Snapshot()
	assert.Equal(t, StateTransitioning, snap.State)
	assert.Empty(t, snap.Key, "устаревший артефакт не принят")

	close(gates["Пётр"])
	snap = waitState(t, s, StateActive)
	assert.Equal(t, []byte("pdf:Пётр"), snap.Artifact)

	// отброшенный результат остался в кеше
	assert.True(t, cache.Peek(resume.ContentKey(docNamed("Иван"))))
}

func TestPreviewErrorState(t *testing.T) {
	cache := NewArtifactCache(time.Minute, time.Minute, nil)
	defer cache.Close()

	boom := errors.New("рендер упал")
	fail := true
	s := NewPreviewSession(cache, func(context.Context, resume.Document) ([]byte, error) {
		if fail {
			return nil, boom
		}
		return []byte("pdf"), nil
	}, immediateOptions(), nil)
	defer s.Close()

	s.SetDocument(docNamed("Иван"))
	snap := waitState(t, s, StateError)
	assert.ErrorIs(t, snap.Err, boom)
	assert.Nil(t, snap.Artifact)
	assert.Nil(t, snap.Previous)

	// новая правка выводит из ошибки
	fail = false
	s.SetDocument(docNamed("Пётр"))
	snap = waitState(t, s, StateActive)
	assert.NoError(t, snap.Err)
	assert.Equal(t, []byte("pdf"), snap.Artifact)
}

func TestPreviewContentDebounceCollapsesEdits(t *testing.T) {
	cache := NewArtifactCache(time.Minute, time.Minute, nil)
	defer cache.Close()

	var calls int32
	opts := Options{ContentDebounce: 40 * time.Millisecond}
	s := NewPreviewSession(cache, func(_ context.Context, d resume.Document) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte("pdf:" + d.Profile.FirstName), nil
	}, opts, nil)
	defer s.Close()

	// серия быстрых правок схлопывается в один рендер последней версии
	s.SetDocument(docNamed("И"))
	s.SetDocument(docNamed("Ив"))
	s.SetDocument(docNamed("Ива"))
	s.SetDocument(docNamed("Иван"))

	snap := waitState(t, s, StateActive)
	assert.Equal(t, []byte("pdf:Иван"), snap.Artifact)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestPreviewCloseStopsAdoption(t *testing.T) {
	cache := NewArtifactCache(time.Minute, time.Minute, nil)
	defer cache.Close()

	gate := make(chan struct{})
	s := NewPreviewSession(cache, func(context.Context, resume.Document) ([]byte, error) {
		<-gate
		return []byte("pdf"), nil
	}, immediateOptions(), nil)

	s.SetDocument(docNamed("Иван"))
	s.Close()
	close(gate)
	time.Sleep(50 * time.Millisecond)

	snap := s.Snapshot()
	assert.Nil(t, snap.Artifact, "после Close сессия не принимает артефакты")
}
