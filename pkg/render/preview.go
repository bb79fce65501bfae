package render

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/artem13815/cvbuilder/pkg/resume"
)

// Состояния превью. Пока новый рендер в полёте, старый артефакт остаётся
// на экране (Transitioning) — так превью не мигает при каждой правке.
type State int

const (
	StateInitial State = iota
	StateActive
	StateTransitioning
	StateError
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateActive:
		return "active"
	case StateTransitioning:
		return "transitioning"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Display — то, что слой отображения показывает прямо сейчас.
type Display struct {
	State    State
	Key      string // ключ содержимого принятого артефакта
	Artifact []byte
	Previous []byte // старый артефакт, видимый во время перехода
	Err      error
}

// RenderDocFunc — связанный рендер документа (HTML + печать в PDF).
type RenderDocFunc func(ctx context.Context, d resume.Document) ([]byte, error)

// Options настраивают дебаунс входов и задержку фиксации нового артефакта.
type Options struct {
	ContentDebounce time.Duration // пауза после правок содержимого
	WidthDebounce   time.Duration // пауза после изменения ширины вьюпорта
	SettleDelay     time.Duration // сколько держать старый артефакт после принятия нового
}

// DefaultOptions — значения, подобранные под живой набор текста.
func DefaultOptions() Options {
	return Options{
		ContentDebounce: 800 * time.Millisecond,
		WidthDebounce:   100 * time.Millisecond,
		SettleDelay:     150 * time.Millisecond,
	}
}

// PreviewSession держит состояние превью одного документа: дебаунсит
// правки, считает ключ содержимого, гоняет рендер через кеш и принимает
// только результат, чей ключ всё ещё последний запрошенный. Летящий рендер
// не отменяется — устаревший результат просто оседает в кеше и на экран
// не попадает.
type PreviewSession struct {
	mu     sync.Mutex
	cache  *ArtifactCache
	render RenderDocFunc
	opts   Options
	logger *zap.Logger

	doc    resume.Document
	hasDoc bool
	width  int

	contentTimer *time.Timer
	widthTimer   *time.Timer

	latestKey string
	state     State
	activeKey string
	active    []byte
	prev      []byte
	err       error
	closed    bool
}

func NewPreviewSession(cache *ArtifactCache, render RenderDocFunc, opts Options, logger *zap.Logger) *PreviewSession {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreviewSession{
		cache:  cache,
		render: render,
		opts:   opts,
		logger: logger,
		state:  StateInitial,
	}
}

// SetDocument принимает новую версию документа; рендер стартует после
// паузы ContentDebounce, так что серия правок схлопывается в один запрос.
func (s *PreviewSession) SetDocument(d resume.Document) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.doc = d
	s.hasDoc = true
	if s.contentTimer != nil {
		s.contentTimer.Stop()
	}
	if s.opts.ContentDebounce > 0 {
		s.contentTimer = time.AfterFunc(s.opts.ContentDebounce, s.request)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	s.request()
}

// SetWidth фиксирует новую ширину вьюпорта. Ширина на ключ содержимого не
// влияет, поэтому повторный запрос обычно попадает в кеш.
func (s *PreviewSession) SetWidth(px int) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.width = px
	if s.widthTimer != nil {
		s.widthTimer.Stop()
	}
	if s.opts.WidthDebounce > 0 {
		s.widthTimer = time.AfterFunc(s.opts.WidthDebounce, s.request)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	s.request()
}

func (s *PreviewSession) request() {
	s.mu.Lock()
	if s.closed || !s.hasDoc {
		s.mu.Unlock()
		return
	}
	key := resume.ContentKey(s.doc)
	if key == s.activeKey && s.state == StateActive {
		s.mu.Unlock()
		return
	}
	if key == s.latestKey && s.state == StateTransitioning {
		// этот ключ уже в полёте
		s.mu.Unlock()
		return
	}
	s.latestKey = key
	if s.state == StateActive {
		s.prev = s.active
	}
	s.state = StateTransitioning
	doc := s.doc
	s.mu.Unlock()

	go s.renderInto(key, doc)
}

func (s *PreviewSession) renderInto(key string, doc resume.Document) {
	data, err := s.cache.GetOrRender(context.Background(), key, func(ctx context.Context) ([]byte, error) {
		return s.render(ctx, doc)
	})

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if key != s.latestKey {
		// Запрос успели обогнать: результат остаётся в кеше, на экран не идёт.
		s.mu.Unlock()
		s.logger.Debug("stale preview render discarded", zap.String("key", key))
		return
	}
	if err != nil {
		s.state = StateError
		s.err = err
		s.active = nil
		s.activeKey = ""
		s.prev = nil
		s.mu.Unlock()
		s.logger.Warn("preview render failed", zap.String("key", key), zap.Error(err))
		return
	}
	s.err = nil
	s.active = data
	s.activeKey = key
	s.mu.Unlock()

	// Старый артефакт отпускаем только после паузы на первую отрисовку.
	settle := s.opts.SettleDelay
	if settle <= 0 {
		s.settle(key)
		return
	}
	time.AfterFunc(settle, func() { s.settle(key) })
}

func (s *PreviewSession) settle(key string) {
	s.mu.Lock()
	if !s.closed && s.state == StateTransitioning && s.activeKey == key {
		s.prev = nil
		s.state = StateActive
	}
	s.mu.Unlock()
}

// Snapshot возвращает текущее отображаемое состояние.
func (s *PreviewSession) Snapshot() Display {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Display{
		State:    s.state,
		Key:      s.activeKey,
		Artifact: s.active,
		Previous: s.prev,
		Err:      s.err,
	}
}

// Close останавливает таймеры и отпускает артефакты. Летящий рендер
// довершится и запишется в кеш, но сессию уже не тронет.
func (s *PreviewSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.contentTimer != nil {
		s.contentTimer.Stop()
	}
	if s.widthTimer != nil {
		s.widthTimer.Stop()
	}
	s.active = nil
	s.prev = nil
}
