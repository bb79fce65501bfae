package render

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ArtifactCache — кеш отрендеренных PDF по ключу содержимого документа.
// Конструируется явно и живёт у того, кто собирает превью; никаких
// глобальных карт на уровне пакета, чтобы тесты держали изолированные
// экземпляры. Запись появляется после успешного рендера, ошибка рендера
// в кеш не пишется — следующий идентичный запрос повторит попытку.
type ArtifactCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry

	ttl    time.Duration
	logger *zap.Logger

	stopOnce sync.Once
	stop     chan struct{}
}

type cacheEntry struct {
	data      []byte
	createdAt time.Time
}

const (
	// DefaultArtifactTTL — сколько живёт отрендеренный артефакт.
	DefaultArtifactTTL = 30 * time.Minute
	// DefaultSweepEvery — период фоновой зачистки протухших записей.
	DefaultSweepEvery = 5 * time.Minute
)

// NewArtifactCache создаёт кеш и запускает фоновую зачистку. Владелец
// обязан вызвать Close, чтобы остановить таймер и освободить артефакты.
func NewArtifactCache(ttl, sweepEvery time.Duration, logger *zap.Logger) *ArtifactCache {
	if ttl <= 0 {
		ttl = DefaultArtifactTTL
	}
	if sweepEvery <= 0 {
		sweepEvery = DefaultSweepEvery
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &ArtifactCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		logger:  logger,
		stop:    make(chan struct{}),
	}
	go c.sweepLoop(sweepEvery)
	return c
}

// GetOrRender возвращает артефакт из кеша, если содержимое не менялось,
// иначе зовёт render и сохраняет результат. Повторный вызов с тем же
// ключом рендер не запускает.
func (c *ArtifactCache) GetOrRender(ctx context.Context, key string, render func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && time.Since(e.createdAt) <= c.ttl {
		c.mu.Unlock()
		return e.data, nil
	}
	c.mu.Unlock()

	data, err := render(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{data: data, createdAt: time.Now()}
	c.mu.Unlock()
	return data, nil
}

// Peek сообщает, лежит ли под ключом живой артефакт.
func (c *ArtifactCache) Peek(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return ok && time.Since(e.createdAt) <= c.ttl
}

// Len возвращает число записей, включая ещё не выметенные протухшие.
func (c *ArtifactCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *ArtifactCache) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.sweep(time.Now())
		case <-c.stop:
			return
		}
	}
}

func (c *ArtifactCache) sweep(now time.Time) {
	c.mu.Lock()
	removed := 0
	for k, e := range c.entries {
		if now.Sub(e.createdAt) > c.ttl {
			delete(c.entries, k)
			removed++
		}
	}
	remaining := len(c.entries)
	c.mu.Unlock()
	if removed > 0 {
		c.logger.Debug("artifact cache sweep",
			zap.Int("removed", removed),
			zap.Int("remaining", remaining),
		)
	}
}

// Close останавливает зачистку и освобождает все артефакты.
func (c *ArtifactCache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}
