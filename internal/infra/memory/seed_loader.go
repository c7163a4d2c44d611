package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"coursebank-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// SeedLoader fetches the initial question bank from a backing store.
type SeedLoader interface {
	LoadBank(ctx context.Context) ([]domain.Question, error)
}

// StaticSeedLoader serves a fixed slice, used when no Postgres is configured
// and in tests.
type StaticSeedLoader struct {
	questions []domain.Question
}

func NewStaticSeedLoader(questions []domain.Question) *StaticSeedLoader {
	return &StaticSeedLoader{questions: questions}
}

func (l *StaticSeedLoader) LoadBank(_ context.Context) ([]domain.Question, error) {
	return append([]domain.Question(nil), l.questions...), nil
}

// SeedCache caches the loaded bank with TTL so repeated startups or reloads
// within the window avoid hitting the backing store.
type SeedCache struct {
	loader SeedLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	questions []domain.Question
	expiresAt time.Time
}

func NewSeedCache(loader SeedLoader, ttl time.Duration) *SeedCache {
	return &SeedCache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *SeedCache) LoadBank(ctx context.Context) ([]domain.Question, error) {
	now := c.clock()

	c.mu.RLock()
	if c.questions != nil && c.expiresAt.After(now) {
		cached := append([]domain.Question(nil), c.questions...)
		c.mu.RUnlock()
		return cached, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("bank", func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if c.questions != nil && c.expiresAt.After(now) {
			cached := append([]domain.Question(nil), c.questions...)
			c.mu.RUnlock()
			return cached, nil
		}
		c.mu.RUnlock()

		questions, err := c.loader.LoadBank(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.questions = questions
		c.expiresAt = now.Add(c.ttlWithJitter())
		c.mu.Unlock()
		return append([]domain.Question(nil), questions...), nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (c *SeedCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
