package providers

import (
	"testing"
	"time"

	"csd/internal/structures"

	"github.com/stretchr/testify/assert"
)

// local mock logger to avoid import cycle with testutil
type cacheTestLogger struct{}

func (m *cacheTestLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *cacheTestLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *cacheTestLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Close()                                        {}

type countingMetrics struct {
	noopMetrics
	hits, misses int
}

func (m *countingMetrics) IncCacheHits()   { m.hits++ }
func (m *countingMetrics) IncCacheMisses() { m.misses++ }

func cacheConfig(enabled bool, size int, ttl time.Duration) *structures.Config {
	return &structures.Config{
		Cache: structures.CacheConfig{
			Enabled: enabled,
			Size:    size,
			TTL:     ttl,
		},
	}
}

func TestCacheProvider_DisabledReturnsNoop(t *testing.T) {
	c := NewCacheProvider(cacheConfig(false, 10, time.Second), &cacheTestLogger{})
	_, ok := c.Get("any")
	assert.False(t, ok)
	assert.IsType(t, &noopCache{}, c)
}

func TestCacheProvider_ZeroSizeReturnsNoop(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 0, time.Second), &cacheTestLogger{})
	assert.IsType(t, &noopCache{}, c)
}

func TestCacheProvider_SetGetDel(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, time.Second), &cacheTestLogger{})
	assert.IsType(t, &CacheProvider{}, c)

	c.Set("comments:Night Shift", []byte(`{"1":{}}`))
	val, ok := c.Get("comments:Night Shift")
	assert.True(t, ok)
	assert.Equal(t, `{"1":{}}`, string(val))

	c.Del("comments:Night Shift")
	_, ok = c.Get("comments:Night Shift")
	assert.False(t, ok)
}

func TestCacheProvider_Clear(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, time.Second), &cacheTestLogger{})
	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	c.Clear()
	_, okA := c.Get("a")
	_, okB := c.Get("b")
	assert.False(t, okA)
	assert.False(t, okB)
}

func TestCacheProvider_SubSecondTTLRoundsUp(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, 100*time.Millisecond), &cacheTestLogger{})
	assert.Equal(t, 1, c.(*CacheProvider).ttl)
}

func TestInstrumentedCache_CountsHitsAndMisses(t *testing.T) {
	m := &countingMetrics{}
	c := NewInstrumentedCacheProvider(cacheConfig(true, 1, time.Second), &cacheTestLogger{}, m)
	_, _ = c.Get("missing")
	c.Set("k", []byte("v"))
	_, _ = c.Get("k")
	assert.Equal(t, 1, m.hits)
	assert.Equal(t, 1, m.misses)
}

func TestInstrumentedCache_DisabledSkipsMetrics(t *testing.T) {
	m := &countingMetrics{}
	c := NewInstrumentedCacheProvider(cacheConfig(false, 1, time.Second), &cacheTestLogger{}, m)
	_, _ = c.Get("missing")
	assert.IsType(t, &noopCache{}, c)
	assert.Equal(t, 0, m.misses)
}
