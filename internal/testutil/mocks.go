package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"csd/internal/models"
	"csd/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Contains reports whether any entry at level has a format containing substr.
func (m *MockLogger) Contains(level, substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Logs {
		if e.Level == level && strings.Contains(e.Format, substr) {
			return true
		}
	}
	return false
}

// MockMetrics implements providers.MetricsProviderInterface and counts outcomes.
type MockMetrics struct {
	mu              sync.Mutex
	StatusPolls     map[string]int
	Reconciliations map[string]int
	Submissions     map[string]int
	Endpoints       map[string]int
	Evicted         int
	Live            bool
}

func (m *MockMetrics) inc(target *map[string]int, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if *target == nil {
		*target = make(map[string]int)
	}
	(*target)[key]++
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, _ int)          { m.inc(&m.Endpoints, endpoint) }
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}
func (m *MockMetrics) IncStatusPolls(outcome string)                    { m.inc(&m.StatusPolls, outcome) }
func (m *MockMetrics) IncReconciliations(outcome string)                { m.inc(&m.Reconciliations, outcome) }
func (m *MockMetrics) ObserveReconcileDuration(_ time.Duration)         {}
func (m *MockMetrics) IncCommentSubmissions(outcome string)             { m.inc(&m.Submissions, outcome) }

func (m *MockMetrics) SetShowLive(live bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Live = live
}

func (m *MockMetrics) AddCommentFilesEvicted(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Evicted += count
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

func (m *MockCache) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data = make(map[string][]byte)
}

// MockResolver implements stream.ResolverInterface with a fixed answer.
type MockResolver struct {
	mu      sync.Mutex
	Running bool
	Show    string
	Calls   int
}

func (m *MockResolver) Status(_ context.Context) models.StreamStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	return models.StreamStatus{Running: m.Running, ShowName: m.Show}
}

func (m *MockResolver) IsShowLive(ctx context.Context) bool {
	return m.Status(ctx).Running
}

func (m *MockResolver) CurrentShowName(ctx context.Context) string {
	return m.Status(ctx).ShowName
}

func (m *MockResolver) Set(running bool, show string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Running = running
	m.Show = show
}

// MockSource implements schedule.SourceInterface.
type MockSource struct {
	mu    sync.Mutex
	Data  []byte
	Err   error
	Calls int
}

func (m *MockSource) Fetch(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Data, nil
}

func (m *MockSource) Location() string { return "mock://schedule" }

func (m *MockSource) SetData(data string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data = []byte(data)
	m.Err = nil
}

// FakeClock is a manually advanced time source.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
