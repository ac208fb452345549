package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"csd/internal/structures"
	"csd/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReconciler struct {
	mu    sync.Mutex
	calls int
	fn    func(call int) error
}

func (m *mockReconciler) Reconcile(ctx context.Context) error {
	m.mu.Lock()
	m.calls++
	call := m.calls
	m.mu.Unlock()
	if m.fn != nil {
		return m.fn(call)
	}
	return nil
}

func (m *mockReconciler) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockEvictor struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (m *mockEvictor) EvictComments() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return 2, m.err
}

func (m *mockEvictor) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func testConfig(refresh, clear string) *structures.Config {
	return &structures.Config{
		Schedule: structures.ScheduleConfig{RefreshCron: refresh},
		Comments: structures.CommentsConfig{ClearCron: clear},
	}
}

func TestScheduler_InitRejectsBadCron(t *testing.T) {
	s := NewScheduler(testConfig("not a cron", "0 2 * * *"), &testutil.MockLogger{}, &mockReconciler{}, &mockEvictor{})
	assert.Error(t, s.Init())

	s = NewScheduler(testConfig("*/15 * * * *", "61 2 * * *"), &testutil.MockLogger{}, &mockReconciler{}, &mockEvictor{})
	assert.Error(t, s.Init())
}

func TestScheduler_StopWithoutInit(t *testing.T) {
	s := NewScheduler(testConfig("*/15 * * * *", "0 2 * * *"), &testutil.MockLogger{}, &mockReconciler{}, &mockEvictor{})
	assert.NoError(t, s.Stop(context.Background()))
	assert.False(t, s.Running())
}

func TestScheduler_RunNow(t *testing.T) {
	rec := &mockReconciler{}
	ev := &mockEvictor{err: errors.New("disk gone")}
	s := NewScheduler(testConfig("*/15 * * * *", "0 2 * * *"), &testutil.MockLogger{}, rec, ev)

	require.NoError(t, s.Reconcile(context.Background()))
	assert.Error(t, s.Evict())
	assert.Equal(t, 1, rec.Calls())
	assert.Equal(t, 1, ev.Calls())
}

func TestScheduler_FailuresDoNotStopTriggers(t *testing.T) {
	rec := &mockReconciler{fn: func(call int) error {
		if call == 1 {
			panic("boom")
		}
		return errors.New("source down")
	}}
	ev := &mockEvictor{err: errors.New("disk gone")}
	logger := &testutil.MockLogger{}

	s := NewScheduler(testConfig("@every 1s", "@every 1s"), logger, rec, ev)
	require.NoError(t, s.Init())
	s.Start()
	assert.True(t, s.Running())

	assert.Eventually(t, func() bool {
		return rec.Calls() >= 2 && ev.Calls() >= 2
	}, 5*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.False(t, s.Running())
	assert.True(t, logger.Contains("error", "cron: %s: %s %v"))

	calls := rec.Calls()
	time.Sleep(1200 * time.Millisecond)
	assert.Equal(t, calls, rec.Calls())
}

func TestScheduler_StartTwice(t *testing.T) {
	logger := &testutil.MockLogger{}
	s := NewScheduler(testConfig("*/15 * * * *", "0 2 * * *"), logger, &mockReconciler{}, &mockEvictor{})
	require.NoError(t, s.Init())
	s.Start()
	s.Start()
	assert.Equal(t, 1, countStarts(logger))
	require.NoError(t, s.Stop(context.Background()))
}

func countStarts(logger *testutil.MockLogger) int {
	n := 0
	for _, e := range logger.Logs {
		if e.Format == "Scheduler started: reconcile %q, clear comments %q" {
			n++
		}
	}
	return n
}
