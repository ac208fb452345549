// Package jobs runs the periodic background work: schedule reconciliation and
// the daily comment sweep.
package jobs

import (
	"context"
	"fmt"

	"csd/internal/providers"
	"csd/internal/schedule"
	"csd/internal/structures"

	"github.com/robfig/cron/v3"
	"go.uber.org/atomic"
)

type SchedulerInterface interface {
	Init() error
	Start()
	Stop(ctx context.Context) error
	Reconcile(ctx context.Context) error
	Evict() error
	Running() bool
}

// EvictorInterface clears stored comments.
type EvictorInterface interface {
	EvictComments() (int, error)
}

// Scheduler fires each job on its own cron trigger. A failing or panicking
// job is logged and the trigger keeps firing.
type Scheduler struct {
	config     *structures.Config
	logger     providers.Logger
	reconciler schedule.ReconcilerInterface
	evictor    EvictorInterface
	cron       *cron.Cron
	running    atomic.Bool
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewScheduler(config *structures.Config, logger providers.Logger, reconciler schedule.ReconcilerInterface, evictor EvictorInterface) SchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		config:     config,
		logger:     logger,
		reconciler: reconciler,
		evictor:    evictor,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Init registers both triggers without starting them.
func (s *Scheduler) Init() error {
	cl := cronLogger{logger: s.logger}
	s.cron = cron.New(cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))

	if _, err := s.cron.AddFunc(s.config.Schedule.RefreshCron, func() {
		_ = s.Reconcile(s.ctx)
	}); err != nil {
		return fmt.Errorf("schedule.refreshCron %q: %w", s.config.Schedule.RefreshCron, err)
	}

	if _, err := s.cron.AddFunc(s.config.Comments.ClearCron, func() {
		_ = s.Evict()
	}); err != nil {
		return fmt.Errorf("comments.clearCron %q: %w", s.config.Comments.ClearCron, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	if s.cron == nil || !s.running.CompareAndSwap(false, true) {
		return
	}
	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Scheduler started: reconcile %q, clear comments %q",
		s.config.Schedule.RefreshCron, s.config.Comments.ClearCron)
}

// Stop halts both triggers, cancels an in-flight fetch and waits for running
// jobs to return or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	if s.cron == nil || !s.running.CompareAndSwap(true, false) {
		return nil
	}
	select {
	case <-s.cron.Stop().Done():
		s.logger.Infof(providers.TypeApp, "Scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) Reconcile(ctx context.Context) error {
	return s.reconciler.Reconcile(ctx)
}

func (s *Scheduler) Evict() error {
	_, err := s.evictor.EvictComments()
	return err
}

func (s *Scheduler) Running() bool {
	return s.running.Load()
}

// cronLogger routes cron's own messages (recovered panics, skipped runs) into
// the application log.
type cronLogger struct {
	logger providers.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugf(providers.TypeApp, "cron: %s %v", msg, keysAndValues)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Errorf(providers.TypeApp, "cron: %s: %s %v", msg, err, keysAndValues)
}
