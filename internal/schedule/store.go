// Package schedule owns the persisted weekly schedule and keeps it in step
// with the station's authoritative source schedule.
package schedule

import (
	"fmt"
	"os"
	"sync"

	"csd/internal/models"
	"csd/internal/providers"
	"csd/internal/storage"
	"csd/internal/structures"

	json "github.com/goccy/go-json"
)

type StoreInterface interface {
	Load() error
	Save(grid models.ScheduleGrid) error
	Update(fn func(grid models.ScheduleGrid) error) error
	Snapshot() models.ScheduleGrid
	SlotAt(day, hour int) (models.Slot, bool)
	GetCommentSetting(show string) bool
	SetCommentSetting(show string, enabled bool) (bool, error)
	ListShows() []string
}

// Store is the single owner of the schedule grid. Every read and write goes
// through mu so reconciliation and admin edits never interleave.
type Store struct {
	mu             sync.RWMutex
	grid           models.ScheduleGrid
	path           string
	defaultSetting bool
	logger         providers.Logger
}

func NewStore(conf *structures.Config, logger providers.Logger) (StoreInterface, error) {
	s := &Store{
		grid:           models.NewScheduleGrid(),
		path:           conf.Schedule.FilePath,
		defaultSetting: conf.Schedule.DefaultCommentSetting,
		logger:         logger,
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadGrid reads a persisted grid. A missing or unparsable file, or one that
// does not hold exactly seven days, yields a fresh empty grid; the boolean
// reports that the file was present but unusable.
func LoadGrid(path string) (models.ScheduleGrid, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.NewScheduleGrid(), false, nil
		}
		return nil, false, fmt.Errorf("%w: read %s: %w", models.ErrStorageIO, path, err)
	}

	var grid models.ScheduleGrid
	if err := json.Unmarshal(data, &grid); err != nil || !grid.Valid() {
		return models.NewScheduleGrid(), true, nil
	}
	for i, day := range grid {
		if day == nil {
			grid[i] = make(models.DaySchedule)
		}
	}
	return grid, false, nil
}

func (s *Store) Load() error {
	grid, corrupt, err := LoadGrid(s.path)
	if err != nil {
		return err
	}
	if corrupt {
		s.logger.Warnf(providers.TypeSchedule, "Schedule file %s is malformed, starting from an empty schedule", s.path)
	}

	s.mu.Lock()
	s.grid = grid
	s.mu.Unlock()
	return nil
}

func (s *Store) Save(grid models.ScheduleGrid) error {
	if !grid.Valid() {
		return fmt.Errorf("%w: grid has %d days", models.ErrMalformedSchedule, len(grid))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := grid.Clone()
	if err := s.persist(next); err != nil {
		return err
	}
	s.grid = next
	return nil
}

// Update runs fn against a copy of the grid under the write lock and persists
// the copy. If fn or the write fails the in-memory grid is left untouched.
func (s *Store) Update(fn func(grid models.ScheduleGrid) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.grid.Clone()
	if err := fn(work); err != nil {
		return err
	}
	if !work.Valid() {
		return fmt.Errorf("%w: grid has %d days", models.ErrMalformedSchedule, len(work))
	}
	if err := s.persist(work); err != nil {
		return err
	}
	s.grid = work
	return nil
}

func (s *Store) Snapshot() models.ScheduleGrid {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.Clone()
}

func (s *Store) SlotAt(day, hour int) (models.Slot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.SlotAt(day, hour)
}

func (s *Store) GetCommentSetting(show string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if enabled, ok := s.grid.CommentSetting(show); ok {
		return enabled
	}
	return s.defaultSetting
}

// SetCommentSetting applies the flag to every slot of the show and writes the
// file only when something changed.
func (s *Store) SetCommentSetting(show string, enabled bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.grid.Clone()
	if !work.SetCommentSetting(show, enabled) {
		return false, nil
	}
	if err := s.persist(work); err != nil {
		return false, err
	}
	s.grid = work
	return true, nil
}

func (s *Store) ListShows() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.Shows()
}

func (s *Store) persist(grid models.ScheduleGrid) error {
	if err := storage.WriteJSON(s.path, grid); err != nil {
		return fmt.Errorf("%w: %w", models.ErrStorageIO, err)
	}
	return nil
}
