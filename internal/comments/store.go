// Package comments persists the per-show comment logs.
package comments

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"csd/internal/models"
	"csd/internal/providers"
	"csd/internal/storage"
	"csd/internal/structures"
)

type StoreInterface interface {
	Read(show string) (models.CommentFile, error)
	Append(show, name, comment string) (int, error)
	Delete(show string, id int) error
	ClearAll() (int, error)
}

// Store keeps one JSON file per show in dir.
//
// A single mutex covers every show's file. Read-modify-write sequences on any
// show are fully serialized, which keeps id assignment consistent and lets an
// admin edit several shows with a predictable order of effects.
type Store struct {
	mu          sync.Mutex
	dir         string
	maxComments int
	formatter   *Formatter
	// highWater remembers the largest id handed out per file since the last
	// sweep, so a deleted top id is not handed out again.
	highWater map[string]int
	logger    providers.Logger
}

func NewStore(conf *structures.Config, formatter *Formatter, logger providers.Logger) StoreInterface {
	return &Store{
		dir:         conf.Comments.Dir,
		maxComments: conf.Comments.MaxComments,
		formatter:   formatter,
		highWater:   make(map[string]int),
		logger:      logger,
	}
}

func (s *Store) path(show string) (string, error) {
	name, err := SanitizeFileName(show)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name+fileExt), nil
}

func (s *Store) Read(show string) (models.CommentFile, error) {
	path, err := s.path(show)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(path)
}

// Append formats and stores a comment, returning its id. A full file is left
// untouched and ErrCapacityExceeded is returned.
func (s *Store) Append(show, name, comment string) (int, error) {
	path, err := s.path(show)
	if err != nil {
		return 0, err
	}
	name, comment = s.formatter.Format(name, comment)

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load(path)
	if err != nil {
		return 0, err
	}
	if len(file) >= s.maxComments {
		return 0, fmt.Errorf("%w: %d comments", models.ErrCapacityExceeded, len(file))
	}

	id := max(file.MaxID(), s.highWater[path]) + 1
	file[strconv.Itoa(id)] = models.CommentRecord{Name: name, Comment: comment}
	if err := s.save(path, file); err != nil {
		return 0, err
	}
	s.highWater[path] = id
	return id, nil
}

// Delete removes one comment. Unknown ids and missing files are not errors.
func (s *Store) Delete(show string, id int) error {
	path, err := s.path(show)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load(path)
	if err != nil {
		return err
	}
	key := strconv.Itoa(id)
	if _, ok := file[key]; !ok {
		return nil
	}
	if prev := file.MaxID(); prev > s.highWater[path] {
		s.highWater[path] = prev
	}
	delete(file, key)
	return s.save(path, file)
}

// ClearAll removes every file in the comments directory and returns how many
// were deleted. It keeps going past individual failures.
func (s *Store) ClearAll() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %w", models.ErrStorageIO, err)
	}

	removed := 0
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			s.logger.Warnf(providers.TypeApp, "Failed to remove comment file %s: %s", entry.Name(), err)
			errs = append(errs, err)
			continue
		}
		removed++
	}
	s.highWater = make(map[string]int)

	if len(errs) > 0 {
		return removed, fmt.Errorf("%w: %w", models.ErrStorageIO, errors.Join(errs...))
	}
	return removed, nil
}

func (s *Store) load(path string) (models.CommentFile, error) {
	file := make(models.CommentFile)
	if _, err := storage.ReadJSON(path, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrStorageIO, err)
	}
	if file == nil {
		file = make(models.CommentFile)
	}
	return file, nil
}

func (s *Store) save(path string, file models.CommentFile) error {
	if err := storage.WriteJSON(path, file); err != nil {
		return fmt.Errorf("%w: %w", models.ErrStorageIO, err)
	}
	return nil
}
