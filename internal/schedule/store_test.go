package schedule

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"csd/internal/models"
	"csd/internal/structures"
	"csd/internal/testutil"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeConfig(path string, defaultSetting bool) *structures.Config {
	return &structures.Config{
		Schedule: structures.ScheduleConfig{
			FilePath:              path,
			DefaultCommentSetting: defaultSetting,
		},
	}
}

func newTestStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := NewStore(storeConfig(path, false), &testutil.MockLogger{})
	require.NoError(t, err)
	return s.(*Store)
}

func readPersisted(t *testing.T, path string) models.ScheduleGrid {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var grid models.ScheduleGrid
	require.NoError(t, json.Unmarshal(data, &grid))
	return grid
}

func sampleGrid() models.ScheduleGrid {
	grid := models.NewScheduleGrid()
	grid[0]["5"] = models.Slot{Show: "Show A", CommentsEnabled: false}
	grid[0]["6"] = models.Slot{Show: "Show A", CommentsEnabled: false}
	grid[0]["21"] = models.Slot{Show: "show b", CommentsEnabled: true}
	grid[1]["14"] = models.Slot{Show: "Show C", CommentsEnabled: false}
	grid[5]["23"] = models.Slot{Show: "Show E", CommentsEnabled: false}
	grid[6]["0"] = models.Slot{Show: "Show E", CommentsEnabled: false}
	return grid
}

func TestLoadGrid_MissingFile(t *testing.T) {
	grid, corrupt, err := LoadGrid(filepath.Join(t.TempDir(), "schedule.json"))
	require.NoError(t, err)
	assert.False(t, corrupt)
	assert.Equal(t, models.NewScheduleGrid(), grid)
}

func TestLoadGrid_CorruptFile(t *testing.T) {
	cases := map[string]string{
		"invalid json": "invalid json!!",
		"six days":     `[{},{},{},{},{},{}]`,
		"eight days":   `[{},{},{},{},{},{},{},{}]`,
		"object":       `{"0":{}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "schedule.json")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))

			grid, corrupt, err := LoadGrid(path)
			require.NoError(t, err)
			assert.True(t, corrupt)
			assert.Len(t, grid, models.DaysPerWeek)
			for _, day := range grid {
				assert.NotNil(t, day)
				assert.Empty(t, day)
			}
		})
	}
}

func TestLoadGrid_NullDaysBecomeEmptyMaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.json")
	require.NoError(t, os.WriteFile(path, []byte(`[null,{"5":{"show":"A","comments":true}},{},{},{},{},{}]`), 0644))

	grid, corrupt, err := LoadGrid(path)
	require.NoError(t, err)
	assert.False(t, corrupt)
	assert.NotNil(t, grid[0])
	assert.Equal(t, models.Slot{Show: "A", CommentsEnabled: true}, grid[1]["5"])
}

func TestLoadGrid_UnreadablePathIsStorageError(t *testing.T) {
	// a directory cannot be read as a file
	_, _, err := LoadGrid(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrStorageIO))
}

func TestStore_CorruptFileLogsWarning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.json")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0644))
	logger := &testutil.MockLogger{}

	s, err := NewStore(storeConfig(path, false), logger)
	require.NoError(t, err)
	assert.Equal(t, models.NewScheduleGrid(), s.Snapshot())
	assert.Equal(t, 1, logger.Count("warn"))
}

func TestStore_SaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "schedule.json")
	s := newTestStore(t, path)

	require.NoError(t, s.Save(sampleGrid()))
	assert.Equal(t, sampleGrid(), readPersisted(t, path))

	reloaded := newTestStore(t, path)
	assert.Equal(t, sampleGrid(), reloaded.Snapshot())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStore_SaveRejectsWrongLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.json")
	s := newTestStore(t, path)

	err := s.Save(models.ScheduleGrid{{}, {}})
	assert.True(t, errors.Is(err, models.ErrMalformedSchedule))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := newTestStore(t, filepath.Join(t.TempDir(), "schedule.json"))
	require.NoError(t, s.Save(sampleGrid()))

	snap := s.Snapshot()
	snap[0]["5"] = models.Slot{Show: "Intruder"}
	slot, ok := s.SlotAt(0, 5)
	require.True(t, ok)
	assert.Equal(t, "Show A", slot.Show)
}

func TestStore_GetCommentSetting(t *testing.T) {
	s := newTestStore(t, filepath.Join(t.TempDir(), "schedule.json"))
	require.NoError(t, s.Save(sampleGrid()))

	assert.True(t, s.GetCommentSetting("show b"))
	assert.False(t, s.GetCommentSetting("Show A"))
	assert.False(t, s.GetCommentSetting("nonexistent show"))
}

func TestStore_GetCommentSettingDefault(t *testing.T) {
	s, err := NewStore(storeConfig(filepath.Join(t.TempDir(), "schedule.json"), true), &testutil.MockLogger{})
	require.NoError(t, err)
	assert.True(t, s.GetCommentSetting("nonexistent show"))
}

func TestStore_SetCommentSettingAppliesEverywhere(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.json")
	s := newTestStore(t, path)
	require.NoError(t, s.Save(sampleGrid()))

	changed, err := s.SetCommentSetting("Show E", true)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, s.GetCommentSetting("Show E"))

	persisted := readPersisted(t, path)
	assert.True(t, persisted[5]["23"].CommentsEnabled)
	assert.True(t, persisted[6]["0"].CommentsEnabled)
	assert.False(t, persisted[0]["5"].CommentsEnabled, "other shows untouched")
}

func TestStore_SetCommentSettingNoChangeSkipsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.json")
	s := newTestStore(t, path)
	require.NoError(t, s.Save(sampleGrid()))
	require.NoError(t, os.Remove(path))

	changed, err := s.SetCommentSetting("Show A", false)
	require.NoError(t, err)
	assert.False(t, changed)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "unchanged setting must not be persisted")

	changed, err = s.SetCommentSetting("Unknown", true)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestStore_ListShows(t *testing.T) {
	s := newTestStore(t, filepath.Join(t.TempDir(), "schedule.json"))
	require.NoError(t, s.Save(sampleGrid()))

	assert.Equal(t, []string{"Show A", "show b", "Show C", "Show E"}, s.ListShows())
}

func TestStore_ListShowsEmpty(t *testing.T) {
	s := newTestStore(t, filepath.Join(t.TempDir(), "schedule.json"))
	assert.Empty(t, s.ListShows())
}

func TestStore_UpdateFailureKeepsGrid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.json")
	s := newTestStore(t, path)
	require.NoError(t, s.Save(sampleGrid()))

	boom := errors.New("boom")
	err := s.Update(func(grid models.ScheduleGrid) error {
		delete(grid[0], "5")
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, sampleGrid(), s.Snapshot())
	assert.Equal(t, sampleGrid(), readPersisted(t, path))
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := newTestStore(t, filepath.Join(t.TempDir(), "schedule.json"))
	require.NoError(t, s.Save(sampleGrid()))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(3)
		go func(i int) {
			defer wg.Done()
			_, _ = s.SetCommentSetting("Show A", i%2 == 0)
		}(i)
		go func() {
			defer wg.Done()
			_ = s.Update(func(grid models.ScheduleGrid) error {
				grid[2]["10"] = models.Slot{Show: "Show C"}
				return nil
			})
		}()
		go func() {
			defer wg.Done()
			_ = s.GetCommentSetting("Show A")
			_ = s.ListShows()
		}()
	}
	wg.Wait()

	grid := s.Snapshot()
	assert.Equal(t, grid[0]["5"].CommentsEnabled, grid[0]["6"].CommentsEnabled, "same show keeps one setting")
}
