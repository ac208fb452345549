package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduleGrid(t *testing.T) {
	grid := NewScheduleGrid()
	require.Len(t, grid, DaysPerWeek)
	assert.True(t, grid.Valid())
	for _, day := range grid {
		assert.NotNil(t, day)
		assert.Empty(t, day)
	}
}

func TestScheduleGrid_Clone(t *testing.T) {
	grid := NewScheduleGrid()
	grid[3]["12"] = Slot{Show: "Noon"}

	clone := grid.Clone()
	clone[3]["12"] = Slot{Show: "Other", CommentsEnabled: true}
	clone[4]["1"] = Slot{Show: "Late"}

	assert.Equal(t, Slot{Show: "Noon"}, grid[3]["12"])
	assert.Empty(t, grid[4])
}

func TestScheduleGrid_SlotAt(t *testing.T) {
	grid := NewScheduleGrid()
	grid[0]["5"] = Slot{Show: "A"}

	slot, ok := grid.SlotAt(0, 5)
	assert.True(t, ok)
	assert.Equal(t, "A", slot.Show)

	_, ok = grid.SlotAt(0, 6)
	assert.False(t, ok)
	_, ok = grid.SlotAt(7, 5)
	assert.False(t, ok)
	_, ok = grid.SlotAt(-1, 5)
	assert.False(t, ok)
}

func TestScheduleGrid_CommentSettingFirstMatch(t *testing.T) {
	grid := NewScheduleGrid()
	grid[1]["3"] = Slot{Show: "A", CommentsEnabled: true}
	grid[1]["10"] = Slot{Show: "A", CommentsEnabled: false}
	grid[0]["23"] = Slot{Show: "B", CommentsEnabled: false}
	grid[0]["2"] = Slot{Show: "B", CommentsEnabled: true}

	enabled, ok := grid.CommentSetting("A")
	assert.True(t, ok)
	assert.True(t, enabled)

	enabled, ok = grid.CommentSetting("B")
	assert.True(t, ok)
	assert.True(t, enabled)

	_, ok = grid.CommentSetting("C")
	assert.False(t, ok)
}

func TestScheduleGrid_SetCommentSetting(t *testing.T) {
	grid := NewScheduleGrid()
	grid[0]["5"] = Slot{Show: "A"}
	grid[6]["22"] = Slot{Show: "A"}
	grid[2]["5"] = Slot{Show: "B"}

	assert.True(t, grid.SetCommentSetting("A", true))
	assert.True(t, grid[0]["5"].CommentsEnabled)
	assert.True(t, grid[6]["22"].CommentsEnabled)
	assert.False(t, grid[2]["5"].CommentsEnabled)

	assert.False(t, grid.SetCommentSetting("A", true))
	assert.False(t, grid.SetCommentSetting("Nobody", true))
}

func TestScheduleGrid_Shows(t *testing.T) {
	grid := NewScheduleGrid()
	grid[0]["1"] = Slot{Show: "beta"}
	grid[0]["2"] = Slot{Show: "Alpha"}
	grid[3]["4"] = Slot{Show: "beta"}
	grid[5]["6"] = Slot{Show: "Beta"}

	assert.Equal(t, []string{"Alpha", "Beta", "beta"}, grid.Shows())
	assert.Empty(t, NewScheduleGrid().Shows())
}
