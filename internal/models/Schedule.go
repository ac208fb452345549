package models

import (
	"sort"
	"strconv"
	"strings"
)

// DaysPerWeek is the fixed length of a ScheduleGrid. Index 0 is Sunday.
const DaysPerWeek = 7

// HoursPerDay bounds the hour keys a DaySchedule may hold ("0".."23").
const HoursPerDay = 24

type Slot struct {
	Show            string `json:"show"`
	CommentsEnabled bool   `json:"comments"`
}

// DaySchedule maps an hour-of-day key ("0".."23") to the show airing at that hour.
type DaySchedule map[string]Slot

// ScheduleGrid is the persisted weekly schedule, Sunday first.
type ScheduleGrid []DaySchedule

func NewScheduleGrid() ScheduleGrid {
	grid := make(ScheduleGrid, DaysPerWeek)
	for i := range grid {
		grid[i] = make(DaySchedule)
	}
	return grid
}

func HourKey(hour int) string {
	return strconv.Itoa(hour)
}

func (g ScheduleGrid) Valid() bool {
	return len(g) == DaysPerWeek
}

// Clone returns a deep copy so callers can mutate it without touching the original.
func (g ScheduleGrid) Clone() ScheduleGrid {
	out := make(ScheduleGrid, len(g))
	for i, day := range g {
		out[i] = make(DaySchedule, len(day))
		for hour, slot := range day {
			out[i][hour] = slot
		}
	}
	return out
}

// SlotAt returns the slot scheduled for the given weekday and hour.
func (g ScheduleGrid) SlotAt(day, hour int) (Slot, bool) {
	if day < 0 || day >= len(g) {
		return Slot{}, false
	}
	slot, ok := g[day][HourKey(hour)]
	return slot, ok
}

// CommentSetting scans days in order and hours ascending for the first slot
// belonging to show. The second return value is false when the show is unscheduled.
func (g ScheduleGrid) CommentSetting(show string) (bool, bool) {
	for _, day := range g {
		for hour := 0; hour < HoursPerDay; hour++ {
			if slot, ok := day[HourKey(hour)]; ok && slot.Show == show {
				return slot.CommentsEnabled, true
			}
		}
	}
	return false, false
}

// SetCommentSetting applies enabled to every slot of show and reports whether
// any slot actually changed.
func (g ScheduleGrid) SetCommentSetting(show string, enabled bool) bool {
	changed := false
	for _, day := range g {
		for hour, slot := range day {
			if slot.Show != show {
				continue
			}
			if slot.CommentsEnabled != enabled {
				changed = true
				slot.CommentsEnabled = enabled
				day[hour] = slot
			}
		}
	}
	return changed
}

// Shows lists each distinct show name once, sorted case-insensitively.
func (g ScheduleGrid) Shows() []string {
	seen := make(map[string]struct{})
	shows := make([]string, 0)
	for _, day := range g {
		for _, slot := range day {
			if _, ok := seen[slot.Show]; ok {
				continue
			}
			seen[slot.Show] = struct{}{}
			shows = append(shows, slot.Show)
		}
	}
	sort.Slice(shows, func(i, j int) bool {
		li, lj := strings.ToLower(shows[i]), strings.ToLower(shows[j])
		if li != lj {
			return li < lj
		}
		return shows[i] < shows[j]
	})
	return shows
}

// ShowSetting is one row of the admin show list.
type ShowSetting struct {
	Show     string `json:"show"`
	Comments bool   `json:"comments"`
}
