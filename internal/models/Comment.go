package models

import (
	"sort"
	"strconv"
)

type CommentRecord struct {
	Name    string `json:"name"`
	Comment string `json:"comment"`
}

// CommentFile is the on-disk content of one show's comment log, keyed by
// the decimal string of each comment id.
type CommentFile map[string]CommentRecord

// MaxID returns the highest numeric id present, or 0 for an empty file.
// Keys that are not positive integers are ignored.
func (f CommentFile) MaxID() int {
	maxID := 0
	for key := range f {
		id, err := strconv.Atoi(key)
		if err != nil || id <= 0 {
			continue
		}
		if id > maxID {
			maxID = id
		}
	}
	return maxID
}

// IDs returns the numeric ids in ascending order.
func (f CommentFile) IDs() []int {
	ids := make([]int, 0, len(f))
	for key := range f {
		if id, err := strconv.Atoi(key); err == nil && id > 0 {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}
