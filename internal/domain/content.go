package domain

import (
	"fmt"
	"strings"
)

// ContentEntry is one keyword-indexed block of canned business content.
type ContentEntry struct {
	ID      int
	Keyword string
	Content string
}

// Validate checks that the entry can be stored and offered as a topic.
func (c *ContentEntry) Validate() error {
	if c.ID <= 0 {
		return fmt.Errorf("content id must be positive, got %d", c.ID)
	}
	if strings.TrimSpace(c.Keyword) == "" {
		return fmt.Errorf("content %d: keyword is required", c.ID)
	}
	return nil
}

// ContentByID indexes entries by id. Later duplicates win.
func ContentByID(entries []ContentEntry) map[int]ContentEntry {
	out := make(map[int]ContentEntry, len(entries))
	for _, e := range entries {
		out[e.ID] = e
	}
	return out
}
