package catalog

import (
	"fmt"
	"strings"
)

// Selection is the ordered set of currently active dimension ids. Insertion
// order is preserved and the set is never empty: removing the last remaining
// member is a no-op, not an error.
type Selection struct {
	catalog *Catalog
	ids     []string
}

// NewSelection builds a selection seeded with the given ids. At least one
// seed id must be present in the catalog.
func NewSelection(c *Catalog, initial ...string) (*Selection, error) {
	s := &Selection{catalog: c}
	for _, id := range initial {
		if c.Has(id) && !s.Contains(id) {
			s.ids = append(s.ids, id)
		}
	}
	if len(s.ids) == 0 {
		return nil, fmt.Errorf("selection requires at least one valid dimension id")
	}
	return s, nil
}

// Toggle flips membership for an id. Present and size > 1: removed. Present
// and last member: no-op. Absent: appended at the end. Unknown ids are
// ignored. The operation is total; it returns the resulting ordered ids.
func (s *Selection) Toggle(id string) []string {
	if !s.catalog.Has(id) {
		return s.IDs()
	}
	for i, existing := range s.ids {
		if existing == id {
			if len(s.ids) > 1 {
				s.ids = append(s.ids[:i], s.ids[i+1:]...)
			}
			return s.IDs()
		}
	}
	s.ids = append(s.ids, id)
	return s.IDs()
}

// Contains reports membership.
func (s *Selection) Contains(id string) bool {
	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// IDs returns a snapshot copy of the current ordered membership. Callers
// never receive a live alias of the underlying slice.
func (s *Selection) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the current cardinality.
func (s *Selection) Len() int {
	return len(s.ids)
}

// DataSources returns the data-source labels of the selected dimensions,
// in membership order.
func (s *Selection) DataSources() []string {
	return s.catalog.DataSources(s.ids)
}

// Dimensions returns the selected dimensions in membership order.
func (s *Selection) Dimensions() []Dimension {
	out := make([]Dimension, 0, len(s.ids))
	for _, id := range s.ids {
		if d, ok := s.catalog.Get(id); ok {
			out = append(out, d)
		}
	}
	return out
}

// Describe returns the human-readable analysis label for the current
// membership. Recomputed on every call, never cached.
func (s *Selection) Describe() string {
	names := strings.Join(s.catalog.Titles(s.ids), " + ")
	switch len(s.ids) {
	case 1:
		return fmt.Sprintf("Single-dimensional analysis: %s", names)
	case 2:
		return fmt.Sprintf("Dual-dimensional synthesis: %s", names)
	case 3:
		return fmt.Sprintf("Full-spectrum deep analysis: %s", names)
	default:
		return fmt.Sprintf("%d-dimensional analysis: %s", len(s.ids), names)
	}
}

// Depth returns the processing capability wording for the current
// cardinality.
func (s *Selection) Depth() string {
	switch len(s.ids) {
	case 1:
		return "Focused Analysis"
	case 2:
		return "Enhanced Analysis"
	default:
		return "Maximum Depth"
	}
}
