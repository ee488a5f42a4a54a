package partition

import (
	"fmt"
	"strings"
)

// Stats is an insertion-ordered set of named counters reported by
// coarseners and refiners.
type Stats struct {
	keys   []string
	values map[string]float64
}

// NewStats creates an empty statistics set.
func NewStats() *Stats {
	return &Stats{values: make(map[string]float64)}
}

// Add increases the counter key by delta.
func (s *Stats) Add(key string, delta float64) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] += delta
}

// Set overwrites the counter key.
func (s *Stats) Set(key string, value float64) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Get returns the counter key, or 0.
func (s *Stats) Get(key string) float64 { return s.values[key] }

// Keys returns the counter names in insertion order.
func (s *Stats) Keys() []string { return s.keys }

// String renders the counters as " key=value" pairs.
func (s *Stats) String() string {
	var b strings.Builder
	for _, key := range s.keys {
		fmt.Fprintf(&b, " %s=%v", key, s.values[key])
	}
	return b.String()
}
