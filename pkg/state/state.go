// Package state defines the kinematic state of an agent and the append-only
// history of its past states.
package state

import "github.com/talonworks/swarm-sim/pkg/geometry"

// State is the kinematic state of an agent in a fixed inertial frame.
type State struct {
	Position     geometry.Vec3
	Velocity     geometry.Vec3
	Acceleration geometry.Vec3
}

// Record is a single history entry.
type Record struct {
	// Time in seconds.
	T float64

	// If true, the agent has hit or been hit.
	Hit bool

	// State of the agent.
	State State
}

// History maintains the list of past states of an agent. Records earlier
// than the latest one are immutable once appended; the latest record may be
// refreshed in place until the next one is added.
type History struct {
	records []Record
}

// NewHistory creates a history seeded with the given record.
func NewHistory(record Record) *History {
	return &History{records: []Record{record}}
}

// Len returns the number of history records.
func (h *History) Len() int {
	return len(h.records)
}

// Front returns the earliest history record.
func (h *History) Front() Record {
	return h.records[0]
}

// Back returns a pointer to the latest history record.
func (h *History) Back() *Record {
	return &h.records[len(h.records)-1]
}

// Add appends a new history record.
func (h *History) Add(record Record) {
	h.records = append(h.records, record)
}

// UpdateLast replaces the latest history record.
func (h *History) UpdateLast(record Record) {
	h.records[len(h.records)-1] = record
}

// Records returns the history records in chronological order. The returned
// slice is shared with the history and must not be mutated.
func (h *History) Records() []Record {
	return h.records
}
