package state

import (
	"testing"

	"github.com/talonworks/swarm-sim/pkg/geometry"
)

func TestHistorySeededAtConstruction(t *testing.T) {
	h := NewHistory(Record{T: 1.5})
	if h.Len() != 1 {
		t.Fatalf("Len = %d, expected 1", h.Len())
	}
	if h.Front().T != 1.5 {
		t.Errorf("Front().T = %f, expected 1.5", h.Front().T)
	}
}

func TestHistoryBackIsMutable(t *testing.T) {
	h := NewHistory(Record{T: 0})
	h.Add(Record{T: 1})

	back := h.Back()
	back.Hit = true
	back.State.Position = geometry.Vec3{X: 7}

	if !h.Back().Hit {
		t.Errorf("latest record hit flag not updated")
	}
	if h.Back().State.Position.X != 7 {
		t.Errorf("latest record state not updated")
	}
	if h.Front().Hit {
		t.Errorf("earlier record mutated")
	}
}

func TestHistoryUpdateLast(t *testing.T) {
	h := NewHistory(Record{T: 0})
	h.Add(Record{T: 1})
	h.UpdateLast(Record{T: 2, Hit: true})

	if h.Len() != 2 {
		t.Fatalf("Len = %d, expected 2", h.Len())
	}
	if h.Back().T != 2 || !h.Back().Hit {
		t.Errorf("Back = %+v, expected T=2 Hit=true", *h.Back())
	}
}
