// Package assignment implements strategies for pairing interceptors with
// threats.
package assignment

import (
	"sort"

	"github.com/talonworks/swarm-sim/pkg/agent"
)

// Pair assigns the threat at ThreatIndex to the interceptor at
// InterceptorIndex. Indices refer to the slices passed to Assign.
type Pair struct {
	InterceptorIndex int
	ThreatIndex      int
}

// Assignment pairs interceptors with threats. Implementations may carry
// state across calls and are not safe for concurrent use.
type Assignment interface {
	// Assign pairs assignable interceptors with active threats.
	Assign(interceptors, threats []*agent.Agent) []Pair
}

// assignableInterceptorIndices returns the indices of the interceptors that
// can take a new target.
func assignableInterceptorIndices(interceptors []*agent.Agent) []int {
	indices := make([]int, 0, len(interceptors))
	for i, interceptor := range interceptors {
		if interceptor.Assignable() {
			indices = append(indices, i)
		}
	}
	return indices
}

// activeThreatIndices returns the indices of the threats that have not been
// hit.
func activeThreatIndices(threats []*agent.Agent) []int {
	indices := make([]int, 0, len(threats))
	for i, threat := range threats {
		if !threat.Hit() {
			indices = append(indices, i)
		}
	}
	return indices
}

// Distance assigns each threat to the closest assignable interceptor. Every
// active threat receives an interceptor before any threat receives a second
// one.
type Distance struct{}

// NewDistance creates a distance-based assignment.
func NewDistance() *Distance { return &Distance{} }

type candidate struct {
	interceptorIndex int
	threatIndex      int
	distance         float64
}

// Assign pairs assignable interceptors with active threats by distance.
func (d *Distance) Assign(interceptors, threats []*agent.Agent) []Pair {
	interceptorIndices := assignableInterceptorIndices(interceptors)
	if len(interceptorIndices) == 0 {
		return nil
	}
	threatIndices := activeThreatIndices(threats)
	if len(threatIndices) == 0 {
		return nil
	}

	candidates := make([]candidate, 0, len(interceptorIndices)*len(threatIndices))
	for _, interceptorIndex := range interceptorIndices {
		interceptorPosition := interceptors[interceptorIndex].Position()
		for _, threatIndex := range threatIndices {
			candidates = append(candidates, candidate{
				interceptorIndex: interceptorIndex,
				threatIndex:      threatIndex,
				distance:         interceptorPosition.DistanceTo(threats[threatIndex].Position()),
			})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.distance != b.distance {
			return a.distance < b.distance
		}
		if a.interceptorIndex != b.interceptorIndex {
			return a.interceptorIndex < b.interceptorIndex
		}
		return a.threatIndex < b.threatIndex
	})

	// Repeatedly sweep the sorted candidates. Each round consumes every
	// interceptor and threat at most once, so the remaining interceptors
	// spread over the threats before any threat is covered twice.
	var pairs []Pair
	for len(candidates) > 0 {
		consumedInterceptors := make(map[int]bool, len(interceptorIndices))
		consumedThreats := make(map[int]bool, len(threatIndices))
		for _, c := range candidates {
			if !consumedInterceptors[c.interceptorIndex] && !consumedThreats[c.threatIndex] {
				pairs = append(pairs, Pair{
					InterceptorIndex: c.interceptorIndex,
					ThreatIndex:      c.threatIndex,
				})
				consumedInterceptors[c.interceptorIndex] = true
				consumedThreats[c.threatIndex] = true
			}
		}
		remaining := candidates[:0]
		for _, c := range candidates {
			if !consumedInterceptors[c.interceptorIndex] {
				remaining = append(remaining, c)
			}
		}
		candidates = remaining
	}
	return pairs
}

// RoundRobin assigns threats to interceptors cyclically by threat index,
// remembering its position across calls.
type RoundRobin struct {
	prevThreatIndex int
}

// NewRoundRobin creates a round-robin assignment.
func NewRoundRobin() *RoundRobin {
	return &RoundRobin{prevThreatIndex: -1}
}

// Assign pairs assignable interceptors with active threats in a cycle over
// the threat indices.
func (r *RoundRobin) Assign(interceptors, threats []*agent.Agent) []Pair {
	interceptorIndices := assignableInterceptorIndices(interceptors)
	if len(interceptorIndices) == 0 {
		return nil
	}
	threatIndices := activeThreatIndices(threats)
	if len(threatIndices) == 0 {
		return nil
	}

	pairs := make([]Pair, 0, len(interceptorIndices))
	for _, interceptorIndex := range interceptorIndices {
		// Pick the smallest active threat index after the previous one,
		// wrapping around to the start.
		next := sort.SearchInts(threatIndices, r.prevThreatIndex+1)
		if next == len(threatIndices) {
			next = 0
		}
		threatIndex := threatIndices[next]
		pairs = append(pairs, Pair{
			InterceptorIndex: interceptorIndex,
			ThreatIndex:      threatIndex,
		})
		r.prevThreatIndex = threatIndex
	}
	return pairs
}
