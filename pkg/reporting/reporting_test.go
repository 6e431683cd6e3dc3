package reporting

import (
	"bytes"
	"strings"
	"testing"

	"github.com/talonworks/swarm-sim/pkg/agent"
	"github.com/talonworks/swarm-sim/pkg/sim"
	"github.com/talonworks/swarm-sim/pkg/state"
)

func TestObserveRecordsEntries(t *testing.T) {
	var buf bytes.Buffer
	log := NewEngagementLogWriter(&buf, false)

	interceptor := agent.NewModel(state.State{})
	threat := agent.NewModel(state.State{})
	log.Observe(sim.Event{Time: 1.5, Kind: sim.EventAssign, Agent: interceptor, Target: threat})
	log.Observe(sim.Event{Time: 2.5, Kind: sim.EventHit, Agent: interceptor, Target: threat})

	entries := log.Entries()
	if len(entries) != 2 {
		t.Fatalf("recorded %d entries, want 2", len(entries))
	}
	if entries[0].Kind != sim.EventAssign || entries[0].Time != 1.5 {
		t.Errorf("first entry = %+v, want assign at t=1.5", entries[0])
	}
	if entries[1].AgentID != interceptor.ID() || entries[1].TargetID != threat.ID() {
		t.Error("hit entry does not carry the participant IDs")
	}
	if !strings.Contains(buf.String(), "destroyed") {
		t.Errorf("output %q missing the hit line", buf.String())
	}
}

func TestQuietLogDoesNotPrint(t *testing.T) {
	var buf bytes.Buffer
	log := NewEngagementLogWriter(&buf, true)
	log.Observe(sim.Event{Kind: sim.EventSpawn, Agent: agent.NewModel(state.State{}), Target: agent.NewModel(state.State{})})

	if buf.Len() != 0 {
		t.Errorf("quiet log printed %q", buf.String())
	}
	if len(log.Entries()) != 1 {
		t.Error("quiet log did not record the event")
	}
}

func TestSummarize(t *testing.T) {
	var buf bytes.Buffer
	log := NewEngagementLogWriter(&buf, true)

	interceptors := []*agent.Agent{agent.NewModel(state.State{}), agent.NewModel(state.State{})}
	threats := []*agent.Agent{agent.NewModel(state.State{}), agent.NewModel(state.State{}), agent.NewModel(state.State{})}
	interceptors[0].MarkAsHit()
	threats[0].MarkAsHit()
	threats[1].MarkAsHit()
	log.Observe(sim.Event{Kind: sim.EventAssign, Agent: interceptors[0], Target: threats[0]})

	summary := log.Summarize(interceptors, threats)
	if summary.ThreatsDestroyed != 2 {
		t.Errorf("destroyed = %d, want 2", summary.ThreatsDestroyed)
	}
	if summary.ThreatsLeaking != 1 {
		t.Errorf("leaking = %d, want 1", summary.ThreatsLeaking)
	}
	if summary.InterceptorsExpended != 1 {
		t.Errorf("expended = %d, want 1", summary.InterceptorsExpended)
	}
	if summary.Assignments != 1 {
		t.Errorf("assignments = %d, want 1", summary.Assignments)
	}

	log.PrintSummary(summary)
	if !strings.Contains(buf.String(), "Engagement summary") {
		t.Error("summary output missing header")
	}
}
