// Package reporting collects simulation events and renders a colored
// engagement log and run summary to the console.
package reporting

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/talonworks/swarm-sim/pkg/agent"
	"github.com/talonworks/swarm-sim/pkg/sim"
)

// Color definitions.
var (
	colorSpawn  = color.New(color.FgCyan)
	colorAssign = color.New(color.FgBlue)
	colorHit    = color.New(color.FgGreen, color.Bold)
	colorHeader = color.New(color.Bold)
	colorMiss   = color.New(color.FgYellow)
)

// Entry is one recorded simulation event.
type Entry struct {
	Time    float64
	Kind    sim.EventKind
	AgentID uuid.UUID
	// TargetID is the other party of the event, uuid.Nil when absent.
	TargetID uuid.UUID
	Message  string
}

// EngagementLog records simulation events and prints them as they happen.
type EngagementLog struct {
	mu      sync.Mutex
	writer  io.Writer
	entries []Entry
	quiet   bool
}

// NewEngagementLog creates an engagement log writing to stdout.
func NewEngagementLog() *EngagementLog {
	return &EngagementLog{writer: os.Stdout}
}

// NewEngagementLogWriter creates an engagement log writing to w. A quiet
// log records entries without printing them.
func NewEngagementLogWriter(w io.Writer, quiet bool) *EngagementLog {
	return &EngagementLog{writer: w, quiet: quiet}
}

// Observe records a simulation event. It is the sim.EventFunc of the log.
func (l *EngagementLog) Observe(event sim.Event) {
	entry := Entry{
		Time:    event.Time,
		Kind:    event.Kind,
		AgentID: event.Agent.ID(),
	}
	if event.Target != nil {
		entry.TargetID = event.Target.ID()
	}

	switch event.Kind {
	case sim.EventSpawn:
		entry.Message = fmt.Sprintf("t=%7.3fs  %s released %s %s",
			event.Time, shortID(entry.TargetID), event.Agent.Type(), shortID(entry.AgentID))
	case sim.EventAssign:
		entry.Message = fmt.Sprintf("t=%7.3fs  %s %s assigned %s %s",
			event.Time, event.Agent.Type(), shortID(entry.AgentID),
			event.Target.Type(), shortID(entry.TargetID))
	case sim.EventHit:
		entry.Message = fmt.Sprintf("t=%7.3fs  %s %s destroyed %s %s",
			event.Time, event.Agent.Type(), shortID(entry.AgentID),
			event.Target.Type(), shortID(entry.TargetID))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	if l.quiet {
		return
	}
	switch event.Kind {
	case sim.EventSpawn:
		colorSpawn.Fprintln(l.writer, entry.Message)
	case sim.EventAssign:
		colorAssign.Fprintln(l.writer, entry.Message)
	case sim.EventHit:
		colorHit.Fprintln(l.writer, entry.Message)
	}
}

// Entries returns the recorded entries.
func (l *EngagementLog) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries := make([]Entry, len(l.entries))
	copy(entries, l.entries)
	return entries
}

// Summary aggregates the outcome of a simulation run.
type Summary struct {
	Interceptors         int
	Threats              int
	ThreatsDestroyed     int
	ThreatsLeaking       int
	InterceptorsExpended int
	Assignments          int
}

// Summarize computes the run summary from the final swarms and the recorded
// events.
func (l *EngagementLog) Summarize(interceptors, threats []*agent.Agent) Summary {
	summary := Summary{
		Interceptors: len(interceptors),
		Threats:      len(threats),
	}
	for _, threat := range threats {
		if threat.Hit() {
			summary.ThreatsDestroyed++
		} else {
			summary.ThreatsLeaking++
		}
	}
	for _, interceptor := range interceptors {
		if interceptor.HasTerminated() {
			summary.InterceptorsExpended++
		}
	}
	for _, entry := range l.Entries() {
		if entry.Kind == sim.EventAssign {
			summary.Assignments++
		}
	}
	return summary
}

// PrintSummary renders the run summary.
func (l *EngagementLog) PrintSummary(summary Summary) {
	l.mu.Lock()
	defer l.mu.Unlock()

	colorHeader.Fprintln(l.writer, "\nEngagement summary")
	fmt.Fprintf(l.writer, "  Interceptors:  %d (%d expended)\n",
		summary.Interceptors, summary.InterceptorsExpended)
	fmt.Fprintf(l.writer, "  Threats:       %d\n", summary.Threats)
	fmt.Fprintf(l.writer, "  Assignments:   %d\n", summary.Assignments)
	colorHit.Fprintf(l.writer, "  Destroyed:     %d\n", summary.ThreatsDestroyed)
	if summary.ThreatsLeaking > 0 {
		colorMiss.Fprintf(l.writer, "  Leaking:       %d\n", summary.ThreatsLeaking)
	}
}

// shortID abbreviates a UUID for console output.
func shortID(id uuid.UUID) string {
	s := id.String()
	return s[:8]
}
