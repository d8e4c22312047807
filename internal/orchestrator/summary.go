package orchestrator

import "sync"

// Summary reports what one pass did. Counts are item-granular: a unit
// that fails extraction counts once, a candidate that fails to land on
// the board counts once.
type Summary struct {
	// Pass names the pass that produced this summary, "ingest" or
	// "execute".
	Pass string

	// RunID uniquely identifies this run; every log line the pass emits
	// carries it.
	RunID string

	// Units is the number of source units visited (ingest only).
	Units int

	// Tasks is the number of confirmed tasks visited (execute only).
	Tasks int

	// Created is the number of candidates written to the inbox.
	Created int

	// Completed is the number of tasks moved to done, including tasks
	// found already moved by a previous run.
	Completed int

	// Skipped is the number of units skipped because the ledger had
	// already seen their content.
	Skipped int

	// Dropped is the number of malformed candidate items the parser
	// discarded.
	Dropped int

	// Failed is the number of items that errored. Item failures never
	// abort a pass; they are reported here instead.
	Failed int
}

// collector accumulates a Summary across pool workers.
type collector struct {
	mu sync.Mutex
	s  Summary
}

func newCollector(pass string) *collector {
	return &collector{s: Summary{Pass: pass}}
}

func (c *collector) add(delta Summary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.Units += delta.Units
	c.s.Tasks += delta.Tasks
	c.s.Created += delta.Created
	c.s.Completed += delta.Completed
	c.s.Skipped += delta.Skipped
	c.s.Dropped += delta.Dropped
	c.s.Failed += delta.Failed
}

func (c *collector) summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s
}
