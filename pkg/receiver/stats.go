package receiver

import "sync/atomic"

// Stats counts what the receive loop has seen.
type Stats struct {
	// Lines is the number of non-empty lines received.
	Lines uint64 `json:"lines"`
	// Rows is the number of CSV rows written.
	Rows uint64 `json:"rows"`
	// Skipped is the number of lines not persisted.
	Skipped uint64 `json:"skipped"`
	// Empty is the number of reads that returned nothing.
	Empty uint64 `json:"empty"`
	// ReadErrors is the number of failed reads.
	ReadErrors uint64 `json:"read_errors"`
}

type counters struct {
	lines, rows, skipped, empty, readErrors uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Lines:      atomic.LoadUint64(&c.lines),
		Rows:       atomic.LoadUint64(&c.rows),
		Skipped:    atomic.LoadUint64(&c.skipped),
		Empty:      atomic.LoadUint64(&c.empty),
		ReadErrors: atomic.LoadUint64(&c.readErrors),
	}
}

func inc(v *uint64) {
	atomic.AddUint64(v, 1)
}
