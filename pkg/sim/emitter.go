package sim

import (
	"context"
	"io"
	"time"

	"github.com/golang/glog"
)

// DefaultInterval is the firmware's sampling period.
const DefaultInterval = 100 * time.Millisecond

// Emitter writes the banner and then one reading per interval, CRLF
// terminated as the firmware does. In Frames mode it writes binary
// gesture frames instead, without the banner.
type Emitter struct {
	W         io.Writer
	Generator *Generator
	Interval  time.Duration
	// Count stops the emitter after so many readings, 0 for unlimited.
	Count int
	// Garbage is the probability of emitting a truncated line, or a
	// frame with a flipped byte, instead of a reading.
	Garbage float64
	// Frames selects the binary gesture frame stream.
	Frames bool

	emitted int
}

// Run implements framework.Runnable.
func (e *Emitter) Run(ctx context.Context) error {
	e.emitted = 0
	defer func() {
		glog.V(1).Infof("emitted %d readings", e.emitted)
	}()
	if !e.Frames {
		for _, line := range Banner() {
			if err := e.writeLine(line); err != nil {
				return err
			}
		}
	}
	ticker := time.NewTicker(e.interval())
	defer ticker.Stop()
	for e.Count <= 0 || e.emitted < e.Count {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if err := e.emit(); err != nil {
			return err
		}
		e.emitted++
	}
	return nil
}

func (e *Emitter) interval() time.Duration {
	if e.Interval <= 0 {
		return DefaultInterval
	}
	return e.Interval
}

// Emitted returns the number of readings written by the last Run.
func (e *Emitter) Emitted() int {
	return e.emitted
}

func (e *Emitter) emit() error {
	reading := e.Generator.Next()
	garbage := e.Garbage > 0 && e.Generator.rand.Float64() < e.Garbage
	if e.Frames {
		ts := uint32(time.Duration(e.emitted) * e.interval() / time.Millisecond)
		data := e.Generator.Frame(reading, ts).Bytes()
		if garbage {
			data[2+e.Generator.rand.Intn(len(data)-2)] ^= 0xff
		}
		_, err := e.W.Write(data)
		return err
	}
	line := reading.Line()
	if garbage {
		line = line[:len(line)/2]
	}
	return e.writeLine(line)
}

func (e *Emitter) writeLine(line string) error {
	_, err := io.WriteString(e.W, line+"\r\n")
	return err
}
