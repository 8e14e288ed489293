// Package receiver implements the telemetry receive loop.
package receiver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang/glog"

	"github.com/robotalks/imurecv/pkg/csvlog"
	fx "github.com/robotalks/imurecv/pkg/framework"
	"github.com/robotalks/imurecv/pkg/serialport"
	"github.com/robotalks/imurecv/pkg/telemetry"
)

// Port is an opened serial device.
type Port interface {
	io.Closer
	// ReadLine returns the next line. An empty line with a nil error
	// means the read timed out.
	ReadLine() ([]byte, error)
}

// Opener opens the serial device.
type Opener func(*serialport.Config) (Port, error)

// LogCreator creates the CSV log at path.
type LogCreator func(path string) (*csvlog.Writer, error)

// Sink consumes records after they have been persisted.
type Sink interface {
	HandleRecord(context.Context, *telemetry.Record) error
}

// HandleRecordFunc is the func form of Sink.
type HandleRecordFunc func(context.Context, *telemetry.Record) error

// HandleRecord implements Sink.
func (f HandleRecordFunc) HandleRecord(ctx context.Context, rec *telemetry.Record) error {
	return f(ctx, rec)
}

// Receiver reads telemetry lines from the device, echoes them to the
// console and appends records to the CSV log.
type Receiver struct {
	Config  Config
	Console *Console
	Sinks   []Sink

	Open   Opener
	Create LogCreator
	Now    func() time.Time

	logPath string
	stats   counters
}

// New creates a Receiver using the serial port and a CSV file.
func New(conf Config, console *Console) *Receiver {
	return &Receiver{
		Config:  conf,
		Console: console,
		Open:    OpenSerial,
		Create:  csvlog.Create,
		Now:     time.Now,
	}
}

// OpenSerial is the default Opener.
func OpenSerial(c *serialport.Config) (Port, error) {
	p, err := serialport.Open(c)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// AddSink appends sinks.
func (r *Receiver) AddSink(sinks ...Sink) *Receiver {
	r.Sinks = append(r.Sinks, sinks...)
	return r
}

// LogPath returns the CSV log path of the current run. It's known as
// soon as Run starts, even if the file is never created.
func (r *Receiver) LogPath() string {
	return r.logPath
}

// Stats returns a snapshot of the counters.
func (r *Receiver) Stats() Stats {
	return r.stats.snapshot()
}

// Run implements Runnable. The port and the log are released on every
// return path.
func (r *Receiver) Run(ctx context.Context) (err error) {
	var scope fx.Scope
	defer func() {
		if cerr := scope.Close(); cerr != nil {
			if err == nil {
				err = &UnexpectedError{Err: cerr}
			} else {
				glog.Warningf("release: %v", cerr)
			}
		}
	}()

	r.logPath = telemetry.FilePath(r.Config.OutputDir, r.now())

	r.Console.Connecting(r.Config.Device, r.Config.Baud)
	port, err := r.Open(r.Config.SerialConfig())
	if err != nil {
		return &ConnectionError{Op: "open", Device: r.Config.Device, Err: err}
	}
	scope.Add(port)
	glog.Infof("opened %s at %d baud", r.Config.Device, r.Config.Baud)

	if err = r.settle(ctx); err != nil {
		return err
	}
	r.Console.Connected()

	out, err := r.Create(r.logPath)
	if err != nil {
		return &UnexpectedError{Err: err}
	}
	scope.Add(out)
	glog.Infof("logging to %s", r.logPath)

	return r.receive(ctx, port, out)
}

func (r *Receiver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Receiver) settle(ctx context.Context) error {
	if r.Config.SettleDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(r.Config.SettleDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ErrInterrupted
	case <-timer.C:
		return nil
	}
}

func (r *Receiver) receive(ctx context.Context, port Port, out *csvlog.Writer) error {
	var readErrs int
	for {
		select {
		case <-ctx.Done():
			return ErrInterrupted
		default:
		}

		raw, err := port.ReadLine()
		if err != nil {
			inc(&r.stats.readErrors)
			readErrs++
			glog.Warningf("read %s: %v", r.Config.Device, err)
			if r.Config.MaxReadErrors > 0 && readErrs >= r.Config.MaxReadErrors {
				return &ConnectionError{Op: "read", Device: r.Config.Device, Err: err}
			}
			continue
		}
		readErrs = 0

		err = r.handleLine(ctx, raw, out)
		switch {
		case err == nil:
		case errors.Is(err, ErrParseSkip):
			inc(&r.stats.skipped)
			glog.V(2).Info(err)
		default:
			return err
		}
	}
}

func (r *Receiver) handleLine(ctx context.Context, raw []byte, out *csvlog.Writer) error {
	if !utf8.Valid(raw) {
		return &UnexpectedError{Err: fmt.Errorf("%w: %q", ErrInvalidEncoding, raw)}
	}
	line := strings.TrimSpace(string(raw))
	if line == "" {
		inc(&r.stats.empty)
		return nil
	}
	inc(&r.stats.lines)

	timestamp := telemetry.FormatTimestamp(r.now())
	r.Console.Line(timestamp, line)

	rec, err := telemetry.Parse(timestamp, line)
	if err != nil {
		return &SkipError{Line: line, Err: err}
	}
	if err = out.WriteRow(rec.CSVRow()); err != nil {
		return &SkipError{Line: line, Err: err}
	}
	if err = out.Flush(); err != nil {
		return &UnexpectedError{Err: err}
	}
	inc(&r.stats.rows)

	for _, sink := range r.Sinks {
		if err := sink.HandleRecord(ctx, rec); err != nil {
			glog.Warningf("sink: %v", err)
		}
	}
	return nil
}
