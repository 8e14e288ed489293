// Package serialport reads newline-delimited text from a serial device.
package serialport

import (
	"bufio"
	"errors"
	"io"
	"os"
	"time"

	"github.com/tarm/serial"
)

// ErrTimeout indicates no data arrived within the read timeout.
var ErrTimeout = errors.New("read timeout")

// Config describes how the device is opened. Framing is 8N1.
type Config struct {
	Device      string
	Baud        int
	ReadTimeout time.Duration
}

// Port reads lines from an opened device.
type Port struct {
	rwc io.ReadWriteCloser
	br  *bufio.Reader
}

// Open opens the serial device.
func Open(c *Config) (*Port, error) {
	p, err := serial.OpenPort(&serial.Config{
		Name:        c.Device,
		Baud:        c.Baud,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
		ReadTimeout: c.ReadTimeout,
	})
	if err != nil {
		return nil, err
	}
	return New(p), nil
}

// New wraps an opened stream. A Read returning no data, either as
// (0, nil), io.EOF or a timeout error, is treated as a read timeout.
func New(rwc io.ReadWriteCloser) *Port {
	return &Port{
		rwc: rwc,
		br:  bufio.NewReader(timeoutReader{rwc}),
	}
}

// ReadLine reads up to and including the next '\n'.
// When the read times out, the data received so far is returned
// with a nil error; it's empty if nothing arrived.
func (p *Port) ReadLine() ([]byte, error) {
	line, err := p.br.ReadBytes('\n')
	if err == ErrTimeout {
		return line, nil
	}
	return line, err
}

// Write implements io.Writer.
func (p *Port) Write(b []byte) (int, error) {
	return p.rwc.Write(b)
}

// Close implements io.Closer.
func (p *Port) Close() error {
	return p.rwc.Close()
}

type timeoutReader struct {
	r io.Reader
}

func (t timeoutReader) Read(b []byte) (int, error) {
	n, err := t.r.Read(b)
	if n > 0 {
		if err == io.EOF || isTimeout(err) {
			err = nil
		}
		return n, err
	}
	if err == nil || err == io.EOF || isTimeout(err) {
		return 0, ErrTimeout
	}
	return 0, err
}

func isTimeout(err error) bool {
	return err != nil && os.IsTimeout(err)
}
