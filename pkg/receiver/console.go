package receiver

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/robotalks/imurecv/pkg/telemetry"
)

// Console prints human readable progress, typically to stdout.
type Console struct {
	W io.Writer
}

// NewConsole creates a Console.
func NewConsole(w io.Writer) *Console {
	return &Console{W: w}
}

func (c *Console) printf(format string, args ...interface{}) {
	if c == nil || c.W == nil {
		return
	}
	fmt.Fprintf(c.W, format, args...)
}

// Connecting is printed before opening the device.
func (c *Console) Connecting(device string, baud int) {
	c.printf("Connecting to %s at %d baud...\n", device, baud)
}

// Connected is printed once the device is ready.
func (c *Console) Connected() {
	c.printf("Connected! Receiving live data...\n")
	c.printf("Format: %s\n", strings.Join(telemetry.Header[1:], ", "))
	c.printf("Press Ctrl+C to stop\n\n")
}

// Line echoes a received line.
func (c *Console) Line(timestamp, line string) {
	c.printf("[%s] %s\n", timestamp, line)
}

// Report prints the outcome of Run and returns the process exit code.
func (c *Console) Report(err error, logPath string, hints []string) int {
	var connErr *ConnectionError
	switch {
	case err == nil || errors.Is(err, ErrInterrupted):
		c.printf("\nStopping... Data saved to %s\n", logPath)
		return 0
	case errors.As(err, &connErr):
		c.printf("Serial error: %v\n", connErr)
		c.printf("Make sure your USB-to-serial adapter is connected and the port is correct.\n")
		c.printf("Common ports:\n")
		for _, hint := range hints {
			c.printf("  %s\n", hint)
		}
		return 1
	default:
		c.printf("Error: %v\n", err)
		return 1
	}
}
