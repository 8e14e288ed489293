package frames

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/imurecv/pkg/cli/sh"
	"github.com/robotalks/imurecv/pkg/telemetry"
)

// Capture is the decoded content of a binary gesture frame capture.
type Capture struct {
	Path      string             `json:"path"`
	Frames    []*telemetry.Frame `json:"frames"`
	Discarded int                `json:"discarded"`
	Corrupted int                `json:"corrupted"`
	// Truncated is set when the capture ends inside a frame.
	Truncated bool `json:"truncated"`
}

// ReadCapture decodes all frames in a file.
func ReadCapture(path string) (*Capture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.Path = path
	return c, nil
}

// Decode reads frames until EOF.
func Decode(r io.Reader) (*Capture, error) {
	fr := telemetry.NewFrameReader(r)
	c := &Capture{}
	for {
		f, err := fr.Next()
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			c.Truncated = true
			break
		}
		if err != nil {
			return nil, err
		}
		c.Frames = append(c.Frames, f)
	}
	c.Discarded, c.Corrupted = fr.Discarded, fr.Corrupted
	return c, nil
}

// FormatFrame renders a frame as timestamp and roll/pitch pairs.
func FormatFrame(f *telemetry.Frame) string {
	fields := f.Fields()
	return "[" + fields[0] + "ms] " + strings.Join(fields[1:], ",")
}

// FormatCapture renders a decoded capture for display.
func FormatCapture(c *Capture) string {
	var w bytes.Buffer
	fmt.Fprintf(&w, "%s: %d frames, %d corrupted, %d bytes discarded", c.Path, len(c.Frames), c.Corrupted, c.Discarded)
	if c.Truncated {
		w.WriteString(", truncated")
	}
	w.WriteString("\n")
	for _, f := range c.Frames {
		w.WriteString(FormatFrame(f) + "\n")
	}
	return w.String()
}

// FramesCmd decodes binary gesture frame captures.
var FramesCmd = ishell.Cmd{
	Name:    "frames",
	Aliases: []string{"f"},
	Help:    "FILE...",
	Func: func(c *ishell.Context) {
		if len(c.Args) < 1 {
			sh.Errorf(c, "FILE required")
			return
		}
		for _, fn := range c.Args {
			capture, err := ReadCapture(fn)
			if err != nil {
				c.Err(err)
				return
			}
			sh.Output(c, capture, FormatCapture(capture))
		}
	},
}

func init() {
	sh.AddCmds(&FramesCmd)
}
