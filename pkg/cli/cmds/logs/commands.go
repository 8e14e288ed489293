package logs

import (
	"bytes"
	"fmt"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/imurecv/pkg/cli/sh"
	"github.com/robotalks/imurecv/pkg/csvlog"
)

// FormatSummary renders a log summary for display.
func FormatSummary(s *csvlog.Summary) string {
	var w bytes.Buffer
	fmt.Fprintf(&w, "%s: %d rows", s.Path, s.Rows)
	if s.Rows > 0 {
		fmt.Fprintf(&w, " from %s to %s", s.First, s.Last)
	}
	w.WriteString("\n")
	for _, label := range s.MotionLabels() {
		fmt.Fprintf(&w, "  %-8s %d\n", label, s.Motion[label])
	}
	return w.String()
}

// SummaryCmd summarizes CSV logs.
var SummaryCmd = ishell.Cmd{
	Name:    "summary",
	Aliases: []string{"s"},
	Help:    "FILE...",
	Func: func(c *ishell.Context) {
		if len(c.Args) < 1 {
			sh.Errorf(c, "FILE required")
			return
		}
		for _, fn := range c.Args {
			s, err := csvlog.Summarize(fn)
			if err != nil {
				c.Err(err)
				return
			}
			sh.Output(c, s, FormatSummary(s))
		}
	},
}

func init() {
	sh.AddCmds(&SummaryCmd)
}
