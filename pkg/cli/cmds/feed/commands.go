package feed

import (
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/imurecv/pkg/cli/sh"
	"github.com/robotalks/imurecv/pkg/live"
)

// DefaultTailCount is the number of records tail prints by default.
const DefaultTailCount = 10

// FormatMessage renders a live message like the receiver console does.
func FormatMessage(m *live.Message) string {
	return "[" + m.Timestamp + "] " + strings.Join(m.Fields, ",")
}

// TailCmd prints records from a running receiver.
var TailCmd = ishell.Cmd{
	Name:    "tail",
	Aliases: []string{"t"},
	Help:    "[N]",
	Func: func(c *ishell.Context) {
		count := DefaultTailCount
		if len(c.Args) > 0 {
			n, err := strconv.Atoi(c.Args[0])
			if err != nil || n <= 0 {
				sh.Errorf(c, "Invalid N: %q", c.Args[0])
				return
			}
			count = n
		}
		s := sh.ShellFrom(c)
		feed, err := live.Dial(s.LiveURL)
		if err != nil {
			c.Err(err)
			return
		}
		defer feed.Close()
		for i := 0; i < count; i++ {
			msg, err := feed.Next()
			if err != nil {
				c.Err(err)
				return
			}
			sh.Output(c, msg, FormatMessage(msg)+"\n")
		}
	},
}

func init() {
	sh.AddCmds(&TailCmd)
}
