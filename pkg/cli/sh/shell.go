package sh

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/imurecv/pkg/live"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	// LiveURL is the websocket feed of a running receiver.
	LiveURL string

	Shell *ishell.Shell
}

const (
	shellKey = "$shell"
	prompt   = "imu > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool
	liveURL    = live.DefaultURL

	// commands
	commands = []*ishell.Cmd{
		&PortsCmd,
	}
)

func init() {
	if val := os.Getenv("IMU_LIVE_URL"); val != "" {
		liveURL = val
	}
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
	flag.StringVar(&liveURL, "live", liveURL, "Live feed URL of a running receiver.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New() *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,
		LiveURL:     liveURL,

		Shell: ishell.New(),
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(prompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Output prints v as JSON when requested, otherwise the text.
func Output(c *ishell.Context, v interface{}, text string) {
	if ShellFrom(c).OutputJSON {
		out, err := json.Marshal(v)
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(string(out))
		return
	}
	c.Print(text)
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New().Run(flag.Args()...)
}

// Errorf reports an error on the shell.
func Errorf(c *ishell.Context, format string, args ...interface{}) {
	c.Err(fmt.Errorf(format, args...))
}
