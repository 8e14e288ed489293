package sh

import (
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/imurecv/pkg/serialport"
)

// FormatPorts renders candidate devices, or the per-OS hints when none
// is found.
func FormatPorts(ports []string) string {
	if len(ports) == 0 {
		return "No serial devices found. Common ports:\n  " +
			strings.Join(serialport.Hints(), "\n  ") + "\n"
	}
	return strings.Join(ports, "\n") + "\n"
}

// PortsCmd lists serial devices likely connected to the glove.
var PortsCmd = ishell.Cmd{
	Name:    "ports",
	Aliases: []string{"p"},
	Help:    "list serial devices",
	Func: func(c *ishell.Context) {
		ports := serialport.Candidates()
		if ports == nil {
			ports = []string{}
		}
		Output(c, ports, FormatPorts(ports))
	},
}
