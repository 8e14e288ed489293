// Package all registers all shell commands.
package all

import (
	_ "github.com/robotalks/imurecv/pkg/cli/cmds/feed"
	_ "github.com/robotalks/imurecv/pkg/cli/cmds/frames"
	_ "github.com/robotalks/imurecv/pkg/cli/cmds/logs"
)
