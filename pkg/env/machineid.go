package env

import (
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

const appID = "imurecv"

// MachineID retrieves a stable ID identifying the machine. The raw
// machine ID is hashed with the app ID and shortened.
func MachineID() string {
	id, err := machineid.ProtectedID(appID)
	if err != nil {
		glog.Warningf("machine id: %v", err)
		host, _ := os.Hostname()
		if host == "" {
			host = "unknown"
		}
		return host
	}
	if len(id) > 12 {
		id = id[:12]
	}
	return id
}
