package sh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPorts(t *testing.T) {
	assert.Equal(t, "/dev/ttyACM0\n/dev/ttyUSB0\n", FormatPorts([]string{"/dev/ttyACM0", "/dev/ttyUSB0"}))
	assert.Equal(t,
		"No serial devices found. Common ports:\n"+
			"  Linux: /dev/ttyUSB0, /dev/ttyACM0\n"+
			"  Windows: COM1, COM2, COM3, etc.\n"+
			"  macOS: /dev/cu.usbserial-*\n",
		FormatPorts(nil))
}
