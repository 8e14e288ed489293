package receiver

import (
	"time"

	"github.com/robotalks/imurecv/pkg/serialport"
)

// Defaults
const (
	DefaultDevice        = "/dev/ttyUSB0"
	DefaultBaud          = 9600
	DefaultReadTimeout   = time.Second
	DefaultMaxReadErrors = 5

	// DefaultSettleDelay is the pause after opening the port. Opening the
	// port resets most USB-serial boards and the firmware needs time to
	// boot before it streams. It's a heuristic, not a protocol guarantee.
	DefaultSettleDelay = 2 * time.Second
)

// Config defines the receiver settings.
type Config struct {
	Device      string        `yaml:"device"`
	Baud        int           `yaml:"baud"`
	ReadTimeout time.Duration `yaml:"read_timeout"`
	SettleDelay time.Duration `yaml:"settle_delay"`
	OutputDir   string        `yaml:"output_dir"`

	// MaxReadErrors is the number of consecutive read errors after which
	// the device is considered lost. 0 means never give up.
	MaxReadErrors int `yaml:"max_read_errors"`
}

// DefaultConfig returns the default settings.
func DefaultConfig() Config {
	return Config{
		Device:        DefaultDevice,
		Baud:          DefaultBaud,
		ReadTimeout:   DefaultReadTimeout,
		SettleDelay:   DefaultSettleDelay,
		OutputDir:     ".",
		MaxReadErrors: DefaultMaxReadErrors,
	}
}

// SerialConfig returns the settings used to open the device.
func (c *Config) SerialConfig() *serialport.Config {
	return &serialport.Config{
		Device:      c.Device,
		Baud:        c.Baud,
		ReadTimeout: c.ReadTimeout,
	}
}
