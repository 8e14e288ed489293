// Package env sets up the receiver and its sinks from flags, environment
// variables and an optional YAML file.
package env

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/robotalks/imurecv/pkg/receiver"
)

// Config is the complete receiver configuration.
type Config struct {
	Receiver receiver.Config `yaml:"receiver"`

	// MQTTURL enables publishing samples when set.
	// e.g. mqtt://host:port/topic-prefix
	MQTTURL string `yaml:"mqtt_url"`
	// HTTPAddr enables the live feed, metrics and health endpoints when set.
	HTTPAddr string `yaml:"http_addr"`
	// Source identifies this receiver on the bus. Defaults to an ID
	// derived from the machine.
	Source string `yaml:"source"`

	// ConfigFile is the YAML file loaded by Load.
	ConfigFile string `yaml:"-"`
}

var defaultConfig = Config{
	Receiver: receiver.DefaultConfig(),
}

func init() {
	applyEnv(&defaultConfig, os.Getenv)
}

func applyEnv(c *Config, getenv func(string) string) {
	if val := getenv("IMU_DEVICE"); val != "" {
		c.Receiver.Device = val
	}
	if val := getenv("IMU_BAUD"); val != "" {
		if baud, err := strconv.Atoi(val); err == nil {
			c.Receiver.Baud = baud
		}
	}
	if val := getenv("IMU_OUTPUT_DIR"); val != "" {
		c.Receiver.OutputDir = val
	}
	if val := getenv("IMU_MQTT_URL"); val != "" {
		c.MQTTURL = val
	}
	if val := getenv("IMU_HTTP_ADDR"); val != "" {
		c.HTTPAddr = val
	}
	if val := getenv("IMU_SOURCE"); val != "" {
		c.Source = val
	}
	if val := getenv("IMU_CONFIG"); val != "" {
		c.ConfigFile = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	SetupFlagSet(flag.CommandLine, &defaultConfig)
}

// SetupFlagSet binds the fields of c to flags in fs.
func SetupFlagSet(fs *flag.FlagSet, c *Config) {
	fs.StringVar(&c.Receiver.Device, "device", c.Receiver.Device, "Serial device.")
	fs.IntVar(&c.Receiver.Baud, "baud", c.Receiver.Baud, "Baud rate.")
	fs.DurationVar(&c.Receiver.ReadTimeout, "read-timeout", c.Receiver.ReadTimeout, "Serial read timeout.")
	fs.DurationVar(&c.Receiver.SettleDelay, "settle", c.Receiver.SettleDelay, "Delay after opening the device before reading.")
	fs.StringVar(&c.Receiver.OutputDir, "out", c.Receiver.OutputDir, "Directory of CSV logs.")
	fs.IntVar(&c.Receiver.MaxReadErrors, "max-read-errors", c.Receiver.MaxReadErrors, "Consecutive read errors before giving up, 0 for never.")
	fs.StringVar(&c.MQTTURL, "mqtt", c.MQTTURL, "MQTT broker URL to publish samples, empty to disable.")
	fs.StringVar(&c.HTTPAddr, "http", c.HTTPAddr, "HTTP listen address for live feed and metrics, empty to disable.")
	fs.StringVar(&c.Source, "source", c.Source, "Source ID of published samples.")
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "YAML config file.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config from defaults, environment, the config
// file and command line flags, in increasing precedence. flag.Parse must
// have been called.
func NewConfig() (*Config, error) {
	if err := Load(flag.CommandLine, &defaultConfig); err != nil {
		return nil, err
	}
	conf := defaultConfig
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Load reads c.ConfigFile into c and reapplies the flags explicitly set
// in fs, so they take precedence over the file.
func Load(fs *flag.FlagSet, c *Config) error {
	if c.ConfigFile == "" {
		return nil
	}
	set := make(map[string]string)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = f.Value.String()
	})
	data, err := os.ReadFile(c.ConfigFile)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", c.ConfigFile, err)
	}
	for name, val := range set {
		if err := fs.Set(name, val); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the settings.
func (c *Config) Validate() error {
	switch {
	case c.Receiver.Device == "":
		return fmt.Errorf("device must be specified")
	case c.Receiver.Baud <= 0:
		return fmt.Errorf("invalid baud rate %d", c.Receiver.Baud)
	case c.Receiver.ReadTimeout <= 0:
		return fmt.Errorf("invalid read timeout %v", c.Receiver.ReadTimeout)
	case c.Receiver.SettleDelay < 0:
		return fmt.Errorf("invalid settle delay %v", c.Receiver.SettleDelay)
	}
	return nil
}
