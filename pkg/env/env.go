package env

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	fx "github.com/robotalks/imurecv/pkg/framework"
	"github.com/robotalks/imurecv/pkg/live"
	"github.com/robotalks/imurecv/pkg/metrics"
	"github.com/robotalks/imurecv/pkg/mqtt"
	"github.com/robotalks/imurecv/pkg/receiver"
	"github.com/robotalks/imurecv/pkg/serialport"
)

// Env is the receiver with its optional sinks and servers.
type Env struct {
	Config   *Config
	Session  string
	Source   string
	Receiver *receiver.Receiver
	Registry *prometheus.Registry

	Hub       *live.Hub
	Server    *live.Server
	Publisher *mqtt.Publisher

	// Runnables run alongside the receiver and stop with it.
	Runnables []fx.Runnable
}

// NewEnv creates Env from config. Console output goes to stdout.
func (c *Config) NewEnv(stdout io.Writer) (*Env, error) {
	env := &Env{
		Config:   c,
		Session:  uuid.NewString(),
		Source:   c.Source,
		Receiver: receiver.New(c.Receiver, receiver.NewConsole(stdout)),
		Registry: prometheus.NewRegistry(),
	}
	if env.Source == "" {
		env.Source = MachineID()
	}

	env.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := metrics.Register(env.Registry, env.Receiver.Stats); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	if c.MQTTURL != "" {
		q, err := mqtt.NewQueueFromURL(c.MQTTURL)
		if err != nil {
			return nil, fmt.Errorf("invalid MQTT URL: %w", err)
		}
		env.Publisher = mqtt.NewPublisher(q, env.Source, env.Session)
		env.Receiver.AddSink(env.Publisher)
		env.Runnables = append(env.Runnables, fx.NamedRun("mqtt", env.Publisher))
	}

	if c.HTTPAddr != "" {
		env.Hub = live.NewHub()
		env.Server = &live.Server{
			Addr:      c.HTTPAddr,
			Hub:       env.Hub,
			Gatherer:  env.Registry,
			Stats:     env.Receiver.Stats,
			AccessLog: accessLog(),
		}
		env.Receiver.AddSink(env.Hub)
		env.Runnables = append(env.Runnables, fx.NamedRun("http", env.Server))
	}

	glog.Infof("session %s source %s", env.Session, env.Source)
	return env, nil
}

func accessLog() io.Writer {
	if glog.V(1) {
		return os.Stderr
	}
	return nil
}

// Run runs the receiver and the other runnables until the receiver
// stops, and returns the receiver's result.
func (e *Env) Run(runner *fx.Runner) error {
	var result error
	runner.Go(fx.NamedRun("receiver", fx.RunFunc(func(ctx context.Context) error {
		result = e.Receiver.Run(ctx)
		runner.Stop()
		return nil
	})))
	runner.Go(e.Runnables...)
	if err := runner.Wait(); err != nil {
		if err == fx.ErrForcedExit {
			return receiver.ErrInterrupted
		}
		glog.Errorf("runner: %v", err)
	}
	return result
}

// Report prints the outcome of Run and returns the exit code.
func (e *Env) Report(err error) int {
	return e.Receiver.Console.Report(err, e.Receiver.LogPath(), serialport.Hints())
}
