package main

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/imurecv/pkg/framework"
	"github.com/robotalks/imurecv/pkg/serialport"
	"github.com/robotalks/imurecv/pkg/sim"
)

var (
	device   string
	baud     = 9600
	interval = sim.DefaultInterval
	count    int
	seed     = time.Now().UnixNano()
	garbage  float64
	frames   bool
)

func init() {
	flag.StringVar(&device, "device", device, "Serial device to write to, stdout if empty.")
	flag.IntVar(&baud, "baud", baud, "Baud rate.")
	flag.DurationVar(&interval, "interval", interval, "Interval between readings.")
	flag.IntVar(&count, "count", count, "Number of readings, 0 for unlimited.")
	flag.Int64Var(&seed, "seed", seed, "Random seed.")
	flag.Float64Var(&garbage, "garbage", garbage, "Probability of a truncated line or corrupted frame.")
	flag.BoolVar(&frames, "frames", frames, "Emit binary gesture frames instead of text lines.")
}

func main() {
	flag.Parse()

	var out io.Writer = os.Stdout
	if device != "" {
		port, err := serialport.Open(&serialport.Config{Device: device, Baud: baud, ReadTimeout: time.Second})
		if err != nil {
			glog.Exitf("open %s: %v", device, err)
		}
		defer port.Close()
		out = port
	}

	emitter := &sim.Emitter{
		W:         out,
		Generator: sim.NewGenerator(seed),
		Interval:  interval,
		Count:     count,
		Garbage:   garbage,
		Frames:    frames,
	}
	runner := fx.NewRunner().HandleSignals()
	if err := runner.Go(fx.NamedRun("emitter", emitter)).Wait(); err != nil {
		glog.Error(err)
	}
	glog.Flush()
}
