package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	"github.com/robotalks/imurecv/pkg/env"
	fx "github.com/robotalks/imurecv/pkg/framework"
)

func init() {
	env.SetupFlags()
}

func main() {
	flag.Parse()

	conf, err := env.NewConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	e, err := conf.NewEnv(os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	code := e.Report(e.Run(fx.NewRunner().HandleSignals()))
	glog.Flush()
	os.Exit(code)
}
