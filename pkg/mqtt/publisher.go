package mqtt

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/imurecv/pkg/framework"
	"github.com/robotalks/imurecv/pkg/telemetry"
)

// TelemetryTopic is the topic samples of source are published to.
func TelemetryTopic(source string) string {
	return source + "/telemetry"
}

// TelemetryPattern subscribes samples from all sources.
const TelemetryPattern = "+/telemetry"

// Publisher publishes every persisted record as a telemetry.Sample.
type Publisher struct {
	Queue   *Queue
	Source  string
	Session string
	QoS     byte

	seq uint64
}

// NewPublisher creates a Publisher.
func NewPublisher(q *Queue, source, session string) *Publisher {
	return &Publisher{Queue: q, Source: source, Session: session}
}

// Published returns the number of samples handed to the client.
func (p *Publisher) Published() uint64 {
	return atomic.LoadUint64(&p.seq)
}

// HandleRecord implements receiver.Sink. Samples are dropped while the
// broker is not connected.
func (p *Publisher) HandleRecord(ctx context.Context, rec *telemetry.Record) error {
	if !p.Queue.Client.IsConnected() {
		glog.V(2).Info("mqtt not connected, sample dropped")
		return nil
	}
	payload, err := rec.Sample(p.Session, p.Source, atomic.AddUint64(&p.seq, 1)).Encode()
	if err != nil {
		return err
	}
	token := p.Queue.PubWith(TelemetryTopic(p.Source), payload, p.QoS, false)
	if token.WaitTimeout(0) {
		return token.Error()
	}
	return nil
}

// Run implements framework.Runnable. It keeps the broker connection
// until ctx is done. A failed connection is logged, not returned, so the
// receiver keeps logging to CSV without the broker.
func (p *Publisher) Run(ctx context.Context) error {
	return fx.RunWithContextCloser(ctx, p.Queue, func() error {
		token := p.Queue.Connect()
		for !token.WaitTimeout(100 * time.Millisecond) {
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
		if err := token.Error(); err != nil {
			glog.Warningf("mqtt: %v, samples will not be published", err)
		}
		<-ctx.Done()
		return ctx.Err()
	})
}
