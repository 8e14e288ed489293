package mqtt

import (
	"strings"

	"github.com/golang/glog"

	"github.com/robotalks/imurecv/pkg/telemetry"
)

// SampleHandler receives decoded samples.
type SampleHandler func(topic string, sample *telemetry.Sample)

// SubSamples subscribes telemetry of all sources and decodes it.
// Undecodable payloads are logged and dropped.
func (q *Queue) SubSamples(handler SampleHandler) *Subscription {
	return q.Sub(TelemetryPattern, func(topic string, payload []byte) {
		sample, err := telemetry.DecodeSample(payload)
		if err != nil {
			glog.Warningf("%s: bad sample: %v", topic, err)
			return
		}
		if sample.Source == "" {
			sample.Source = strings.TrimSuffix(topic, "/telemetry")
		}
		handler(topic, sample)
	})
}
