// Package metrics exports receiver counters to prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robotalks/imurecv/pkg/receiver"
)

// Namespace prefixes all metric names.
const Namespace = "imurecv"

// StatsFunc returns the current receiver counters.
type StatsFunc func() receiver.Stats

// Collectors builds one counter per receiver statistic. The values are
// read from stats at scrape time.
func Collectors(stats StatsFunc) []prometheus.Collector {
	counter := func(name, help string, value func(receiver.Stats) uint64) prometheus.Collector {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      name,
			Help:      help,
		}, func() float64 {
			return float64(value(stats()))
		})
	}
	return []prometheus.Collector{
		counter("lines_total", "Non-empty lines received.",
			func(s receiver.Stats) uint64 { return s.Lines }),
		counter("rows_total", "CSV rows written.",
			func(s receiver.Stats) uint64 { return s.Rows }),
		counter("skipped_total", "Lines not persisted.",
			func(s receiver.Stats) uint64 { return s.Skipped }),
		counter("empty_reads_total", "Reads that timed out without data.",
			func(s receiver.Stats) uint64 { return s.Empty }),
		counter("read_errors_total", "Failed serial reads.",
			func(s receiver.Stats) uint64 { return s.ReadErrors }),
	}
}

// Register registers the receiver counters with reg.
func Register(reg prometheus.Registerer, stats StatsFunc) error {
	for _, c := range Collectors(stats) {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Handler serves the metrics gathered from g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
