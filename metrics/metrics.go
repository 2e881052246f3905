package metrics

import (
	"fmt"
	"io"
	"sort"
	"strings"

	vm "github.com/VictoriaMetrics/metrics"

	"github.com/safing/tabletext/log"
)

const prefix = "tabletext_"

var set = vm.NewSet()

func init() {
	registerLogMetrics()
}

func registerLogMetrics() {
	set.NewGauge(prefix+`logs_total{level="warning"}`, func() float64 {
		return float64(log.TotalWarningLogLines())
	})
	set.NewGauge(prefix+`logs_total{level="error"}`, func() float64 {
		return float64(log.TotalErrorLogLines())
	})
	set.NewGauge(prefix+`logs_total{level="critical"}`, func() float64 {
		return float64(log.TotalCriticalLogLines())
	})
}

// Counter returns the counter with the given name and labels, creating it if needed.
// The name is prefixed with the module prefix.
func Counter(name string, labels ...string) *vm.Counter {
	return set.GetOrCreateCounter(metricName(name, labels...))
}

// CounterValue returns the current value of a counter, or zero if it does not exist yet.
func CounterValue(name string, labels ...string) uint64 {
	return Counter(name, labels...).Get()
}

// WritePrometheus writes all metrics of this module and the process metrics in the Prometheus text format.
func WritePrometheus(w io.Writer, exposeProcessMetrics bool) {
	set.WritePrometheus(w)
	if exposeProcessMetrics {
		vm.WriteProcessMetrics(w)
	}
}

// metricName builds a metric name from a base name and label key/value pairs.
// Labels are sorted by key. An odd trailing label key is ignored.
func metricName(name string, labels ...string) string {
	if len(labels) < 2 {
		return prefix + name
	}

	pairs := make([]string, 0, len(labels)/2)
	for i := 0; i+1 < len(labels); i += 2 {
		pairs = append(pairs, fmt.Sprintf("%s=%q", labels[i], labels[i+1]))
	}
	sort.Strings(pairs)
	return prefix + name + "{" + strings.Join(pairs, ",") + "}"
}
