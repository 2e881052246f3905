package metrics

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "tabletext_saves_total", metricName("saves_total"))
	assert.Equal(t, `tabletext_errors_total{kind="mapping"}`, metricName("errors_total", "kind", "mapping"))
	assert.Equal(t, `tabletext_ops_total{a="1",b="2"}`, metricName("ops_total", "b", "2", "a", "1"))
	assert.Equal(t, "tabletext_odd", metricName("odd", "dangling"))
}

func TestCounters(t *testing.T) {
	t.Parallel()

	before := CounterValue("test_counter_total", "case", "counters")
	Counter("test_counter_total", "case", "counters").Inc()
	Counter("test_counter_total", "case", "counters").Add(2)
	assert.Equal(t, before+3, CounterValue("test_counter_total", "case", "counters"))

	buf := &bytes.Buffer{}
	WritePrometheus(buf, false)
	assert.Contains(t, buf.String(), `tabletext_test_counter_total{case="counters"}`)
	assert.Contains(t, buf.String(), `tabletext_logs_total{level="error"}`)
}
