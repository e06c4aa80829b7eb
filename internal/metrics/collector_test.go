package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCollector_Lifecycle tests that a full call lifecycle is reflected in the metrics.
func TestCollector_Lifecycle(t *testing.T) {
	t.Parallel()

	c := NewCollector()
	require.NotNil(t, c.Registry())

	c.RecordQueued("GET")
	c.RecordRequestStart("GET")

	assert.InDelta(t, 1.0, testutil.ToFloat64(c.inFlight.WithLabelValues("GET")), 0)

	c.RecordRequestEnd("GET", 200, 15*time.Millisecond)

	assert.InDelta(t, 1.0, testutil.ToFloat64(c.callsQueued.WithLabelValues("GET")), 0)
	assert.InDelta(t, 0.0, testutil.ToFloat64(c.inFlight.WithLabelValues("GET")), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(c.requestsTotal.WithLabelValues("GET", "200")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(c.requestDuration))
}

// TestCollector_ErrorsAndCancellations tests the error and cancellation counters.
func TestCollector_ErrorsAndCancellations(t *testing.T) {
	t.Parallel()

	c := NewCollector()

	c.RecordError("canceled", "POST")
	c.RecordError("canceled", "POST")
	c.RecordCanceled("tag", 3)
	c.RecordCanceled("all", 0)

	assert.InDelta(t, 2.0, testutil.ToFloat64(c.errorsTotal.WithLabelValues("canceled", "POST")), 0)
	assert.InDelta(t, 3.0, testutil.ToFloat64(c.canceledTotal.WithLabelValues("tag")), 0)

	// Zero counts do not create a series.
	assert.Equal(t, 1, testutil.CollectAndCount(c.canceledTotal))
}

// TestCollector_Nil tests that a nil collector is safe to use.
func TestCollector_Nil(t *testing.T) {
	t.Parallel()

	var c *Collector

	assert.NotPanics(t, func() {
		c.RecordQueued("GET")
		c.RecordRequestStart("GET")
		c.RecordRequestEnd("GET", 200, time.Second)
		c.RecordError("transport", "GET")
		c.RecordCanceled("all", 1)
	})
	assert.Nil(t, c.Registry())
}
