package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry("barber-booking", reg)

	m.ObserveHTTP("GET", "/api/v1/services", "200", 10*time.Millisecond)
	m.ObserveHTTP("GET", "/api/v1/services", "200", 20*time.Millisecond)
	m.ObserveSubmission("succeeded")
	m.ObserveSlotEvaluation(true)
	m.ObserveSlotEvaluation(false)
	m.ObserveSlotEvaluation(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/services", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues("succeeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlotEvaluationsTotal.WithLabelValues("true")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SlotEvaluationsTotal.WithLabelValues("false")))
}

func TestMetrics_DoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewWithRegistry("barber-booking", reg)

	assert.Panics(t, func() {
		NewWithRegistry("barber-booking", reg)
	})
}
