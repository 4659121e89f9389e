package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	// Register should be safe to call multiple times
	assert.NotPanics(t, func() {
		Register()
		Register()
	})

	t.Run("HTTP", func(t *testing.T) {
		before := testutil.ToFloat64(httpRequests.WithLabelValues("/items/{id}", "GET", "200"))
		ObserveHTTP("/items/{id}", "GET", 200, 15*time.Millisecond)
		ObserveHTTP("/items/{id}", "GET", 200, 5*time.Millisecond)

		assert.Equal(t, before+2, testutil.ToFloat64(httpRequests.WithLabelValues("/items/{id}", "GET", "200")))
		assert.GreaterOrEqual(t, testutil.CollectAndCount(httpDuration), 1)
	})

	t.Run("Events", func(t *testing.T) {
		before := testutil.ToFloat64(domainEvents.WithLabelValues("booking_created"))
		IncEvent("booking_created")
		assert.Equal(t, before+1, testutil.ToFloat64(domainEvents.WithLabelValues("booking_created")))
	})

	t.Run("Throttled", func(t *testing.T) {
		before := testutil.ToFloat64(throttled.WithLabelValues("write_quota"))
		IncThrottled("write_quota")
		assert.Equal(t, before+1, testutil.ToFloat64(throttled.WithLabelValues("write_quota")))
	})
}
