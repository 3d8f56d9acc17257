package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	r.Reported("High")
	r.Reported("High")
	r.Reported("Low")
	r.Discarded()
	r.Observe(2, 5)

	assert.Equal(t, float64(2), testutil.ToFloat64(r.reported.WithLabelValues("High")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.reported.WithLabelValues("Low")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.discarded))
	assert.Equal(t, float64(2), testutil.ToFloat64(r.visible))
	assert.Equal(t, float64(5), testutil.ToFloat64(r.stored))
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.Reported("Low")
		r.Discarded()
		r.Observe(1, 1)
	})
}

func TestHandler(t *testing.T) {
	r := NewRecorder()
	r.Reported("Medium")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `aidash_incidents_reported_total{severity="Medium"} 1`))
}
