package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "aidash"

// Recorder tracks dashboard activity. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	reported  *prometheus.CounterVec
	discarded prometheus.Counter
	visible   prometheus.Gauge
	stored    prometheus.Gauge
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		reported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "incidents_reported_total",
			Help:      "Incidents reported through the form, by severity.",
		}, []string{"severity"}),
		discarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_discarded_total",
			Help:      "Form submissions discarded for a missing title or description.",
		}),
		visible: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "incidents_visible",
			Help:      "Incidents shown after filtering.",
		}),
		stored: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "incidents_stored",
			Help:      "Incidents held in memory.",
		}),
	}

	r.registry.MustRegister(r.reported, r.discarded, r.visible, r.stored)
	return r
}

func (r *Recorder) Reported(severity string) {
	if r == nil {
		return
	}
	r.reported.WithLabelValues(severity).Inc()
}

func (r *Recorder) Discarded() {
	if r == nil {
		return
	}
	r.discarded.Inc()
}

// Observe records the current visible and stored incident counts
func (r *Recorder) Observe(visible, stored int) {
	if r == nil {
		return
	}
	r.visible.Set(float64(visible))
	r.stored.Set(float64(stored))
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("metrics.Serve", "shutdown", err)
		}
	}()

	log.Info("metrics.Serve", "address", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
