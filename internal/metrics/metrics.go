// Package metrics exposes Prometheus counters for registry activity.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zjrosen/roster/internal/log"
	"github.com/zjrosen/roster/internal/registry"
)

// Submission outcomes used as the "outcome" label.
const (
	OutcomeAccepted  = "accepted"
	OutcomeMissing   = "missing_required_field"
	OutcomeFormat    = "invalid_email_format"
	OutcomeDuplicate = "duplicate_email"
	OutcomeOther     = "other"
)

// Metrics tracks submissions, removals and the collection size. It
// satisfies registry.Recorder.
type Metrics struct {
	Registry    *prometheus.Registry
	Submissions *prometheus.CounterVec
	Removals    prometheus.Counter
	Records     prometheus.Gauge
}

// New registers every collector on a private registry so multiple
// instances can coexist.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_submissions_total",
			Help: "Registration form submissions by outcome",
		}, []string{"outcome"}),
		Removals: factory.NewCounter(prometheus.CounterOpts{
			Name: "roster_removals_total",
			Help: "Records removed after confirmation",
		}),
		Records: factory.NewGauge(prometheus.GaugeOpts{
			Name: "roster_records",
			Help: "Records currently registered",
		}),
	}
}

// ObserveSubmit counts one submission under its outcome.
func (m *Metrics) ObserveSubmit(err error) {
	m.Submissions.WithLabelValues(Outcome(err)).Inc()
}

// ObserveRemove adds removed records to the removal counter.
func (m *Metrics) ObserveRemove(removed int) {
	m.Removals.Add(float64(removed))
}

// SetRecords sets the current collection size.
func (m *Metrics) SetRecords(n int) {
	m.Records.Set(float64(n))
}

// Outcome maps a Submit error to its label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeAccepted
	case errors.Is(err, registry.ErrMissingRequiredField):
		return OutcomeMissing
	case errors.Is(err, registry.ErrInvalidEmailFormat):
		return OutcomeFormat
	case errors.Is(err, registry.ErrDuplicateEmail):
		return OutcomeDuplicate
	default:
		return OutcomeOther
	}
}

// Handler serves the private registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on ln until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info(log.CatMetrics, "Serving metrics", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.ErrorErr(log.CatMetrics, "Metrics server failed", err)
		return err
	}
	return nil
}
