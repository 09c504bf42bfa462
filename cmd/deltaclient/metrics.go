package main

import (
	"errors"
	"net/http"

	"github.com/ledgerwatch/log/v3"
	"github.com/mit-pdos/deltaproof/verifier"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	reg       *prometheus.Registry
	updates   *prometheus.CounterVec
	proofs    *prometheus.CounterVec
	malformed prometheus.Counter
	height    prometheus.Gauge
	unlinked  prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		reg: prometheus.NewRegistry(),
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deltaclient_updates_total",
			Help: "Updates verified, by result.",
		}, []string{"result"}),
		proofs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deltaclient_proofs_total",
			Help: "Account delta proofs checked, by failure kind.",
		}, []string{"kind"}),
		malformed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deltaclient_malformed_messages_total",
			Help: "Messages that didn't decode as an update.",
		}),
		height: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "deltaclient_verified_height",
			Help: "Number of slots recorded as verified.",
		}),
		unlinked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deltaclient_unlinked_slots_total",
			Help: "Verified slots whose parent bank hash isn't the previous verified slot's.",
		}),
	}
	m.reg.MustRegister(m.updates, m.proofs, m.malformed, m.height, m.unlinked)
	return m
}

func (m *metrics) observe(r *verifier.Result) {
	if r.Ok() {
		m.updates.WithLabelValues("ok").Inc()
	} else {
		m.updates.WithLabelValues("failed").Inc()
	}
	for _, o := range r.Outcomes {
		m.proofs.WithLabelValues(verifier.ErrKind(o.Err).String()).Inc()
	}
}

// serve blocks until the server fails.
func (m *metrics) serve(addr string, logger log.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{}))
	logger.Info("Serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Metrics server stopped", "err", err)
	}
}
