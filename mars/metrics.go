package mars

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes running tournament counters over promhttp, for a
// long-lived host that wants to scrape progress of a multi-round run
// rather than wait for it to finish.
type Metrics struct {
	roundsTotal  prometheus.Counter
	drawsTotal   prometheus.Counter
	cyclesPerRound prometheus.Histogram
	winsByWarrior *prometheus.CounterVec
}

// NewMetrics registers a fresh set of collectors on reg. Callers that
// don't need metrics (the common case for a single one-off match)
// simply never construct one; nothing in mars requires it.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		roundsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mars_rounds_total",
			Help: "Total number of completed match rounds.",
		}),
		drawsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mars_draws_total",
			Help: "Total number of rounds that ended in a draw.",
		}),
		cyclesPerRound: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mars_round_cycles",
			Help:    "Number of cycles each completed round ran for.",
			Buckets: prometheus.ExponentialBuckets(10, 2, 14),
		}),
		winsByWarrior: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mars_wins_total",
			Help: "Total wins per warrior name.",
		}, []string{"warrior"}),
	}
	reg.MustRegister(m.roundsTotal, m.drawsTotal, m.cyclesPerRound, m.winsByWarrior)
	return m
}

func (m *Metrics) observeRound(res Result) {
	m.roundsTotal.Inc()
	m.cyclesPerRound.Observe(float64(res.Cycles))
	if res.Draw || res.Winner == nil {
		m.drawsTotal.Inc()
		return
	}
	m.winsByWarrior.WithLabelValues(res.Winner.Name).Inc()
}

// Handler returns the promhttp handler a host can mount to scrape
// these metrics, using the same registry they were registered on.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
