package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RatingsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostel_ratings_submitted_total",
			Help: "Rating submissions by outcome",
		},
		[]string{"outcome"}, // "accepted", "invalid", "unknown_user", "unknown_hostel", "duplicate", "error"
	)

	RankingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hostel_ranking_duration_seconds",
			Help:    "Time spent computing a full hostel ranking",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	ApprovalTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostel_approval_transitions_total",
			Help: "Approval workflow transitions by entity kind and target status",
		},
		[]string{"kind", "status"},
	)

	IdentityLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostel_identity_lookups_total",
			Help: "Identity service lookups by result",
		},
		[]string{"result"}, // "found", "missing", "error"
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostel_http_requests_total",
			Help: "HTTP requests by method, route pattern and status code",
		},
		[]string{"method", "route", "status"},
	)
)

// RegisterPoolStats exposes pgx pool gauges. stat is polled on every scrape.
func RegisterPoolStats(reg prometheus.Registerer, stat func() *pgxpool.Stat) error {
	gauges := map[string]func(*pgxpool.Stat) float64{
		"hostel_db_pool_total_conns":    func(s *pgxpool.Stat) float64 { return float64(s.TotalConns()) },
		"hostel_db_pool_idle_conns":     func(s *pgxpool.Stat) float64 { return float64(s.IdleConns()) },
		"hostel_db_pool_acquired_conns": func(s *pgxpool.Stat) float64 { return float64(s.AcquiredConns()) },
	}
	for name, read := range gauges {
		read := read
		g := prometheus.NewGaugeFunc(prometheus.GaugeOpts{Name: name, Help: "pgx pool " + name}, func() float64 {
			s := stat()
			if s == nil {
				return 0
			}
			return read(s)
		})
		if err := reg.Register(g); err != nil {
			return err
		}
	}
	return nil
}
