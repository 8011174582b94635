// Package ranking orders approved hostels by a Bayesian-smoothed average that
// pulls low-volume hostels toward the population mean.
package ranking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Clark-Hu/hostel-service/internal/domain"
	"github.com/Clark-Hu/hostel-service/internal/metrics"
)

const (
	// DefaultConfidence is the number of phantom ratings at the global mean
	// every hostel starts with.
	DefaultConfidence = 5.0
	// DefaultGlobalMean is the prior used when no ratings exist anywhere.
	DefaultGlobalMean = 3.0
	// DefaultWorkers bounds the per-hostel fan-out in Rank.
	DefaultWorkers = 8
)

// RatingStats yields overall-rating means and counts, per hostel and across
// every hostel. *repository.RatingsRepository satisfies it.
type RatingStats interface {
	Aggregate(ctx context.Context, hostelID int64) (domain.RatingAggregate, error)
	GlobalAggregate(ctx context.Context) (domain.RatingAggregate, error)
}

// HostelLister lists hostels in a given approval state.
type HostelLister interface {
	ListByStatus(ctx context.Context, status domain.ApprovalStatus) ([]domain.Hostel, error)
}

// Options tunes the engine. Zero values fall back to the defaults.
type Options struct {
	Confidence float64
	Workers    int
	Logger     *zap.Logger
}

// Engine computes smoothed scores and rankings. It holds no state between calls.
type Engine struct {
	stats      RatingStats
	hostels    HostelLister
	confidence float64
	workers    int
	logger     *zap.Logger
}

// NewEngine wires a ranking engine.
func NewEngine(stats RatingStats, hostels HostelLister, opts Options) *Engine {
	if opts.Confidence <= 0 {
		opts.Confidence = DefaultConfidence
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Engine{
		stats:      stats,
		hostels:    hostels,
		confidence: opts.Confidence,
		workers:    opts.Workers,
		logger:     opts.Logger.Named("ranking"),
	}
}

// SmoothedScore returns (c*m + r*v) / (m + v). With v == 0 the result is c.
func SmoothedScore(c, m, r float64, v int64) float64 {
	n := float64(v)
	if m+n == 0 {
		return c
	}
	return (c*m + r*n) / (m + n)
}

// GlobalMean is the mean overall rating across all ratings, or
// DefaultGlobalMean when there are none.
func (e *Engine) GlobalMean(ctx context.Context) (float64, error) {
	agg, err := e.stats.GlobalAggregate(ctx)
	if err != nil {
		return 0, fmt.Errorf("global rating aggregate: %w", err)
	}
	if agg.Count == 0 {
		return DefaultGlobalMean, nil
	}
	return agg.Average, nil
}

// Score returns the smoothed score of one hostel. A hostel without ratings
// scores exactly the global mean.
func (e *Engine) Score(ctx context.Context, hostelID int64) (float64, error) {
	c, err := e.GlobalMean(ctx)
	if err != nil {
		return 0, err
	}
	agg, err := e.stats.Aggregate(ctx, hostelID)
	if err != nil {
		return 0, fmt.Errorf("aggregate hostel %d: %w", hostelID, err)
	}
	return SmoothedScore(c, e.confidence, agg.Average, agg.Count), nil
}

// Rank scores every APPROVED hostel and orders them by smoothed score
// descending, breaking ties by hostel id ascending.
func (e *Engine) Rank(ctx context.Context) ([]domain.RankedHostel, error) {
	start := time.Now()
	defer func() {
		metrics.RankingDuration.Observe(time.Since(start).Seconds())
	}()

	hostels, err := e.hostels.ListByStatus(ctx, domain.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("list approved hostels: %w", err)
	}
	c, err := e.GlobalMean(ctx)
	if err != nil {
		return nil, err
	}

	ranked := make([]domain.RankedHostel, len(hostels))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, h := range hostels {
		g.Go(func() error {
			agg, err := e.stats.Aggregate(gctx, h.ID)
			if err != nil {
				return fmt.Errorf("aggregate hostel %d: %w", h.ID, err)
			}
			ranked[i] = domain.RankedHostel{
				HostelID:        h.ID,
				Name:            h.Name,
				SimpleAverage:   agg.Average,
				BayesianAverage: SmoothedScore(c, e.confidence, agg.Average, agg.Count),
				RatingCount:     agg.Count,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].BayesianAverage != ranked[j].BayesianAverage {
			return ranked[i].BayesianAverage > ranked[j].BayesianAverage
		}
		return ranked[i].HostelID < ranked[j].HostelID
	})

	e.logger.Debug("ranked hostels",
		zap.Int("count", len(ranked)),
		zap.Float64("global_mean", c),
		zap.Duration("elapsed", time.Since(start)))
	return ranked, nil
}

// Top returns the first limit entries of Rank. limit <= 0 yields an empty
// slice; a limit beyond the population yields everything.
func (e *Engine) Top(ctx context.Context, limit int) ([]domain.RankedHostel, error) {
	if limit <= 0 {
		return []domain.RankedHostel{}, nil
	}
	ranked, err := e.Rank(ctx)
	if err != nil {
		return nil, err
	}
	if limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
