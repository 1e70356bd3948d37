package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"marketplace/internal/repository"
)

// UnitOfWork records commit outcomes of units of work. Pass Observe to
// repository.WithCommitObserver.
type UnitOfWork struct {
	commits  *prometheus.CounterVec
	affected prometheus.Counter
	duration prometheus.Histogram
}

func NewUnitOfWork(reg prometheus.Registerer) (*UnitOfWork, error) {
	m := &UnitOfWork{
		commits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uow_commits_total",
				Help: "Unit of work commits by outcome.",
			},
			[]string{"outcome"},
		),
		affected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "uow_affected_rows_total",
			Help: "Rows written by successful unit of work commits.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "uow_commit_duration_seconds",
			Help:    "Time spent flushing and committing a unit of work.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	for _, c := range []prometheus.Collector{m.commits, m.affected, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Observe matches repository.CommitObserver.
func (m *UnitOfWork) Observe(affected int64, elapsed time.Duration, err error) {
	m.duration.Observe(elapsed.Seconds())
	switch {
	case err == nil:
		m.commits.WithLabelValues("success").Inc()
		m.affected.Add(float64(affected))
	case errors.Is(err, repository.ErrConcurrencyConflict):
		m.commits.WithLabelValues("conflict").Inc()
	default:
		m.commits.WithLabelValues("error").Inc()
	}
}
