package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github/chapool/stormint/internal/wallet/account"
	"github/chapool/stormint/internal/wallet/mint"
)

const namespace = "stormint"

// Service records batch progress. It implements both account.Observer and
// mint.Observer and may be shared by concurrent runs.
type Service struct {
	Registry *prometheus.Registry

	identitiesDerived  prometheus.Counter
	submissions        *prometheus.CounterVec
	submissionDuration *prometheus.HistogramVec
}

var (
	_ account.Observer = (*Service)(nil)
	_ mint.Observer    = (*Service)(nil)
)

// New creates the collectors on a private registry.
func New() (*Service, error) {
	registry := prometheus.NewRegistry()

	s := &Service{
		Registry: registry,
		identitiesDerived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "identities_derived_total",
			Help:      "Number of signing identities derived from the seed.",
		}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Number of finished contract call submissions by result and error kind.",
		}, []string{"result", "kind"}),
		submissionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "submission_duration_seconds",
			Help:      "Time from encoding a call until its receipt or failure.",
			Buckets:   []float64{0.5, 1, 2, 4, 8, 15, 30, 60, 120, 300},
		}, []string{"result"}),
	}

	for _, c := range []prometheus.Collector{
		s.identitiesDerived,
		s.submissions,
		s.submissionDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Service) IdentityDerived(_ *account.Identity) {
	s.identitiesDerived.Inc()
}

func (s *Service) OutcomeRecorded(outcome mint.Outcome) {
	result, kind := "success", ""
	if !outcome.OK() {
		result, kind = "failure", mint.KindOf(outcome.Err)
	}

	s.submissions.WithLabelValues(result, kind).Inc()
	s.submissionDuration.WithLabelValues(result).Observe(outcome.Elapsed.Seconds())
}
