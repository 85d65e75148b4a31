package metrics

import "github.com/prometheus/client_golang/prometheus"

// Round outcomes.
const (
	RoundOffered   = "offered"
	RoundNoAgents  = "no_agents"
	RoundConflict  = "conflict"
	RoundFailed    = "failed"
	RoundExhausted = "exhausted"
)

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewStoreRetriesTotal returns a Prometheus counter for the number of retry attempts against Postgres, Redis and the orders gateway
func NewStoreRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "store_retries_total",
		Help: "Total number of retry attempts performed against backing stores",
	})
}

// NewNotificationsDroppedTotal returns a Prometheus counter for notifications dropped because the producer queue was full
func NewNotificationsDroppedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notifications_dropped_total",
		Help: "Total number of dispatch notifications dropped without being published",
	})
}

// Dispatch groups the counters updated by the assignment engine.
type Dispatch struct {
	Rounds        *prometheus.CounterVec
	Accepts       *prometheus.CounterVec
	OffersExpired prometheus.Counter
}

// NewDispatch creates unregistered dispatch counters.
func NewDispatch() *Dispatch {
	return &Dispatch{
		Rounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_rounds_total",
			Help: "Dispatch rounds by outcome",
		}, []string{"outcome"}),
		Accepts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_accepts_total",
			Help: "Accept attempts by outcome",
		}, []string{"outcome"}),
		OffersExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_offers_expired_total",
			Help: "Offers moved to REJECTED by the expiry sweep",
		}),
	}
}

// Register registers all dispatch counters with reg.
func (d *Dispatch) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{d.Rounds, d.Accepts, d.OffersExpired} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Round increments the round counter for outcome. Nil-safe.
func (d *Dispatch) Round(outcome string) {
	if d == nil {
		return
	}
	d.Rounds.WithLabelValues(outcome).Inc()
}

// Accept increments the accept counter for outcome. Nil-safe.
func (d *Dispatch) Accept(outcome string) {
	if d == nil {
		return
	}
	d.Accepts.WithLabelValues(outcome).Inc()
}

// Expired adds n expired offers. Nil-safe.
func (d *Dispatch) Expired(n int) {
	if d == nil || n <= 0 {
		return
	}
	d.OffersExpired.Add(float64(n))
}
