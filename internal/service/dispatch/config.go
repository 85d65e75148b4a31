package dispatch

import (
	"time"

	"service-dispatch/internal/offers"
	"service-dispatch/internal/retry"
)

// Config tunes the engine.
type Config struct {
	// RadiiKm is the search ladder. A round at escalation e searches RadiiKm[e] and,
	// if that yields fewer than Fanout couriers, RadiiKm[e+1].
	RadiiKm          []float64
	Fanout           int
	OfferTTL         time.Duration
	MaxEscalations   int
	OperationTimeout time.Duration
	// SettleGrace is how long a round may stay without a follow-up after its last
	// refusal before the sweep settles it. SettleBatch caps such rounds per sweep.
	SettleGrace time.Duration
	SettleBatch int
	Retry       retry.Config
}

// DefaultConfig returns the marketplace defaults.
func DefaultConfig() Config {
	return Config{
		RadiiKm:          []float64{5, 10, 20},
		Fanout:           3,
		OfferTTL:         offers.DefaultTTL,
		MaxEscalations:   1,
		OperationTimeout: 3 * time.Second,
		SettleGrace:      30 * time.Second,
		SettleBatch:      100,
		Retry: retry.Config{
			MaxAttempts: 3,
			BaseDelay:   50 * time.Millisecond,
			MaxDelay:    500 * time.Millisecond,
		},
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if len(c.RadiiKm) == 0 {
		c.RadiiKm = def.RadiiKm
	}
	if c.Fanout <= 0 {
		c.Fanout = def.Fanout
	}
	if c.OfferTTL <= 0 {
		c.OfferTTL = def.OfferTTL
	}
	if c.MaxEscalations < 0 {
		c.MaxEscalations = 0
	}
	// эскалация не может выйти за лестницу радиусов
	if c.MaxEscalations > len(c.RadiiKm)-1 {
		c.MaxEscalations = len(c.RadiiKm) - 1
	}
	if c.OperationTimeout <= 0 {
		c.OperationTimeout = def.OperationTimeout
	}
	if c.SettleGrace <= 0 {
		c.SettleGrace = def.SettleGrace
	}
	if c.SettleBatch <= 0 {
		c.SettleBatch = def.SettleBatch
	}
	if c.Retry.MaxAttempts <= 0 {
		c.Retry = def.Retry
	}
	return c
}
