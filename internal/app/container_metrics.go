package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-dispatch/internal/metrics"
)

var metricsRegisterer prometheus.Registerer = prometheus.DefaultRegisterer

type metricsOut struct {
	dig.Out
	RateLimitExceeded    prometheus.Counter `name:"rate_limit_exceeded_total"`
	StoreRetries         prometheus.Counter `name:"store_retries_total"`
	NotificationsDropped prometheus.Counter `name:"notifications_dropped_total"`
	Dispatch             *metrics.Dispatch
}

// registerCounter регистрирует счётчик; при повторной сборке контейнера берёт уже существующий
func registerCounter(reg prometheus.Registerer, c prometheus.Counter) (prometheus.Counter, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return c, nil
}

func registerDispatch(reg prometheus.Registerer, d *metrics.Dispatch) (*metrics.Dispatch, error) {
	out := &metrics.Dispatch{}
	var are prometheus.AlreadyRegisteredError

	if err := reg.Register(d.Rounds); err != nil {
		if !errors.As(err, &are) {
			return nil, err
		}
		out.Rounds = are.ExistingCollector.(*prometheus.CounterVec)
	} else {
		out.Rounds = d.Rounds
	}
	if err := reg.Register(d.Accepts); err != nil {
		if !errors.As(err, &are) {
			return nil, err
		}
		out.Accepts = are.ExistingCollector.(*prometheus.CounterVec)
	} else {
		out.Accepts = d.Accepts
	}
	expired, err := registerCounter(reg, d.OffersExpired)
	if err != nil {
		return nil, err
	}
	out.OffersExpired = expired
	return out, nil
}

func provideMetrics() (metricsOut, error) {
	var (
		out metricsOut
		err error
	)
	if out.RateLimitExceeded, err = registerCounter(metricsRegisterer, metrics.NewRateLimitExceededTotal()); err != nil {
		return metricsOut{}, fmt.Errorf("register rate_limit_exceeded_total: %w", err)
	}
	if out.StoreRetries, err = registerCounter(metricsRegisterer, metrics.NewStoreRetriesTotal()); err != nil {
		return metricsOut{}, fmt.Errorf("register store_retries_total: %w", err)
	}
	if out.NotificationsDropped, err = registerCounter(metricsRegisterer, metrics.NewNotificationsDroppedTotal()); err != nil {
		return metricsOut{}, fmt.Errorf("register notifications_dropped_total: %w", err)
	}
	if out.Dispatch, err = registerDispatch(metricsRegisterer, metrics.NewDispatch()); err != nil {
		return metricsOut{}, fmt.Errorf("register dispatch metrics: %w", err)
	}
	return out, nil
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container, provideMetrics)
}
