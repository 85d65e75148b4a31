package app

import (
	"context"
	"time"

	"service-dispatch/internal/service/orders"
	"service-dispatch/internal/transport/kafka"
)

const orderEventTimeout = 5 * time.Second

// makeOrdersKafka adapts the processor to the consumer and bounds each event.
func makeOrdersKafka(p *orders.Processor, timeout time.Duration) kafka.HandleFunc {
	if timeout <= 0 {
		timeout = orderEventTimeout
	}
	return func(ctx context.Context, event orders.Event) error {
		evCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return p.Handle(evCtx, event)
	}
}
