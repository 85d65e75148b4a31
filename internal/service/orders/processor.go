package orders

import (
	"context"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/logx"
)

// Processor turns order lifecycle events into engine calls: a ready order is
// dispatched, a canceled one loses its open offers.
type Processor struct {
	engine  DispatchPort
	logger  logx.Logger
	factory *actionFactory
}

// NewProcessor creates a new orders.Processor.
func NewProcessor(engine DispatchPort, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{
		engine: engine,
		logger: logger,
	}
	p.factory = newActionFactory(p.onReady, p.onCanceled)
	return p
}

// Handle processes a single orders.Event. Expected outcomes (order already dispatched,
// unknown order, bad input) are logged and swallowed; anything else is returned so the
// message gets redelivered.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	fn, ok := p.factory.get(e.Status)
	if !ok {
		return nil
	}
	err := fn(ctx, e)
	if err == nil || !apperr.IsDomain(err) {
		return err
	}
	p.logger.Info("order event skipped",
		logx.OrderID(e.OrderID),
		logx.String("status", e.Status),
		logx.Err(err),
	)
	return nil
}

func (p *Processor) onReady(ctx context.Context, e Event) error {
	res, err := p.engine.Dispatch(ctx, e.OrderID)
	if err != nil {
		return err
	}
	if res.NoAgentsAvailable {
		p.logger.Warn("order ready but no couriers nearby",
			logx.OrderID(e.OrderID),
			logx.Float64("radius_km", res.RadiusKm),
		)
	}
	return nil
}

func (p *Processor) onCanceled(ctx context.Context, e Event) error {
	_, err := p.engine.CancelRound(ctx, e.OrderID)
	return err
}
