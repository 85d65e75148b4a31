package app

import (
	"go.uber.org/dig"

	"service-dispatch/internal/config"
	"service-dispatch/internal/jobs"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/service/dispatch"
	"service-dispatch/internal/service/orders"
	"service-dispatch/internal/transport/kafka"
)

func newDispatchPort(s *dispatch.Service) orders.DispatchPort { return s }

func newExpirer(s *dispatch.Service) jobs.Expirer { return s }

func newOrdersConsumer(cfg *config.Config, logger logx.Logger, p *orders.Processor) (*kafka.Consumer, error) {
	k := cfg.Kafka
	return kafka.NewConsumer(logger, k.Brokers, k.GroupID, k.OrdersTopic, makeOrdersKafka(p, cfg.Dispatch.OperationTimeout*2))
}

func newExpirySweeper(cfg *config.Config, logger logx.Logger, e jobs.Expirer) *jobs.ExpirySweeper {
	return jobs.NewExpirySweeper(e, cfg.Dispatch.SweepSchedule, cfg.Dispatch.OperationTimeout*2, logger)
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		newDispatchPort,
		newExpirer,
		orders.NewProcessor,
		newOrdersConsumer,
		newExpirySweeper,
	)
}
