package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"service-dispatch/internal/logx"
	"service-dispatch/internal/service/orders"
)

// HandleFunc processes a single orders.Event from Kafka
type HandleFunc func(context.Context, orders.Event) error

var newConsumerGroup = sarama.NewConsumerGroup

// Consumer wraps a Sarama consumer group and feeds order events to a handler.
// A message is marked only after the handler succeeds or the message is
// permanently undecodable; anything else is redelivered after a rebalance.
type Consumer struct {
	group   sarama.ConsumerGroup
	topic   string
	handler HandleFunc
	logger  logx.Logger
}

// NewConsumer creates a new Kafka consumer. It returns nil, nil when Kafka is not configured.
func NewConsumer(logger logx.Logger, brokers []string, groupID, topic string, h HandleFunc) (*Consumer, error) {
	// не стартую если у кафки нет настроек
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" || strings.TrimSpace(groupID) == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logx.Nop()
	}

	cfg := sarama.NewConfig()
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	cfg.Consumer.Return.Errors = true

	group, err := newConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer group: %w", err)
	}

	return &Consumer{
		group:   group,
		topic:   topic,
		handler: h,
		logger:  logger,
	}, nil
}

// Run consumes until ctx is done.
func (c *Consumer) Run(ctx context.Context) error {
	if c == nil {
		return nil
	}

	go func() {
		for err := range c.group.Errors() {
			c.logger.Warn("kafka consumer error", logx.Err(err))
		}
	}()

	h := &groupHandler{c: c}
	for {
		if err := c.group.Consume(ctx, []string{c.topic}, h); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error("kafka consume failed", logx.String("topic", c.topic), logx.Err(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Second):
			}
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Close closes the consumer group.
func (c *Consumer) Close() error {
	if c == nil {
		return nil
	}
	return c.group.Close()
}

type groupHandler struct{ c *Consumer }

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log := h.c.logger
	for msg := range claim.Messages() {
		ev, err := decodeEvent(msg.Value)
		if err != nil {
			if IsPermanent(err) {
				log.Warn("kafka message skipped",
					logx.String("topic", msg.Topic),
					logx.Int64("offset", msg.Offset),
					logx.Err(err),
				)
				sess.MarkMessage(msg, "")
				continue
			}
			return err
		}

		if err := h.c.handler(sess.Context(), ev); err != nil {
			if IsPermanent(err) {
				log.Warn("kafka message skipped", logx.OrderID(ev.OrderID), logx.Err(err))
				sess.MarkMessage(msg, "")
				continue
			}
			// без отметки: сообщение придёт снова после ребаланса
			log.Error("kafka handle failed, will retry",
				logx.OrderID(ev.OrderID),
				logx.String("status", ev.Status),
				logx.Err(err),
			)
			return err
		}

		sess.MarkMessage(msg, "")
	}
	return nil
}

func decodeEvent(raw []byte) (orders.Event, error) {
	var dto EventDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return orders.Event{}, Permanent(fmt.Errorf("bad json: %w", err))
	}
	ev := ToDomain(dto)
	if ev.OrderID == "" {
		return orders.Event{}, Permanent(errors.New("empty order_id"))
	}
	return ev, nil
}
