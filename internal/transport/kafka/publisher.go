package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

var newAsyncProducer = sarama.NewAsyncProducer

// Publisher sends engine notifications to a topic, keyed by order ID so one
// order's events stay in one partition. Notify never blocks: when the
// producer buffer is full the notification is dropped and counted.
type Publisher struct {
	producer sarama.AsyncProducer
	topic    string
	dropped  prometheus.Counter
	logger   logx.Logger
	newID    func() string

	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewPublisher connects an async producer. It returns nil, nil when Kafka is not configured;
// a nil *Publisher drops everything silently.
func NewPublisher(logger logx.Logger, brokers []string, topic string, dropped prometheus.Counter) (*Publisher, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Return.Successes = false
	cfg.Producer.Return.Errors = true

	producer, err := newAsyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return newPublisher(producer, topic, dropped, logger), nil
}

func newPublisher(producer sarama.AsyncProducer, topic string, dropped prometheus.Counter, logger logx.Logger) *Publisher {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Publisher{
		producer: producer,
		topic:    topic,
		dropped:  dropped,
		logger:   logger,
		newID:    func() string { return uuid.NewString() },
	}
	p.wg.Add(1)
	go p.drainErrors()
	return p
}

// Notify enqueues n for delivery.
func (p *Publisher) Notify(_ context.Context, n domain.Notification) {
	if p == nil {
		return
	}

	body, err := json.Marshal(FromNotification(p.newID(), n))
	if err != nil {
		p.drop(n, err)
		return
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(n.OrderID),
		Value: sarama.ByteEncoder(body),
	}

	select {
	case p.producer.Input() <- msg:
	default:
		p.drop(n, nil)
	}
}

// Close flushes buffered messages and stops the producer.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	var err error
	p.closeOnce.Do(func() {
		err = p.producer.Close()
		p.wg.Wait()
	})
	return err
}

func (p *Publisher) drop(n domain.Notification, err error) {
	if p.dropped != nil {
		p.dropped.Inc()
	}
	fields := []logx.Field{
		logx.String("type", string(n.Type)),
		logx.OrderID(n.OrderID),
		logx.CourierID(n.CourierID),
	}
	if err != nil {
		fields = append(fields, logx.Err(err))
	}
	p.logger.Warn("notification dropped", fields...)
}

func (p *Publisher) drainErrors() {
	defer p.wg.Done()
	for perr := range p.producer.Errors() {
		if p.dropped != nil {
			p.dropped.Inc()
		}
		orderID := ""
		if perr.Msg != nil {
			if k, ok := perr.Msg.Key.(sarama.StringEncoder); ok {
				orderID = string(k)
			}
		}
		p.logger.Warn("notification delivery failed", logx.OrderID(orderID), logx.Err(perr.Err))
	}
}
