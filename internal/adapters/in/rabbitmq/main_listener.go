package rabbitmq

import (
	"context"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/clinic-booking-controller/internal/config"
	"github.com/suchimauz/clinic-booking-controller/internal/core/json_types"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/in"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/out"
)

type LiveUpdateListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.LiveUpdateUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

type (
	UpdateAction       string
	UpdateResourceType string
)

type UpdateMessageRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType UpdateResourceType
	ResourceID   json_types.ID
	Action       UpdateAction
}

const (
	UpdateResourceTypeAll    UpdateResourceType = "_all_"
	UpdateResourceTypeSlot   UpdateResourceType = "termin"
	UpdateResourceTypeDoctor UpdateResourceType = "lekarz"
)

const (
	UpdateActionStore      UpdateAction = "store"
	UpdateActionInvalidate UpdateAction = "invalidate"
)

func NewLiveUpdateListener(useCase in.LiveUpdateUseCase, cfg *config.Config, logger out.LoggerPort) (*LiveUpdateListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return newLiveUpdateListener(conn, channel, useCase, cfg, logger), nil
}

func newLiveUpdateListener(conn *amqp.Connection, channel *amqp.Channel, useCase in.LiveUpdateUseCase, cfg *config.Config, logger out.LoggerPort) *LiveUpdateListener {
	return &LiveUpdateListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger.WithModule("LiveUpdateListener"),
	}
}

func (l *LiveUpdateListener) Start(ctx context.Context) error {
	if l == nil {
		return nil
	}

	err := l.channel.ExchangeDeclare(
		l.cfg.RabbitMQ.Exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("rabbitmq.exchange.declare: %w", err)
	}

	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.Queue,
		true,  // durable
		true,  // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("rabbitmq.queue.declare: %w", err)
	}

	for _, key := range l.cfg.RabbitMQBindings() {
		if err := l.channel.QueueBind(queue.Name, key, l.cfg.RabbitMQ.Exchange, false, nil); err != nil {
			return fmt.Errorf("rabbitmq.queue.bind %s: %w", key, err)
		}
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("rabbitmq.consume: %w", err)
	}

	go l.consume(ctx, msgs)

	l.logger.Info("rabbitmq.queue.started", out.LogFields{
		"queue":    queue.Name,
		"exchange": l.cfg.RabbitMQ.Exchange,
		"bindings": l.cfg.RabbitMQBindings(),
	})
	return nil
}

func (l *LiveUpdateListener) consume(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				l.logger.Warn("rabbitmq.channel.closed", out.LogFields{})
				return
			}
			if err := l.processMessage(ctx, msg); err != nil {
				l.logger.Error("rabbitmq.message.process_failed", out.LogFields{
					"routingKey": msg.RoutingKey,
					"error":      err.Error(),
				})
				msg.Nack(false, !msg.Redelivered) // один повтор, потом выбрасываем
				continue
			}
			msg.Ack(false)
		}
	}
}

func (l *LiveUpdateListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}

// Пример routingKey:
// clinic.booking-controller.termin.7.store
// clinic.booking-controller.lekarz.7.invalidate
// clinic.booking-controller._all_._all_.invalidate
func parseUpdateMessageRoutingKey(routingKey string) (UpdateMessageRoutingKey, error) {
	parts := strings.Split(routingKey, ".")

	if len(parts) < 5 {
		return UpdateMessageRoutingKey{}, fmt.Errorf("invalid routing key: %s", routingKey)
	}

	return UpdateMessageRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: UpdateResourceType(parts[2]),
		ResourceID:   json_types.NewID(parts[3]),
		Action:       UpdateAction(parts[4]),
	}, nil
}
