package rabbitmq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/out"
)

func (l *LiveUpdateListener) processMessage(ctx context.Context, msg amqp.Delivery) error {
	key, err := parseUpdateMessageRoutingKey(msg.RoutingKey)
	if err != nil {
		// Ключ не исправится от повтора — подтверждаем и забываем
		l.logger.Warn("rabbitmq.message.bad_routing_key", out.LogFields{
			"routingKey": msg.RoutingKey,
			"error":      err.Error(),
		})
		return nil
	}

	l.logger.Debug("rabbitmq.message.received", out.LogFields{
		"source":   key.Source,
		"resource": key.ResourceType,
		"id":       key.ResourceID,
		"action":   key.Action,
	})

	switch key.ResourceType {
	case UpdateResourceTypeAll:
		return l.useCase.AllChanged(ctx)
	case UpdateResourceTypeSlot:
		if key.ResourceID.IsZero() {
			return fmt.Errorf("slot update without doctor id: %s", msg.RoutingKey)
		}
		return l.useCase.SlotsChanged(ctx, key.ResourceID)
	case UpdateResourceTypeDoctor:
		if key.ResourceID.IsZero() {
			return fmt.Errorf("doctor update without id: %s", msg.RoutingKey)
		}
		return l.useCase.DoctorChanged(ctx, key.ResourceID)
	}

	l.logger.Warn("rabbitmq.message.unknown_resource", out.LogFields{
		"routingKey": msg.RoutingKey,
	})
	return nil
}
