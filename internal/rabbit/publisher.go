// publisher.go
package rabbit

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"skycart-api/internal/model"
)

const (
	ExchangeOrderPlaced    = "order_placed"
	ExchangeOrderCancelled = "order_cancelled"
)

// Publisher fans order lifecycle events out to downstream services over
// durable fanout exchanges.
type Publisher struct {
	ch *amqp091.Channel
}

func NewPublisher(ch *amqp091.Channel) (*Publisher, error) {
	for _, exchange := range []string{ExchangeOrderPlaced, ExchangeOrderCancelled} {
		err := ch.ExchangeDeclare(
			exchange,
			"fanout",
			true,  // durable
			false, // auto-delete
			false,
			false,
			nil,
		)
		if err != nil {
			return nil, err
		}
	}

	log.Printf("declared exchanges %s, %s", ExchangeOrderPlaced, ExchangeOrderCancelled)
	return &Publisher{ch: ch}, nil
}

type orderEventItem struct {
	Product  string `json:"product"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type orderEvent struct {
	OrderID    string           `json:"orderId"`
	UserID     string           `json:"userId"`
	Status     string           `json:"status"`
	TotalPrice string           `json:"totalPrice"`
	Items      []orderEventItem `json:"items"`
	OccurredAt time.Time        `json:"occurredAt"`
}

func newOrderEvent(o *model.Order) orderEvent {
	items := make([]orderEventItem, len(o.OrderItems))
	for i, it := range o.OrderItems {
		items[i] = orderEventItem{
			Product:  it.Product,
			Name:     it.Name,
			Quantity: it.Quantity,
		}
	}
	return orderEvent{
		OrderID:    o.ID,
		UserID:     o.User,
		Status:     string(o.OrderStatus),
		TotalPrice: o.TotalPrice.String(),
		Items:      items,
		OccurredAt: time.Now().UTC(),
	}
}

func (p *Publisher) OrderPlaced(ctx context.Context, o *model.Order) error {
	return p.publish(ctx, ExchangeOrderPlaced, newOrderEvent(o))
}

func (p *Publisher) OrderCancelled(ctx context.Context, o *model.Order) error {
	return p.publish(ctx, ExchangeOrderCancelled, newOrderEvent(o))
}

func (p *Publisher) publish(ctx context.Context, exchange string, event orderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.ch.PublishWithContext(
		ctx,
		exchange,
		"", // fanout ignores routing key
		false,
		false,
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   event.OccurredAt,
		},
	)
}
