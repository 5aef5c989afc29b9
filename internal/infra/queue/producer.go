package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StatusChangedPayload is emitted once per recorded prospect transition,
// after the database commit.
type StatusChangedPayload struct {
	ProspectID   int64  `json:"prospect_id"`
	ProspectName string `json:"prospect_name"`
	OldStatus    string `json:"old_status"`
	NewStatus    string `json:"new_status"`
	StatusDate   string `json:"status_date"`
	Notes        string `json:"notes"`
	UserName     string `json:"user_name"`
}

type Producer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *Producer {
	return &Producer{Conn: conn, Ch: ch}
}

func (p *Producer) PublishStatusChanged(ctx context.Context, payload StatusChangedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish status change: %w", err)
	}

	return nil
}
