package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StatusNotifier delivers a transition notification (email today, anything
// tomorrow). The worker is fully decoupled from the database.
type StatusNotifier interface {
	SendStatusChanged(payload StatusChangedPayload) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier StatusNotifier
}

func NewWorker(ch *amqp.Channel, notifier StatusNotifier) *Worker {
	return &Worker{Channel: ch, Notifier: notifier}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ rabbitmq consumer: %s", err)
	}

	for d := range msgs {
		var payload StatusChangedPayload
		if err := json.Unmarshal(d.Body, &payload); err != nil {
			log.Printf("❌ [WORKER] malformed message: %s", err)
			// Rejected without requeue so a rotten message cannot jam the queue.
			d.Nack(false, false)
			continue
		}

		log.Printf("📥 [WORKER] %s: %s → %s", payload.ProspectName, payload.OldStatus, payload.NewStatus)

		if err := w.Notifier.SendStatusChanged(payload); err != nil {
			log.Printf("❌ [WORKER] notification failed: %s", err)
			d.Nack(false, false)
			continue
		}

		d.Ack(false)
	}
}
