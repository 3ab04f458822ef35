// Package queue_publisher publishes domain events to RabbitMQ. Errors
// are logged and returned so request handlers can treat publishing as
// best-effort without interrupting the main flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/HareemRehan13/EventSphere-Management-System/internal/queue"
)

// PublishRequestDecided publishes a RequestDecidedEvent to the
// allocation.decided queue. Messages are marked persistent so they
// survive broker restarts.
func PublishRequestDecided(ctx context.Context, event q.RequestDecidedEvent) error {
	return publishJSON(ctx, q.DecisionQueueName, event)
}

// PublishContactExchanged publishes a ContactExchangedEvent to the
// allocation.contact queue.
func PublishContactExchanged(ctx context.Context, event q.ContactExchangedEvent) error {
	return publishJSON(ctx, q.ContactQueueName, event)
}

func publishJSON(ctx context.Context, queue string, event interface{}) error {
	conn, err := amqp.Dial(q.BrokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
