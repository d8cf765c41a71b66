package queue

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// AMQPQueue publishes notification jobs to RabbitMQ. Consumption happens in
// cmd/worker, so Subscribe is not supported here.
type AMQPQueue struct {
	conn *amqp.Connection
}

// DialAMQP connects to the broker
func DialAMQP(url string) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	return &AMQPQueue{conn: conn}, nil
}

// Publish declares a durable queue named after the topic and enqueues the payload
func (q *AMQPQueue) Publish(topic string, payload any) error {
	notifID, ok := payload.(int)
	if !ok {
		return fmt.Errorf("invalid payload type, expected int")
	}

	ch, err := q.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open queue channel: %w", err)
	}
	defer ch.Close()

	queue, err := ch.QueueDeclare(
		topic,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	body, _ := json.Marshal(map[string]int{"notification_id": notifID})
	return ch.Publish(
		"",
		queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// Subscribe is handled by the standalone worker binary
func (q *AMQPQueue) Subscribe(topic string, handler func(payload any) error) error {
	return fmt.Errorf("amqp queue does not support in-process subscribers, run cmd/worker")
}

// Close shuts down the broker connection
func (q *AMQPQueue) Close() error {
	return q.conn.Close()
}
