package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/amlesh-kumar01/NFT-Event-Ticketing/interfaces"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/metrics"
)

// publishTimeout bounds a single broker publish so a stalled broker cannot
// back the pending queue up indefinitely.
const publishTimeout = 5 * time.Second

// pendingBuffer is how many notifications may queue behind a slow broker
// before Emit starts dropping.
const pendingBuffer = 256

// Envelope is the wire format for published notifications.
type Envelope struct {
	ID      string                  `json:"id"`
	Kind    string                  `json:"kind"`
	Payload interfaces.Notification `json:"payload"`
}

// AMQPPublisher delivers notifications to a durable RabbitMQ queue as
// persistent JSON messages. Emit only hands the notification to a
// background publisher goroutine; broker I/O never runs on the caller.
// When the pending queue is full or a publish fails, the notification is
// dropped, logged, and counted, never surfaced to the mutation that
// triggered it.
type AMQPPublisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	log   *slog.Logger

	pending chan interfaces.Notification
	done    chan struct{}

	// publish is swapped out in tests; defaults to publishToBroker.
	publish func(interfaces.Notification) error
}

// NewAMQPPublisher dials the broker, opens a channel, declares the durable
// queue, and starts the background publisher goroutine.
func NewAMQPPublisher(url, queue string, log *slog.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial failed: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel open failed: %w", err)
	}

	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("amqp queue declare failed: %w", err)
	}

	p := &AMQPPublisher{
		conn:    conn,
		ch:      ch,
		queue:   queue,
		log:     log,
		pending: make(chan interfaces.Notification, pendingBuffer),
		done:    make(chan struct{}),
	}
	p.publish = p.publishToBroker
	go p.run()
	return p, nil
}

// Emit implements interfaces.Sink. It never blocks: the notification is
// queued for the publisher goroutine, or dropped and counted when the
// queue is full. Must not be called after Close.
func (p *AMQPPublisher) Emit(n interfaces.Notification) {
	select {
	case p.pending <- n:
	default:
		metrics.NotificationFailures.Inc()
		p.log.Warn("dropped notification, publish queue full", "kind", n.Kind(), "queue", p.queue)
	}
}

// run drains the pending queue until Close.
func (p *AMQPPublisher) run() {
	defer close(p.done)
	for n := range p.pending {
		if err := p.publish(n); err != nil {
			metrics.NotificationFailures.Inc()
			p.log.Error("failed to publish notification", "kind", n.Kind(), "queue", p.queue, "err", err)
		}
	}
}

func (p *AMQPPublisher) publishToBroker(n interfaces.Notification) error {
	body, err := json.Marshal(Envelope{
		ID:      uuid.NewString(),
		Kind:    n.Kind(),
		Payload: n,
	})
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	return p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
}

// Close waits for queued notifications to drain, then releases the channel
// and connection.
func (p *AMQPPublisher) Close() error {
	close(p.pending)
	<-p.done
	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
