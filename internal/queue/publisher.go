package queue

import (
    "context"
    "encoding/json"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/rs/zerolog/log"
)

// Publisher sends ReservationEvents to a durable queue on the default
// exchange.  Each Publish opens and closes its own connection, which keeps
// the publisher stateless and is fine at reservation-write volumes.
type Publisher struct {
    url   string
    queue string
}

// NewPublisher returns a Publisher for the broker at url.
func NewPublisher(url, queueName string) *Publisher {
    return &Publisher{url: url, queue: queueName}
}

// Publish delivers ev as a persistent JSON message.  Errors are logged and
// returned; callers treat event delivery as best effort.
func (p *Publisher) Publish(ctx context.Context, ev ReservationEvent) error {
    logger := log.With().Str("event_id", ev.EventID).Str("type", ev.Type).Logger()

    conn, err := amqp.Dial(p.url)
    if err != nil {
        logger.Error().Err(err).Msg("rabbitmq: dial failed")
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        logger.Error().Err(err).Msg("rabbitmq: channel open failed")
        return err
    }
    defer func() { _ = ch.Close() }()

    if err := declareQueue(ch, p.queue); err != nil {
        logger.Error().Err(err).Msg("rabbitmq: queue declare failed")
        return err
    }

    body, err := json.Marshal(ev)
    if err != nil {
        return err
    }
    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        MessageId:    ev.EventID,
        Type:         ev.Type,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
        logger.Error().Err(err).Msg("rabbitmq: publish failed")
        return err
    }
    return nil
}

// declareQueue makes sure the durable queue exists (idempotent).
func declareQueue(ch *amqp.Channel, name string) error {
    _, err := ch.QueueDeclare(
        name,
        true,  // durable
        false, // autoDelete
        false, // exclusive
        false, // noWait
        nil,
    )
    return err
}
