package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/rs/zerolog/log"

    "github.com/iliyamo/outdoor-rental/internal/retry"
)

// Consumer appends one human readable line per reservation event to a log
// file.
type Consumer struct {
    url     string
    queue   string
    logPath string
}

func NewConsumer(url, queueName, logPath string) *Consumer {
    return &Consumer{url: url, queue: queueName, logPath: logPath}
}

// Run connects, consumes and reconnects until ctx is done. Each dial round
// uses retry.Do; a message that cannot be handled is rejected without
// requeue so one bad payload cannot spin the loop.
func (c *Consumer) Run(ctx context.Context) error {
    cfg := retry.Config{
        MaxAttempts:   10,
        InitialDelay:  time.Second,
        MaxDelay:      30 * time.Second,
        BackoffFactor: 2,
    }
    for {
        var conn *amqp.Connection
        err := retry.Do(ctx, cfg, func(context.Context) error {
            var err error
            conn, err = amqp.Dial(c.url)
            return err
        }, func(attempt int, err error, next time.Duration) {
            log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", next).Msg("reservation-consumer: dial failed")
        })
        if ctx.Err() != nil {
            return ctx.Err()
        }
        if err != nil {
            log.Error().Err(err).Msg("reservation-consumer: broker unreachable, pausing")
            if !sleep(ctx, time.Minute) {
                return ctx.Err()
            }
            continue
        }

        err = c.consumeLoop(ctx, conn)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        log.Warn().Err(err).Msg("reservation-consumer: consume loop ended, reconnecting")
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Warn().Err(err).Msg("reservation-consumer: set QoS failed")
    }
    if err := declareQueue(ch, c.queue); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := c.handleMessage(d.Body); err != nil {
                log.Error().Err(err).Str("message_id", d.MessageId).Msg("reservation-consumer: handle message failed")
                _ = d.Nack(false, false)
                continue
            }
            _ = d.Ack(false)
        }
    }
}

func (c *Consumer) handleMessage(body []byte) error {
    var ev ReservationEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if ev.Type == "" || ev.ReservationID == 0 {
        return errors.New("event missing type or reservation id")
    }
    if err := os.MkdirAll(filepath.Dir(c.logPath), 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    f, err := os.OpenFile(c.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    if _, err := f.WriteString(formatLine(ev)); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

func formatLine(ev ReservationEvent) string {
    verb := "Reservation created"
    if ev.Type == EventReservationCancelled {
        verb = "Reservation cancelled"
    }
    return fmt.Sprintf("[%s] %s | reservation_id=%d | outdoor_id=%d | outdoor=%q | period=%s..%s | customer=%q | total=%s\n",
        ev.OccurredAt, verb, ev.ReservationID, ev.OutdoorID, ev.OutdoorName, ev.StartDate, ev.EndDate, ev.CustomerName, ev.TotalValue)
}

func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}
