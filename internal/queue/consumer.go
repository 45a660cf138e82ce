package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/cinebook/internal/logger"
)

// BookingLogFile is the file, under the consumer's directory, that confirmed
// bookings are appended to.
const BookingLogFile = "booking.log"

// Consumer drains BookingQueue into a line-per-booking log file.
type Consumer struct {
	url string
	dir string
	log *logger.Logger
	mu  sync.Mutex // serialises appends
}

// NewConsumer returns a consumer for the broker at url writing under dir.
func NewConsumer(url, dir string, log *logger.Logger) *Consumer {
	if log == nil {
		log = logger.Nop()
	}
	return &Consumer{url: url, dir: dir, log: log}
}

// Run connects, consumes and reconnects with exponential backoff until ctx
// is cancelled, then returns ctx.Err().  Broker outages never end the loop.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.DialConfig(c.url, DialConfig())
		if err != nil {
			c.log.Warn("QUEUE", fmt.Sprintf("booking-consumer: dial failed: %v; retrying in %s", err, backoff))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn("QUEUE", fmt.Sprintf("booking-consumer: consume loop ended: %v; reconnecting", err))
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
		c.log.Warn("QUEUE", fmt.Sprintf("booking-consumer: set QoS failed: %v", err))
	}
	if _, err := ch.QueueDeclare(BookingQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(BookingQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}
	c.log.LogQueue("CONSUME", BookingQueue, "waiting for bookings")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.HandleMessage(d.Body); err != nil {
				c.log.Error("QUEUE", fmt.Sprintf("booking-consumer: handle message failed: %v", err))
				_ = d.Nack(false, false) // no requeue: a bad payload would loop forever
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// HandleMessage decodes one event and appends it to the booking log.
func (c *Consumer) HandleMessage(body []byte) error {
	var ev BookingConfirmedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.ReceiptID == "" {
		return errors.New("event has no receipt id")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", c.dir, err)
	}
	f, err := os.OpenFile(filepath.Join(c.dir, BookingLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	c.log.LogQueue("RECORD", BookingQueue, ev.ReceiptID)
	return nil
}

// FormatLine renders ev as one human-readable log line.
func FormatLine(ev BookingConfirmedEvent) string {
	return fmt.Sprintf("[%s] Booking confirmed | receipt_id=%s | email=%s | movie=%q | theatre=%q | date=%s | time=%q | seats=[%s] | total=%d | fee=%d | grand_total=%d\n",
		ev.ConfirmedAt, ev.ReceiptID, ev.Email, ev.MovieTitle, ev.TheatreName, ev.Date, ev.ShowTime,
		strings.Join(ev.SeatLabels, ","), ev.TotalPrice, ev.ServiceFee, ev.GrandTotal)
}

// DialConfig is the connection setup shared with the publisher.
func DialConfig() amqp.Config {
	return amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(2 * time.Second),
	}
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
