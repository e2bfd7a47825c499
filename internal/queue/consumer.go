package queue

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartConfirmationConsumer connects to the broker, declares the
// reservation.confirmed queue and consumes it forever, appending one
// line per confirmation to logs/booking.log.  It runs a reconnect
// loop with capped backoff and never returns under normal operation;
// processing errors reject the offending message and keep going.
func StartConfirmationConsumer() {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(brokerURL())
		if err != nil {
			log.Printf("reservation-consumer: dial failed: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeConfirmations(conn); err != nil {
			log.Printf("reservation-consumer: consume loop ended: %v; reconnecting", err)
		}
		_ = conn.Close()
		time.Sleep(2 * time.Second)
	}
}

func consumeConfirmations(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(confirmedQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	deliveries, err := ch.Consume(confirmedQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	for d := range deliveries {
		if err := appendBookingLog(d.Body); err != nil {
			log.Printf("reservation-consumer: %v", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return fmt.Errorf("delivery channel closed")
}

// appendBookingLog writes one human-readable line per confirmation.
func appendBookingLog(body []byte) error {
	var ev ReservationConfirmedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("decode confirmation: %w", err)
	}

	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join("logs", "booking.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open booking log: %w", err)
	}
	defer func() { _ = f.Close() }()

	var line string
	if ev.Kind == "hall" {
		line = fmt.Sprintf("%s hall reservation=%d owner=%s date=%s guests=%d kind=%q\n",
			ev.ConfirmedAt, ev.ReservationID, ev.OwnerEmail, ev.Date, ev.GuestCount, ev.EventKind)
	} else {
		line = fmt.Sprintf("%s seat reservation=%d owner=%s event=%d seats=%d total=%d\n",
			ev.ConfirmedAt, ev.ReservationID, ev.OwnerEmail, ev.EventID, ev.SeatCount, ev.TotalPrice)
	}
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append booking log: %w", err)
	}
	return nil
}
