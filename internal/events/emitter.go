package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Event is the envelope published for every platform event.
type Event struct {
	Type      string `json:"type"`
	Data      any    `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

const (
	TypeEndorsementCreated = "endorsement.created"
	TypeInvestmentCreated  = "investment.created"
	TypeJobCompleted       = "job.completed"
)

// Emitter publishes platform events. Emission is best effort and must never
// fail a request.
type Emitter interface {
	Emit(eventType string, data any) error
	Close()
}

// NatsEmitter publishes events to a single NATS subject.
type NatsEmitter struct {
	conn    *nats.Conn
	subject string
}

// NewNatsEmitter connects to NATS and returns a live emitter.
func NewNatsEmitter(natsURL, subject string) (*NatsEmitter, error) {
	conn, err := nats.Connect(natsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NatsEmitter{
		conn:    conn,
		subject: subject,
	}, nil
}

func (e *NatsEmitter) Emit(eventType string, data any) error {
	payload, err := json.Marshal(Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		return err
	}
	return e.conn.Publish(e.subject, payload)
}

func (e *NatsEmitter) Close() {
	if e.conn != nil {
		e.conn.Close()
	}
}

// NopEmitter is used when no NATS URL is configured.
type NopEmitter struct{}

func (NopEmitter) Emit(string, any) error { return nil }
func (NopEmitter) Close()                 {}
