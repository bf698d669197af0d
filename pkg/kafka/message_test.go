package kafka

import (
	"encoding/json"
	"testing"
)

func TestMessageBuilderAssignsEventID(t *testing.T) {
	first := NewMessage().WithKey("k").WithValue(map[string]string{"a": "b"}).Build()
	second := NewMessage().WithKey("k").WithValue(map[string]string{"a": "b"}).Build()

	if first.Headers[HeaderEventID] == "" {
		t.Fatal("expected generated event ID")
	}
	if first.Headers[HeaderEventID] == second.Headers[HeaderEventID] {
		t.Fatal("event IDs must be unique per message")
	}
	if first.Headers[HeaderTimestamp] == "" {
		t.Fatal("expected timestamp header")
	}
}

func TestMessageBuilderCarriesTypeAndSource(t *testing.T) {
	msg := NewMessage().
		WithKey("booking-1").
		WithValue(map[string]string{"id": "booking-1"}).
		WithEventType("booking.confirmed").
		WithSource("shutterbook").
		Build()

	if msg.Headers[HeaderEventType] != "booking.confirmed" {
		t.Errorf("event type header = %q", msg.Headers[HeaderEventType])
	}
	if msg.Headers[HeaderSource] != "shutterbook" {
		t.Errorf("source header = %q", msg.Headers[HeaderSource])
	}

	var payload map[string]string
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		t.Fatalf("value is not valid JSON: %v", err)
	}
	if payload["id"] != "booking-1" {
		t.Errorf("unexpected payload: %v", payload)
	}
}

func TestProducerRejectsIncompleteMessages(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}, Topic: "booking-events"})
	if err != nil {
		t.Fatalf("NewProducer failed: %v", err)
	}
	defer p.Close()

	if err := p.Publish(nil, Message{Value: []byte("x")}); err != ErrEmptyKey {
		t.Errorf("expected ErrEmptyKey, got %v", err)
	}
	if err := p.Publish(nil, Message{Key: "k"}); err != ErrEmptyValue {
		t.Errorf("expected ErrEmptyValue, got %v", err)
	}
}

func TestProducerConfigValidation(t *testing.T) {
	if _, err := NewProducer(Config{Topic: "booking-events"}); err == nil {
		t.Error("expected error for missing brokers")
	}
	if _, err := NewProducer(Config{Brokers: []string{"localhost:9092"}}); err == nil {
		t.Error("expected error for missing topic")
	}
}

func TestClosedProducerRefusesPublish(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}, Topic: "booking-events"})
	if err != nil {
		t.Fatalf("NewProducer failed: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if err := p.Publish(nil, Message{Key: "k", Value: []byte("x")}); err != ErrProducerClosed {
		t.Errorf("expected ErrProducerClosed, got %v", err)
	}
}
