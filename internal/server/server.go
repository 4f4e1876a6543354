// Package server implements the ProjectIQ HTTP API.
package server

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/chaitenyachand/ProjectIQ/internal/events"
	"github.com/chaitenyachand/ProjectIQ/internal/extract"
	"github.com/chaitenyachand/ProjectIQ/internal/model"
	"github.com/chaitenyachand/ProjectIQ/internal/store"
)

// Extractor is the extraction service dependency. Satisfied by *extract.Client.
type Extractor interface {
	Extract(ctx context.Context, req *extract.Request) (*extract.Result, error)
}

// Server holds the API's dependencies and implements all HTTP handlers.
type Server struct {
	store     store.Store
	publisher events.Publisher
	extractor Extractor
}

// NewServer returns a new Server backed by the given store, publisher, and
// extraction client. extractor may be nil; extraction endpoints then return 503.
func NewServer(s store.Store, p events.Publisher, x Extractor) *Server {
	return &Server{
		store:     s,
		publisher: p,
		extractor: x,
	}
}

// recordAndPublish persists an event to the store and publishes it to NATS.
// Both operations are best-effort; failures are logged but do not block the caller.
func (s *Server) recordAndPublish(ctx context.Context, topic, brdID, actor string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Warn("failed to marshal event", "topic", topic, "brd_id", brdID, "error", err)
		return
	}
	if err := s.store.RecordEvent(ctx, &model.Event{
		Topic:   topic,
		BRDID:   brdID,
		Actor:   actor,
		Payload: payload,
	}); err != nil {
		slog.Warn("failed to record event", "topic", topic, "brd_id", brdID, "error", err)
	}
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "brd_id", brdID, "error", err)
	}
}

// inputError indicates invalid user input.
// The HTTP layer maps this to 400.
type inputError string

func (e inputError) Error() string { return string(e) }
