package kafka

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/antonym0505/intermodal/internal/db"
	"github.com/antonym0505/intermodal/internal/repository"
)

// OutboxCreator is the slice of the outbox repo the sink writes to.
type OutboxCreator interface {
	Create(ctx context.Context, database db.DB, task *repository.OutboxTask) error
}

// OutboxSink turns domain events into outbox tasks; the publisher
// delivers them to kafka asynchronously. Event emission never fails a
// request: a write error is logged and dropped.
type OutboxSink struct {
	db     db.DB
	repo   OutboxCreator
	topic  string
	logger *zap.Logger
}

func NewOutboxSink(database db.DB, repo OutboxCreator, topic string, logger *zap.Logger) *OutboxSink {
	return &OutboxSink{db: database, repo: repo, topic: topic, logger: logger}
}

func (s *OutboxSink) Emit(ctx context.Context, eventType string, payload interface{}) {
	envelope := struct {
		Type    string      `json:"type"`
		Payload interface{} `json:"payload"`
	}{Type: eventType, Payload: payload}

	raw, err := json.Marshal(envelope)
	if err != nil {
		s.logger.Error("failed to marshal domain event", zap.String("type", eventType), zap.Error(err))
		return
	}

	task := &repository.OutboxTask{Payload: raw, Topic: s.topic}
	if err := s.repo.Create(ctx, s.db, task); err != nil {
		s.logger.Error("failed to enqueue domain event", zap.String("type", eventType), zap.Error(err))
	}
}

// ProducerSink sends events straight to the producer, for deployments
// without postgres (no outbox table to stage through).
type ProducerSink struct {
	producer Producer
	topic    string
	logger   *zap.Logger
}

func NewProducerSink(producer Producer, topic string, logger *zap.Logger) *ProducerSink {
	return &ProducerSink{producer: producer, topic: topic, logger: logger}
}

func (s *ProducerSink) Emit(ctx context.Context, eventType string, payload interface{}) {
	envelope := struct {
		Type    string      `json:"type"`
		Payload interface{} `json:"payload"`
	}{Type: eventType, Payload: payload}

	raw, err := json.Marshal(envelope)
	if err != nil {
		s.logger.Error("failed to marshal domain event", zap.String("type", eventType), zap.Error(err))
		return
	}

	if err := s.producer.SendMessage(ctx, s.topic, []byte(eventType), raw); err != nil {
		s.logger.Error("failed to send domain event", zap.String("type", eventType), zap.Error(err))
	}
}
