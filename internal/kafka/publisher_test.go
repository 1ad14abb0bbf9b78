package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/antonym0505/intermodal/internal/db"
	mock_db "github.com/antonym0505/intermodal/internal/db/mocks"
	"github.com/antonym0505/intermodal/internal/repository"
)

type sentMessage struct {
	topic string
	key   string
	value []byte
}

// recordingProducer captures sends; sendErr injects delivery failures.
type recordingProducer struct {
	messages []sentMessage
	sendErr  error
}

func (p *recordingProducer) SendMessage(ctx context.Context, topic string, key, value []byte) error {
	if p.sendErr != nil {
		return p.sendErr
	}
	p.messages = append(p.messages, sentMessage{topic: topic, key: string(key), value: value})
	return nil
}

func (p *recordingProducer) Close() error { return nil }

type statusChange struct {
	id       uuid.UUID
	status   repository.TaskStatus
	attempts int
}

type fakeOutboxRepo struct {
	tasks      []*repository.OutboxTask
	processing []statusChange
	final      []statusChange
}

func (r *fakeOutboxRepo) GetProcessableTasks(ctx context.Context, database db.DB, limit int) ([]*repository.OutboxTask, error) {
	return r.tasks, nil
}

func (r *fakeOutboxRepo) UpdateTaskStatusTx(ctx context.Context, tx db.Tx, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error {
	r.processing = append(r.processing, statusChange{id: id, status: status, attempts: attempts})
	return nil
}

func (r *fakeOutboxRepo) UpdateTaskStatus(ctx context.Context, database db.DB, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error {
	r.final = append(r.final, statusChange{id: id, status: status, attempts: attempts})
	return nil
}

func TestPublisherProcessBatch(t *testing.T) {
	ctx := context.Background()

	newTx := func(ctrl *gomock.Controller) *mock_db.MockTx {
		tx := mock_db.NewMockTx(ctrl)
		tx.EXPECT().Commit(gomock.Any()).Return(nil)
		tx.EXPECT().Rollback(gomock.Any()).Return(nil)
		return tx
	}

	t.Run("delivers tasks and marks them done", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		task := &repository.OutboxTask{
			ID:      uuid.New(),
			Status:  repository.TaskStatusCreated,
			Payload: json.RawMessage(`{"type":"handoff_initiated"}`),
			Topic:   "custody_events",
		}

		mockDB := mock_db.NewMockDB(ctrl)
		mockDB.EXPECT().BeginTx(gomock.Any()).Return(newTx(ctrl), nil)

		repo := &fakeOutboxRepo{tasks: []*repository.OutboxTask{task}}
		producer := &recordingProducer{}

		p := NewPublisher(mockDB, repo, producer, zap.NewNop(), PublisherConfig{
			PollInterval: time.Second,
			BatchSize:    10,
			MaxAttempts:  5,
		})

		require.NoError(t, p.processBatch(ctx))

		require.Len(t, producer.messages, 1)
		assert.Equal(t, "custody_events", producer.messages[0].topic)
		assert.Equal(t, task.ID.String(), producer.messages[0].key)
		assert.JSONEq(t, `{"type":"handoff_initiated"}`, string(producer.messages[0].value))

		require.Len(t, repo.processing, 1)
		assert.Equal(t, repository.TaskStatusProcessing, repo.processing[0].status)

		require.Len(t, repo.final, 1)
		assert.Equal(t, repository.TaskStatusDone, repo.final[0].status)
	})

	t.Run("failed send marks the task FAILED with a bumped attempt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		task := &repository.OutboxTask{
			ID:       uuid.New(),
			Status:   repository.TaskStatusCreated,
			Payload:  json.RawMessage(`{}`),
			Topic:    "custody_events",
			Attempts: 1,
		}

		mockDB := mock_db.NewMockDB(ctrl)
		mockDB.EXPECT().BeginTx(gomock.Any()).Return(newTx(ctrl), nil)

		repo := &fakeOutboxRepo{tasks: []*repository.OutboxTask{task}}
		producer := &recordingProducer{sendErr: errors.New("broker down")}

		p := NewPublisher(mockDB, repo, producer, zap.NewNop(), PublisherConfig{
			PollInterval: time.Second,
			BatchSize:    10,
			MaxAttempts:  5,
		})

		// Single-task delivery failures are logged, not batch-fatal.
		require.NoError(t, p.processBatch(ctx))

		require.Len(t, repo.final, 1)
		assert.Equal(t, repository.TaskStatusFailed, repo.final[0].status)
		assert.Equal(t, 2, repo.final[0].attempts)
	})

	t.Run("empty batch commits and sends nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_db.NewMockDB(ctrl)
		mockDB.EXPECT().BeginTx(gomock.Any()).Return(newTx(ctrl), nil)

		repo := &fakeOutboxRepo{}
		producer := &recordingProducer{}

		p := NewPublisher(mockDB, repo, producer, zap.NewNop(), PublisherConfig{
			PollInterval: time.Second,
			BatchSize:    10,
			MaxAttempts:  5,
		})

		require.NoError(t, p.processBatch(ctx))
		assert.Empty(t, producer.messages)
		assert.Empty(t, repo.processing)
	})
}

func TestProducerSink(t *testing.T) {
	producer := &recordingProducer{}
	sink := NewProducerSink(producer, "custody_events", zap.NewNop())

	sink.Emit(context.Background(), "possession_confirmed", map[string]string{"unit_number": "MSKU1234567"})

	require.Len(t, producer.messages, 1)
	assert.Equal(t, "custody_events", producer.messages[0].topic)
	assert.Equal(t, "possession_confirmed", producer.messages[0].key)

	var envelope struct {
		Type    string            `json:"type"`
		Payload map[string]string `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(producer.messages[0].value, &envelope))
	assert.Equal(t, "possession_confirmed", envelope.Type)
	assert.Equal(t, "MSKU1234567", envelope.Payload["unit_number"])
}

func TestOutboxSink(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_db.NewMockDB(ctrl)

	var created *repository.OutboxTask
	repo := &fakeOutboxCreator{create: func(task *repository.OutboxTask) error {
		created = task
		return nil
	}}

	sink := NewOutboxSink(mockDB, repo, "custody_events", zap.NewNop())
	sink.Emit(context.Background(), "handoff_initiated", map[string]string{"unit_number": "MSKU1234567"})

	require.NotNil(t, created)
	assert.Equal(t, "custody_events", created.Topic)
	assert.Contains(t, string(created.Payload), `"handoff_initiated"`)
}

type fakeOutboxCreator struct {
	create func(task *repository.OutboxTask) error
}

func (f *fakeOutboxCreator) Create(ctx context.Context, database db.DB, task *repository.OutboxTask) error {
	return f.create(task)
}
