package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go-pos/internal/events"
	"go-pos/internal/messaging/kafka"
	"go-pos/internal/store"
	"go-pos/internal/store/memstore"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	repo := kafka.NewOutboxRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count",
	}).AddRow("ev-1", "req-1", "branches", "BR1", "branches.created", events.EntityChangedTopic, []byte(`{}`), "pending", 0)

	mock.ExpectQuery("FROM outbox_events").
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, 10).
		WillReturnRows(rows)

	pending, err := repo.ListPending(context.Background(), 10)
	assert.NoError(t, err)
	assert.Len(t, pending, 1)
	assert.Equal(t, "BR1", pending[0].AggregateID)
	assert.Equal(t, "req-1", pending[0].RequestID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_Mark(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	repo := kafka.NewOutboxRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE outbox_events").
		WithArgs("ev-1", kafka.OutboxStatusSent).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.MarkSent(ctx, "ev-1"))

	mock.ExpectExec("UPDATE outbox_events").
		WithArgs("ev-2", kafka.OutboxStatusFailed, "broker down").
		WillReturnError(errors.New("db gone"))
	assert.Error(t, repo.MarkFailed(ctx, "ev-2", "broker down"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecorder_RecordEntityChanged(t *testing.T) {
	db := memstore.New()
	table := memstore.NewTable[kafka.OutboxEvent](db)
	rec := kafka.NewRecorder(table)
	ctx := context.Background()

	ev := events.EntityChangedEvent{
		EventType:  events.EventType("products", events.ActionCreated),
		Resource:   "products",
		Key:        "7",
		BusinessID: "B1",
		ActorID:    "u-1",
	}
	assert.NoError(t, rec.RecordEntityChanged(ctx, ev))

	row, err := table.First(ctx, store.Filter{store.Eq("aggregate_id", "7")})
	assert.NoError(t, err)
	assert.Equal(t, kafka.OutboxStatusPending, row.Status)
	assert.Equal(t, events.EntityChangedTopic, row.Topic)

	var decoded events.EntityChangedEvent
	assert.NoError(t, json.Unmarshal(row.Payload, &decoded))
	assert.Equal(t, "products.created", decoded.EventType)
}

func TestValidateOutboxEvent(t *testing.T) {
	assert.Error(t, kafka.ValidateOutboxEvent(kafka.OutboxEvent{}))
	assert.Error(t, kafka.ValidateOutboxEvent(kafka.OutboxEvent{ID: "1", Topic: "t", Payload: []byte("x"), Status: "weird"}))
	assert.NoError(t, kafka.ValidateOutboxEvent(kafka.OutboxEvent{ID: "1", Topic: "t", Payload: []byte("x"), Status: kafka.OutboxStatusPending}))
}
