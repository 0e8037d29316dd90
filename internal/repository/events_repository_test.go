package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/limbo/cadence/internal/repository"
	"github.com/limbo/cadence/pkg/entity"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
)

func TestAppendOnce(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewEventsRepoWithConn(conn)
	userID := uuid.New()
	alarmID := uuid.New()
	key := "fire:2025-03-14T07:30:00Z"
	event := &entity.Event{
		UserID:   userID,
		EntityID: alarmID,
		Type:     entity.EventAlarmFire,
		Payload:  []byte(`{"label":"wake up"}`),
	}
	keyQuery := regexp.QuoteMeta(`INSERT INTO idempotency_keys (entity_id, key) VALUES ($1, $2) ON CONFLICT DO NOTHING;`)
	eventQuery := regexp.QuoteMeta(`INSERT INTO events (user_id, entity_id, type, payload) VALUES ($1, $2, $3, $4);`)

	t.Run("first delivery claims the key and writes the event", func(t *testing.T) {
		conn.ExpectBegin()
		conn.ExpectExec(keyQuery).WithArgs(alarmID, key).WillReturnResult(pgxmock.NewResult("INSERT", 1))
		conn.ExpectExec(eventQuery).WithArgs(userID, alarmID, entity.EventAlarmFire, event.Payload).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		conn.ExpectCommit()
		applied, err := repo.AppendOnce(ctx, event, key)
		assert.NoError(t, err)
		assert.True(t, applied)
	})
	t.Run("redelivery writes nothing", func(t *testing.T) {
		conn.ExpectBegin()
		conn.ExpectExec(keyQuery).WithArgs(alarmID, key).WillReturnResult(pgxmock.NewResult("INSERT", 0))
		conn.ExpectCommit()
		applied, err := repo.AppendOnce(ctx, event, key)
		assert.NoError(t, err)
		assert.False(t, applied)
	})
	t.Run("failed event insert rolls the claim back", func(t *testing.T) {
		conn.ExpectBegin()
		conn.ExpectExec(keyQuery).WithArgs(alarmID, key).WillReturnResult(pgxmock.NewResult("INSERT", 1))
		conn.ExpectExec(eventQuery).WithArgs(userID, alarmID, entity.EventAlarmFire, event.Payload).
			WillReturnError(errors.New("db error"))
		conn.ExpectRollback()
		_, err := repo.AppendOnce(ctx, event, key)
		assert.Error(t, err)
	})
	t.Run("begin error", func(t *testing.T) {
		conn.ExpectBegin().WillReturnError(errors.New("db down"))
		_, err := repo.AppendOnce(ctx, event, key)
		assert.Error(t, err)
	})
}
