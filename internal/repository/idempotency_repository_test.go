package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/limbo/cadence/internal/repository"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
)

func TestIdempotencyApply(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewIdempotencyRepoWithConn(conn)
	entityID := uuid.New()
	key := "streak_at_risk:2025-03-14"
	query := regexp.QuoteMeta(`INSERT INTO idempotency_keys (entity_id, key) VALUES ($1, $2) ON CONFLICT DO NOTHING;`)
	t.Run("first apply wins", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(entityID, key).WillReturnResult(pgxmock.NewResult("INSERT", 1))
		applied, err := repo.Apply(ctx, entityID, key)
		assert.NoError(t, err)
		assert.True(t, applied)
	})
	t.Run("repeat apply loses", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(entityID, key).WillReturnResult(pgxmock.NewResult("INSERT", 0))
		applied, err := repo.Apply(ctx, entityID, key)
		assert.NoError(t, err)
		assert.False(t, applied)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(entityID, key).WillReturnError(errors.New("db error"))
		_, err := repo.Apply(ctx, entityID, key)
		assert.Error(t, err)
	})
}
