package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	errorvalues "github.com/limbo/cadence/internal/error_values"
	"github.com/limbo/cadence/internal/repository"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
)

func TestInsertUnlock(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewAchievementsRepoWithConn(conn)
	userID := uuid.New()
	habitID := uuid.New()
	at := time.Now()
	insertQuery := regexp.QuoteMeta(`INSERT INTO achievement_unlocks (user_id, habit_id, achievement_id, unlocked_at)
		VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING RETURNING id;`)
	selectQuery := regexp.QuoteMeta(`SELECT id FROM achievement_unlocks WHERE user_id = $1 AND habit_id = $2 AND achievement_id = $3;`)
	t.Run("created", func(t *testing.T) {
		conn.ExpectQuery(insertQuery).
			WithArgs(userID, habitID, "one_month", at).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
		id, created, err := repo.InsertUnlock(ctx, userID, habitID, "one_month", at)
		assert.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, int64(7), id)
	})
	t.Run("already unlocked", func(t *testing.T) {
		conn.ExpectQuery(insertQuery).
			WithArgs(userID, habitID, "one_month", at).
			WillReturnError(pgx.ErrNoRows)
		conn.ExpectQuery(selectQuery).
			WithArgs(userID, habitID, "one_month").
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
		id, created, err := repo.InsertUnlock(ctx, userID, habitID, "one_month", at)
		assert.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, int64(7), id)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(insertQuery).
			WithArgs(userID, habitID, "one_month", at).
			WillReturnError(errors.New("db error"))
		_, _, err := repo.InsertUnlock(ctx, userID, habitID, "one_month", at)
		assert.Error(t, err)
	})
}

func TestAckCelebration(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewAchievementsRepoWithConn(conn)
	userID := uuid.New()
	query := regexp.QuoteMeta(`DELETE FROM celebration_queue WHERE id = $1 AND user_id = $2;`)
	t.Run("acked", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(int64(3), userID).WillReturnResult(pgxmock.NewResult("DELETE", 1))
		err := repo.AckCelebration(ctx, userID, 3)
		assert.NoError(t, err)
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(int64(3), userID).WillReturnResult(pgxmock.NewResult("DELETE", 0))
		err := repo.AckCelebration(ctx, userID, 3)
		assert.ErrorIs(t, err, errorvalues.ErrCelebrationNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(int64(3), userID).WillReturnError(errors.New("db error"))
		err := repo.AckCelebration(ctx, userID, 3)
		assert.Error(t, err)
	})
}
