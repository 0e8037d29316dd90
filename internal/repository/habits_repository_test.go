package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/cadence/internal/error_values"
	"github.com/limbo/cadence/internal/repository"
	"github.com/limbo/cadence/pkg/entity"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
)

func TestCreateHabit(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewHabitsRepoWithConn(conn)
	habit := entity.Habit{
		UserID:      uuid.New(),
		Title:       "morning run",
		Description: "5km before work",
		Recurrence:  entity.RecurrenceSpec{Kind: entity.RecurrenceAllDays},
	}
	habitID := uuid.New()
	query := regexp.QuoteMeta(`INSERT INTO habits (user_id, title, description, recurrence) VALUES ($1, $2, $3, $4) RETURNING id;`)
	t.Run("created", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(habit.UserID, habit.Title, habit.Description, pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(habitID))
		id, err := repo.Create(ctx, &habit)
		assert.NoError(t, err)
		assert.Equal(t, habitID, id)
	})
	t.Run("duplicate title for user", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(habit.UserID, habit.Title, habit.Description, pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505"})
		_, err := repo.Create(ctx, &habit)
		assert.ErrorIs(t, err, errorvalues.ErrUserHasHabit)
	})
	t.Run("owner does not exist", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(habit.UserID, habit.Title, habit.Description, pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23503"})
		_, err := repo.Create(ctx, &habit)
		assert.ErrorIs(t, err, errorvalues.ErrOwnerNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(habit.UserID, habit.Title, habit.Description, pgxmock.AnyArg()).
			WillReturnError(errors.New("db error"))
		_, err := repo.Create(ctx, &habit)
		assert.Error(t, err)
	})
}

func TestApplyTick(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewHabitsRepoWithConn(conn)
	habitID := uuid.New()
	userID := uuid.New()
	day := "2025-03-14"
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	insertQuery := regexp.QuoteMeta(`INSERT INTO habit_ticks (habit_id, tick_day) VALUES ($1, $2) ON CONFLICT DO NOTHING;`)
	updateQuery := regexp.QuoteMeta(`UPDATE habits SET streak = streak + 1, last_tick = $2, updated_at = NOW() WHERE id = $1 RETURNING streak, last_tick;`)
	selectQuery := regexp.QuoteMeta(`SELECT streak, last_tick FROM habits WHERE id = $1;`)
	eventQuery := regexp.QuoteMeta(`INSERT INTO events (user_id, entity_id, type, payload) VALUES ($1, $2, $3, $4);`)

	t.Run("applied", func(t *testing.T) {
		conn.ExpectBegin()
		conn.ExpectExec(insertQuery).WithArgs(habitID, day).WillReturnResult(pgxmock.NewResult("INSERT", 1))
		conn.ExpectQuery(updateQuery).WithArgs(habitID, now).
			WillReturnRows(pgxmock.NewRows([]string{"streak", "last_tick"}).AddRow(5, now))
		conn.ExpectExec(eventQuery).
			WithArgs(userID, habitID, entity.EventHabitSuccess, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		conn.ExpectCommit()
		result, err := repo.ApplyTick(ctx, habitID, userID, day, now)
		assert.NoError(t, err)
		assert.True(t, result.Applied)
		assert.Equal(t, 5, result.Streak)
	})
	t.Run("repeat is a no-op with current state", func(t *testing.T) {
		conn.ExpectBegin()
		conn.ExpectExec(insertQuery).WithArgs(habitID, day).WillReturnResult(pgxmock.NewResult("INSERT", 0))
		conn.ExpectQuery(selectQuery).WithArgs(habitID).
			WillReturnRows(pgxmock.NewRows([]string{"streak", "last_tick"}).AddRow(5, now))
		conn.ExpectCommit()
		result, err := repo.ApplyTick(ctx, habitID, userID, day, now)
		assert.NoError(t, err)
		assert.False(t, result.Applied)
		assert.Equal(t, 5, result.Streak)
	})
	t.Run("habit gone between lookup and tick", func(t *testing.T) {
		conn.ExpectBegin()
		conn.ExpectExec(insertQuery).WithArgs(habitID, day).WillReturnError(&pgconn.PgError{Code: "23503"})
		conn.ExpectRollback()
		_, err := repo.ApplyTick(ctx, habitID, userID, day, now)
		assert.ErrorIs(t, err, errorvalues.ErrHabitNotFound)
	})
	t.Run("streak update finds no row", func(t *testing.T) {
		conn.ExpectBegin()
		conn.ExpectExec(insertQuery).WithArgs(habitID, day).WillReturnResult(pgxmock.NewResult("INSERT", 1))
		conn.ExpectQuery(updateQuery).WithArgs(habitID, now).WillReturnError(pgx.ErrNoRows)
		conn.ExpectRollback()
		_, err := repo.ApplyTick(ctx, habitID, userID, day, now)
		assert.ErrorIs(t, err, errorvalues.ErrHabitNotFound)
	})
	t.Run("begin error", func(t *testing.T) {
		conn.ExpectBegin().WillReturnError(errors.New("db down"))
		_, err := repo.ApplyTick(ctx, habitID, userID, day, now)
		assert.Error(t, err)
	})
}

func TestTickExists(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewHabitsRepoWithConn(conn)
	habitID := uuid.New()
	day := "2025-03-14"
	query := regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM habit_ticks WHERE habit_id = $1 AND tick_day = $2);`)
	t.Run("exists", func(t *testing.T) {
		conn.ExpectQuery(query).WithArgs(habitID, day).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
		exists, err := repo.TickExists(ctx, habitID, day)
		assert.NoError(t, err)
		assert.True(t, exists)
	})
	t.Run("missing", func(t *testing.T) {
		conn.ExpectQuery(query).WithArgs(habitID, day).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
		exists, err := repo.TickExists(ctx, habitID, day)
		assert.NoError(t, err)
		assert.False(t, exists)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).WithArgs(habitID, day).WillReturnError(errors.New("db error"))
		_, err := repo.TickExists(ctx, habitID, day)
		assert.Error(t, err)
	})
}

func TestCountTicks(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewHabitsRepoWithConn(conn)
	habitID := uuid.New()
	query := regexp.QuoteMeta(`SELECT COUNT(*) FROM habit_ticks WHERE habit_id = $1;`)
	t.Run("counted", func(t *testing.T) {
		conn.ExpectQuery(query).WithArgs(habitID).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(42))
		count, err := repo.CountTicks(ctx, habitID)
		assert.NoError(t, err)
		assert.Equal(t, 42, count)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).WithArgs(habitID).WillReturnError(errors.New("db error"))
		_, err := repo.CountTicks(ctx, habitID)
		assert.Error(t, err)
	})
}
