package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/cadence/internal/error_values"
	"github.com/limbo/cadence/pkg/cleanup"
	"github.com/limbo/cadence/pkg/entity"
)

type HabitsRepository struct {
	conn PgConnection
}

func NewHabitsRepo(cfg DBConfig) *HabitsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for habitsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for habitsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &HabitsRepository{
		conn: pool,
	}
}

func NewHabitsRepoWithConn(conn PgConnection) *HabitsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for habitsRepo: " + err.Error())
	}
	return &HabitsRepository{
		conn: conn,
	}
}

func (hr *HabitsRepository) Create(ctx context.Context, habit *entity.Habit) (uuid.UUID, error) {
	recurrence, err := sonic.Marshal(habit.Recurrence)
	if err != nil {
		return uuid.UUID{}, errors.New("marshalling recurrence error: " + err.Error())
	}
	var id uuid.UUID
	row := hr.conn.QueryRow(ctx, `INSERT INTO habits (user_id, title, description, recurrence) VALUES ($1, $2, $3, $4) RETURNING id;`,
		habit.UserID,
		habit.Title,
		habit.Description,
		recurrence,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return uuid.UUID{}, errorvalues.ErrUserHasHabit
			// FK violation
			case "23503":
				return uuid.UUID{}, errorvalues.ErrOwnerNotFound
			}
		}
		return uuid.UUID{}, errors.New("creating habit db error: " + err.Error())
	}
	return id, nil
}

func (hr *HabitsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Habit, error) {
	var habit entity.Habit
	var recurrence []byte
	habit.ID = id
	row := hr.conn.QueryRow(ctx, `SELECT user_id, title, description, recurrence, streak, last_tick, created_at, updated_at FROM habits WHERE id = $1;`, id)
	if err := row.Scan(&habit.UserID, &habit.Title, &habit.Description, &recurrence, &habit.Streak, &habit.LastTick, &habit.CreatedAt, &habit.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrHabitNotFound
		}
		return nil, errors.New("getting habit by id error: " + err.Error())
	}
	if err := sonic.Unmarshal(recurrence, &habit.Recurrence); err != nil {
		return nil, errors.New("unmarshalling recurrence error: " + err.Error())
	}
	return &habit, nil
}

func (hr *HabitsRepository) GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Habit, error) {
	habits := make([]*entity.Habit, 0)
	rows, err := hr.conn.Query(ctx, `SELECT id, user_id, title, description, recurrence, streak, last_tick, created_at, updated_at
		FROM habits WHERE user_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3;`, uid, limit, offset)
	if err != nil {
		return nil, errors.New("getting habits by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		h := entity.Habit{}
		var recurrence []byte
		err = rows.Scan(&h.ID, &h.UserID, &h.Title, &h.Description, &recurrence, &h.Streak, &h.LastTick, &h.CreatedAt, &h.UpdatedAt)
		if err != nil {
			return nil, errors.New("unmarshalling habit error: " + err.Error())
		}
		if err = sonic.Unmarshal(recurrence, &h.Recurrence); err != nil {
			return nil, errors.New("unmarshalling recurrence error: " + err.Error())
		}
		habits = append(habits, &h)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return habits, nil
}

func (hr *HabitsRepository) Update(ctx context.Context, habit *entity.Habit) error {
	recurrence, err := sonic.Marshal(habit.Recurrence)
	if err != nil {
		return errors.New("marshalling recurrence error: " + err.Error())
	}
	ct, err := hr.conn.Exec(ctx, `UPDATE habits SET title = $1, description = $2, recurrence = $3, updated_at = NOW() WHERE id = $4;`,
		habit.Title, habit.Description, recurrence, habit.ID,
	)
	if err != nil {
		return errors.New("error updating habit: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrHabitNotFound
	}
	return nil
}

func (hr *HabitsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := hr.conn.Exec(ctx, `DELETE FROM habits WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting habit: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrHabitNotFound
	}
	return nil
}

// ApplyTick is the once-per-day mutation. The unique (habit_id, tick_day)
// insert decides the race: whoever gets the row in bumps the streak and
// appends the habit_success event, everyone else reads the winner's state.
// All of it happens in one transaction so readers never observe a tick row
// without its streak increment.
func (hr *HabitsRepository) ApplyTick(ctx context.Context, habitID, userID uuid.UUID, day string, now time.Time) (*TickResult, error) {
	tx, err := hr.conn.Begin(ctx)
	if err != nil {
		return nil, errors.New("beginning tick tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx, `INSERT INTO habit_ticks (habit_id, tick_day) VALUES ($1, $2) ON CONFLICT DO NOTHING;`, habitID, day)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, errorvalues.ErrHabitNotFound
		}
		return nil, errors.New("inserting tick error: " + err.Error())
	}
	result := TickResult{}
	if ct.RowsAffected() == 0 {
		// Already ticked today: no-op, report current state
		row := tx.QueryRow(ctx, `SELECT streak, last_tick FROM habits WHERE id = $1;`, habitID)
		if err = row.Scan(&result.Streak, &result.LastTick); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, errorvalues.ErrHabitNotFound
			}
			return nil, errors.New("reading habit state error: " + err.Error())
		}
		if err = tx.Commit(ctx); err != nil {
			return nil, errors.New("committing tick tx error: " + err.Error())
		}
		return &result, nil
	}

	row := tx.QueryRow(ctx, `UPDATE habits SET streak = streak + 1, last_tick = $2, updated_at = NOW() WHERE id = $1 RETURNING streak, last_tick;`, habitID, now)
	if err = row.Scan(&result.Streak, &result.LastTick); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrHabitNotFound
		}
		return nil, errors.New("incrementing streak error: " + err.Error())
	}
	payload, err := sonic.Marshal(map[string]any{"day": day, "streak": result.Streak})
	if err != nil {
		return nil, errors.New("marshalling tick payload error: " + err.Error())
	}
	_, err = tx.Exec(ctx, `INSERT INTO events (user_id, entity_id, type, payload) VALUES ($1, $2, $3, $4);`,
		userID, habitID, entity.EventHabitSuccess, payload)
	if err != nil {
		return nil, errors.New("appending tick event error: " + err.Error())
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, errors.New("committing tick tx error: " + err.Error())
	}
	result.Applied = true
	return &result, nil
}

func (hr *HabitsRepository) TickExists(ctx context.Context, habitID uuid.UUID, day string) (bool, error) {
	var exists bool
	row := hr.conn.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM habit_ticks WHERE habit_id = $1 AND tick_day = $2);`, habitID, day)
	if err := row.Scan(&exists); err != nil {
		return false, errors.New("inspecting if tick exists error: " + err.Error())
	}
	return exists, nil
}

func (hr *HabitsRepository) CountTicks(ctx context.Context, habitID uuid.UUID) (int, error) {
	var count int
	row := hr.conn.QueryRow(ctx, `SELECT COUNT(*) FROM habit_ticks WHERE habit_id = $1;`, habitID)
	if err := row.Scan(&count); err != nil {
		return 0, errors.New("error counting ticks: " + err.Error())
	}
	return count, nil
}

func (hr *HabitsRepository) ListActiveUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := hr.conn.Query(ctx, `SELECT DISTINCT user_id FROM habits WHERE streak > 0;`)
	if err != nil {
		return nil, errors.New("listing active users error: " + err.Error())
	}
	defer rows.Close()
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err = rows.Scan(&id); err != nil {
			return nil, errors.New("scanning user id error: " + err.Error())
		}
		ids = append(ids, id)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return ids, nil
}
