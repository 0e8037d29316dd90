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

type AntiHabitsRepository struct {
	conn PgConnection
}

func NewAntiHabitsRepo(cfg DBConfig) *AntiHabitsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for antiHabitsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for antiHabitsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &AntiHabitsRepository{
		conn: pool,
	}
}

func NewAntiHabitsRepoWithConn(conn PgConnection) *AntiHabitsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for antiHabitsRepo: " + err.Error())
	}
	return &AntiHabitsRepository{
		conn: conn,
	}
}

func (ar *AntiHabitsRepository) Create(ctx context.Context, ah *entity.AntiHabit) (uuid.UUID, error) {
	window, err := sonic.Marshal(ah.DangerWindow)
	if err != nil {
		return uuid.UUID{}, errors.New("marshalling danger window error: " + err.Error())
	}
	var id uuid.UUID
	row := ar.conn.QueryRow(ctx, `INSERT INTO anti_habits (user_id, name, danger_window) VALUES ($1, $2, $3) RETURNING id;`,
		ah.UserID, ah.Name, window)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return uuid.UUID{}, errorvalues.ErrOwnerNotFound
		}
		return uuid.UUID{}, errors.New("creating anti-habit db error: " + err.Error())
	}
	return id, nil
}

func (ar *AntiHabitsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.AntiHabit, error) {
	var ah entity.AntiHabit
	var window []byte
	ah.ID = id
	row := ar.conn.QueryRow(ctx, `SELECT user_id, name, clean_streak, danger_window, last_slip, created_at FROM anti_habits WHERE id = $1;`, id)
	if err := row.Scan(&ah.UserID, &ah.Name, &ah.CleanStreak, &window, &ah.LastSlip, &ah.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrAntiHabitNotFound
		}
		return nil, errors.New("getting anti-habit by id error: " + err.Error())
	}
	if err := sonic.Unmarshal(window, &ah.DangerWindow); err != nil {
		return nil, errors.New("unmarshalling danger window error: " + err.Error())
	}
	return &ah, nil
}

func (ar *AntiHabitsRepository) GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.AntiHabit, error) {
	rows, err := ar.conn.Query(ctx, `SELECT id, user_id, name, clean_streak, danger_window, last_slip, created_at FROM anti_habits WHERE user_id = $1 ORDER BY created_at;`, uid)
	if err != nil {
		return nil, errors.New("getting anti-habits by uid error: " + err.Error())
	}
	defer rows.Close()
	result := make([]*entity.AntiHabit, 0)
	for rows.Next() {
		ah := entity.AntiHabit{}
		var window []byte
		err = rows.Scan(&ah.ID, &ah.UserID, &ah.Name, &ah.CleanStreak, &window, &ah.LastSlip, &ah.CreatedAt)
		if err != nil {
			return nil, errors.New("unmarshalling anti-habit error: " + err.Error())
		}
		if err = sonic.Unmarshal(window, &ah.DangerWindow); err != nil {
			return nil, errors.New("unmarshalling danger window error: " + err.Error())
		}
		result = append(result, &ah)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return result, nil
}

func (ar *AntiHabitsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := ar.conn.Exec(ctx, `DELETE FROM anti_habits WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting anti-habit: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrAntiHabitNotFound
	}
	return nil
}

// RecordSlip resets the clean streak and appends the slip event in one
// transaction so the ledger never shows a slip the entity state disagrees with.
func (ar *AntiHabitsRepository) RecordSlip(ctx context.Context, id, userID uuid.UUID, at time.Time) error {
	tx, err := ar.conn.Begin(ctx)
	if err != nil {
		return errors.New("beginning slip tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx, `UPDATE anti_habits SET clean_streak = 0, last_slip = $2 WHERE id = $1;`, id, at)
	if err != nil {
		return errors.New("recording slip error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrAntiHabitNotFound
	}
	payload, err := sonic.Marshal(map[string]any{"at": at})
	if err != nil {
		return errors.New("marshalling slip payload error: " + err.Error())
	}
	_, err = tx.Exec(ctx, `INSERT INTO events (user_id, entity_id, type, payload) VALUES ($1, $2, $3, $4);`,
		userID, id, entity.EventAntiHabitSlip, payload)
	if err != nil {
		return errors.New("appending slip event error: " + err.Error())
	}
	if err = tx.Commit(ctx); err != nil {
		return errors.New("committing slip tx error: " + err.Error())
	}
	return nil
}

func (ar *AntiHabitsRepository) IncrementCleanStreak(ctx context.Context, id uuid.UUID) error {
	ct, err := ar.conn.Exec(ctx, `UPDATE anti_habits SET clean_streak = clean_streak + 1 WHERE id = $1;`, id)
	if err != nil {
		return errors.New("incrementing clean streak error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrAntiHabitNotFound
	}
	return nil
}

func (ar *AntiHabitsRepository) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := ar.conn.Query(ctx, `SELECT DISTINCT user_id FROM anti_habits;`)
	if err != nil {
		return nil, errors.New("listing anti-habit users error: " + err.Error())
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
