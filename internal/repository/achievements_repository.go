package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/cadence/internal/error_values"
	"github.com/limbo/cadence/pkg/cleanup"
	"github.com/limbo/cadence/pkg/entity"
)

type AchievementsRepository struct {
	conn PgConnection
}

func NewAchievementsRepo(cfg DBConfig) *AchievementsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for achievementsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for achievementsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &AchievementsRepository{
		conn: pool,
	}
}

func NewAchievementsRepoWithConn(conn PgConnection) *AchievementsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for achievementsRepo: " + err.Error())
	}
	return &AchievementsRepository{
		conn: conn,
	}
}

// InsertUnlock relies on the unique (user_id, habit_id, achievement_id)
// constraint for single-unlock semantics: losers of a race see created=false
// and the winner's row id.
func (achr *AchievementsRepository) InsertUnlock(ctx context.Context, userID, habitID uuid.UUID, achievementID string, at time.Time) (int64, bool, error) {
	var id int64
	row := achr.conn.QueryRow(ctx, `INSERT INTO achievement_unlocks (user_id, habit_id, achievement_id, unlocked_at)
		VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING RETURNING id;`,
		userID, habitID, achievementID, at)
	err := row.Scan(&id)
	if err == nil {
		return id, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return 0, false, errorvalues.ErrOwnerNotFound
		}
		return 0, false, errors.New("inserting unlock error: " + err.Error())
	}
	// Conflict path: the unlock already exists, fetch its id
	row = achr.conn.QueryRow(ctx, `SELECT id FROM achievement_unlocks WHERE user_id = $1 AND habit_id = $2 AND achievement_id = $3;`,
		userID, habitID, achievementID)
	if err = row.Scan(&id); err != nil {
		return 0, false, errors.New("reading existing unlock error: " + err.Error())
	}
	return id, false, nil
}

func (achr *AchievementsRepository) ListUnlocks(ctx context.Context, userID uuid.UUID) ([]entity.AchievementUnlock, error) {
	rows, err := achr.conn.Query(ctx, `SELECT id, user_id, habit_id, achievement_id, unlocked_at FROM achievement_unlocks WHERE user_id = $1 ORDER BY unlocked_at;`, userID)
	if err != nil {
		return nil, errors.New("listing unlocks error: " + err.Error())
	}
	defer rows.Close()
	unlocks := make([]entity.AchievementUnlock, 0)
	for rows.Next() {
		u := entity.AchievementUnlock{}
		err = rows.Scan(&u.ID, &u.UserID, &u.HabitID, &u.AchievementID, &u.UnlockedAt)
		if err != nil {
			return nil, errors.New("unlock row parsing error: " + err.Error())
		}
		unlocks = append(unlocks, u)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected unlock rows error: " + rows.Err().Error())
	}
	return unlocks, nil
}

func (achr *AchievementsRepository) AddCelebration(ctx context.Context, userID uuid.UUID, unlockID int64) error {
	_, err := achr.conn.Exec(ctx, `INSERT INTO celebration_queue (user_id, unlock_id) VALUES ($1, $2);`, userID, unlockID)
	if err != nil {
		return errors.New("queueing celebration error: " + err.Error())
	}
	return nil
}

func (achr *AchievementsRepository) ListCelebrations(ctx context.Context, userID uuid.UUID) ([]entity.CelebrationEntry, error) {
	rows, err := achr.conn.Query(ctx, `SELECT id, user_id, unlock_id, created_at FROM celebration_queue WHERE user_id = $1 ORDER BY id;`, userID)
	if err != nil {
		return nil, errors.New("listing celebrations error: " + err.Error())
	}
	defer rows.Close()
	entries := make([]entity.CelebrationEntry, 0)
	for rows.Next() {
		c := entity.CelebrationEntry{}
		err = rows.Scan(&c.ID, &c.UserID, &c.UnlockID, &c.CreatedAt)
		if err != nil {
			return nil, errors.New("celebration row parsing error: " + err.Error())
		}
		entries = append(entries, c)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected celebration rows error: " + rows.Err().Error())
	}
	return entries, nil
}

// AckCelebration drains one entry; unlock rows themselves stay immutable.
func (achr *AchievementsRepository) AckCelebration(ctx context.Context, userID uuid.UUID, id int64) error {
	ct, err := achr.conn.Exec(ctx, `DELETE FROM celebration_queue WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		return errors.New("acking celebration error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrCelebrationNotFound
	}
	return nil
}
