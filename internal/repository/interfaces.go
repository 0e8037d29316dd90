package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/cadence/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user in database
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by name. Can be used for login
	FindByName(ctx context.Context, name string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Updates user's info
	Update(ctx context.Context, user *entity.User) error
	// Deletes user
	Delete(ctx context.Context, uid uuid.UUID) error
}

// TickResult is what ApplyTick reports back: whether this call won the
// per-day insert, and the streak state after the winning call.
type TickResult struct {
	Applied  bool
	Streak   int
	LastTick time.Time
}

type HabitsRepositoryI interface {
	// Creates new habit. Only UserID, Title, Description, Recurrence are necessary
	Create(ctx context.Context, habit *entity.Habit) (uuid.UUID, error)
	// Searches habit with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Habit, error)
	// Lists habits owned by user with uid. Requires pagination params provided
	GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Habit, error)
	// Updates habit title/description/recurrence by ID
	Update(ctx context.Context, habit *entity.Habit) error
	// Deletes habit with id
	Delete(ctx context.Context, id uuid.UUID) error
	// Applies the once-per-day tick: unique insert of (habit, day), streak
	// increment and habit_success event in one transaction. Losers of the
	// per-day race get Applied=false and the winner's state.
	ApplyTick(ctx context.Context, habitID, userID uuid.UUID, day string, now time.Time) (*TickResult, error)
	// Whether a tick row exists for the given day
	TickExists(ctx context.Context, habitID uuid.UUID, day string) (bool, error)
	// Total tick count for the habit
	CountTicks(ctx context.Context, habitID uuid.UUID) (int, error)
	// Users owning at least one habit with a running streak, for the
	// evening at-risk pass
	ListActiveUserIDs(ctx context.Context) ([]uuid.UUID, error)
}

type AntiHabitsRepositoryI interface {
	Create(ctx context.Context, ah *entity.AntiHabit) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.AntiHabit, error)
	GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.AntiHabit, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Resets clean streak, stamps last slip and appends the antihabit_slip
	// event in one transaction
	RecordSlip(ctx context.Context, id, userID uuid.UUID, at time.Time) error
	// Bumps clean streak by one, used by the nightly pass
	IncrementCleanStreak(ctx context.Context, id uuid.UUID) error
	ListUserIDs(ctx context.Context) ([]uuid.UUID, error)
}

type AlarmsRepositoryI interface {
	Create(ctx context.Context, alarm *entity.Alarm) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Alarm, error)
	GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Alarm, error)
	Update(ctx context.Context, alarm *entity.Alarm) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error
	// Moves the alarm through its lifecycle and records the next fire
	// instant (nil clears it)
	SetState(ctx context.Context, id uuid.UUID, status entity.AlarmStatus, nextFireAt *time.Time) error
}

type EventsFilter struct {
	UserID   *uuid.UUID
	EntityID *uuid.UUID
	Type     *entity.EventType
	From     *time.Time
	To       *time.Time
	Limit    int
}

type EventsRepositoryI interface {
	// Appends one ledger entry. Entries are immutable once written
	Append(ctx context.Context, event *entity.Event) error
	// Appends the entry only when the (entity, key) idempotency slot is
	// still free; false means an earlier delivery already wrote it
	AppendOnce(ctx context.Context, event *entity.Event, key string) (bool, error)
	Query(ctx context.Context, filter EventsFilter) ([]entity.Event, error)
	// Whether an event of the given type exists for the entity with
	// created_at inside [from, to]. Both bounds inclusive
	ExistsInRange(ctx context.Context, entityID uuid.UUID, typ entity.EventType, from, to time.Time) (bool, error)
}

type AchievementsRepositoryI interface {
	// Inserts the unlock unless (user, habit, achievement) already exists.
	// Reports the row id and whether this call created it
	InsertUnlock(ctx context.Context, userID, habitID uuid.UUID, achievementID string, at time.Time) (int64, bool, error)
	ListUnlocks(ctx context.Context, userID uuid.UUID) ([]entity.AchievementUnlock, error)
	AddCelebration(ctx context.Context, userID uuid.UUID, unlockID int64) error
	ListCelebrations(ctx context.Context, userID uuid.UUID) ([]entity.CelebrationEntry, error)
	AckCelebration(ctx context.Context, userID uuid.UUID, id int64) error
}

// IdempotencyRepositoryI is the generic at-most-once guard: the first Apply
// for a (entity, key) pair reports true, every later one false.
type IdempotencyRepositoryI interface {
	Apply(ctx context.Context, entityID uuid.UUID, key string) (bool, error)
}

type JobsRepositoryI interface {
	// Adds a delayed job. Jobs survive restarts; the worker claims them once due
	Enqueue(ctx context.Context, kind, key string, runAt time.Time, payload []byte) (int64, error)
	// Cancels every pending job with the given key
	CancelByKey(ctx context.Context, key string) error
	// Atomically moves due pending jobs to running and returns them.
	// Concurrent workers never claim the same row
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]entity.Job, error)
	MarkDone(ctx context.Context, id int64) error
	// Requeues running jobs claimed before the deadline; recovery after a
	// crashed worker, gives at-least-once delivery
	ReleaseStale(ctx context.Context, claimedBefore time.Time) (int, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
