package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/cadence/pkg/entity"
)

type RegisterRequest struct {
	Name     string `validate:"required,alphanum_underscore,min=3,max=100"`
	Password string `validate:"required,min=8,max=72"`
	Timezone string `validate:"omitempty,iana_timezone"`
}

type CreateHabitRequest struct {
	Title       string `validate:"required,min=1,max=200"`
	Description string `validate:"max=2000"`
	Recurrence  entity.RecurrenceSpec
}

type UpdateHabitRequest struct {
	Title       string `validate:"required,min=1,max=200"`
	Description string `validate:"max=2000"`
	Recurrence  entity.RecurrenceSpec
}

type CreateAntiHabitRequest struct {
	Name         string `validate:"required,min=1,max=200"`
	DangerWindow []int  `validate:"dive,min=0,max=23"`
}

type CreateAlarmRequest struct {
	Label      string `validate:"required,min=1,max=200"`
	Recurrence entity.RecurrenceSpec
	// Wall-clock firing time for recurring alarms
	TimeOfDay string `validate:"omitempty,len=5"`
	// Explicit instant for one-shot alarms
	FireAt *time.Time
	Tone   string `validate:"max=100"`
	Meta   map[string]string
}

type PaginationOpts struct {
	Limit  int
	Offset int
}

// TickOutcome is what a tick call reports. Idempotent repeats return the
// winner's streak with Applied=false, never an error.
type TickOutcome struct {
	Applied  bool
	Streak   int
	LastTick time.Time
	// Achievements newly unlocked by this tick, empty on repeats
	Unlocked []entity.Achievement
}

type SlipOutcome struct {
	// Whether the slip's hour fell inside the anti-habit's danger window
	InDangerWindow bool
}

type Urgency string

const (
	UrgencyNormal Urgency = "normal"
	UrgencyUrgent Urgency = "urgent"
)

// NotifierI is fire-and-forget from the engine's perspective: a failed send
// is logged by the implementation, never rolled back into state.
type NotifierI interface {
	Send(ctx context.Context, userID uuid.UUID, message string, urgency Urgency) error
}

type UserServiceI interface {
	// Validates user's credentials, creates new row in database. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, give back user's data with ID.
	Login(ctx context.Context, name, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByName(ctx context.Context, name string) (*entity.User, error)
	DeleteAccount(ctx context.Context, id uuid.UUID, password string) error
}

type HabitsServiceI interface {
	CreateHabit(ctx context.Context, uid uuid.UUID, req *CreateHabitRequest) (*entity.Habit, error)
	GetUserHabits(ctx context.Context, uid uuid.UUID, pagination PaginationOpts) ([]*entity.Habit, error)
	UpdateHabit(ctx context.Context, habitID, userID uuid.UUID, req *UpdateHabitRequest) error
	DeleteHabit(ctx context.Context, habitID, userID uuid.UUID) error
	// Applies the at-most-once-per-day completion and runs the achievement
	// check on a fresh streak value
	Tick(ctx context.Context, habitID, userID uuid.UUID, now time.Time) (*TickOutcome, error)
	GetHabitStats(ctx context.Context, habitID, userID uuid.UUID) (*entity.HabitStats, error)
}

type AntiHabitsServiceI interface {
	CreateAntiHabit(ctx context.Context, uid uuid.UUID, req *CreateAntiHabitRequest) (*entity.AntiHabit, error)
	GetUserAntiHabits(ctx context.Context, uid uuid.UUID) ([]*entity.AntiHabit, error)
	DeleteAntiHabit(ctx context.Context, id, userID uuid.UUID) error
	// Stamps the slip, resets the clean streak and lets the rules engine
	// judge the danger window
	RecordSlip(ctx context.Context, id, userID uuid.UUID, at time.Time) (*SlipOutcome, error)
}

type AlarmsServiceI interface {
	CreateAlarm(ctx context.Context, uid uuid.UUID, req *CreateAlarmRequest, now time.Time) (*entity.Alarm, error)
	GetUserAlarms(ctx context.Context, uid uuid.UUID) ([]*entity.Alarm, error)
	DeleteAlarm(ctx context.Context, id, userID uuid.UUID) error
	SetEnabled(ctx context.Context, id, userID uuid.UUID, enabled bool, now time.Time) error
	// Computes and persists the next fire instant and hands it to the
	// delayed queue. Returns nil for a one-shot alarm already in the past
	Schedule(ctx context.Context, alarm *entity.Alarm, now time.Time) (*time.Time, error)
	Dismiss(ctx context.Context, id, userID uuid.UUID, at time.Time) error
	// Delayed-queue handlers. Both tolerate at-least-once delivery
	HandleFire(ctx context.Context, payload []byte, now time.Time) error
	HandleEscalation(ctx context.Context, payload []byte, now time.Time) error
}

type EventsQuery struct {
	Type  string
	From  *time.Time
	To    *time.Time
	Limit int
}

type EventsServiceI interface {
	// Reads the user's slice of the ledger, newest-bounded by Limit
	GetUserEvents(ctx context.Context, uid uuid.UUID, q EventsQuery) ([]entity.Event, error)
}

type RulesServiceI interface {
	// Derives events from current state and the triggering event. Never
	// mutates habit or alarm state itself
	Evaluate(ctx context.Context, userID uuid.UUID, trigger *entity.Event, now time.Time) ([]entity.Event, error)
	// Emits streak_at_risk for every due-but-unticked habit past the late
	// hour, at most once per habit per day
	EveningPass(ctx context.Context, now time.Time) error
	// Bumps clean streaks for anti-habits that survived the day
	NightlyCleanPass(ctx context.Context, now time.Time) error
}

type AchievementsServiceI interface {
	// Unlocks every catalog entry whose threshold equals newStreak, at most
	// once per (user, habit, achievement)
	CheckThresholds(ctx context.Context, userID, habitID uuid.UUID, newStreak int, now time.Time) ([]entity.Achievement, error)
	Progress(ctx context.Context, userID uuid.UUID) (*entity.Progress, error)
	Catalog() []entity.Achievement
	PendingCelebrations(ctx context.Context, userID uuid.UUID) ([]entity.CelebrationEntry, error)
	AckCelebration(ctx context.Context, userID uuid.UUID, id int64) error
}
