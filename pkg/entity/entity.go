package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Name         string
	PasswordHash string
	// IANA zone name, e.g. "Europe/Berlin". Calendar days for ticks are
	// computed in this zone.
	Timezone string
}

type Habit struct {
	ID          uuid.UUID      `json:"id"`
	UserID      uuid.UUID      `json:"uid"`
	Title       string         `json:"title"`
	Description string         `json:"desc"`
	Recurrence  RecurrenceSpec `json:"recurrence"`
	Streak      int            `json:"streak"`
	LastTick    *time.Time     `json:"last_tick,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type AntiHabit struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"uid"`
	Name        string    `json:"name"`
	CleanStreak int       `json:"clean_streak"`
	// Hours of day (0..23) during which a slip counts as a danger-window slip
	DangerWindow []int      `json:"danger_window"`
	LastSlip     *time.Time `json:"last_slip,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type AlarmStatus string

const (
	AlarmScheduled AlarmStatus = "scheduled"
	AlarmFired     AlarmStatus = "fired"
	AlarmDismissed AlarmStatus = "dismissed"
	AlarmEscalated AlarmStatus = "escalated"
	AlarmCompleted AlarmStatus = "completed"
	AlarmDisabled  AlarmStatus = "disabled"
)

type Alarm struct {
	ID         uuid.UUID      `json:"id"`
	UserID     uuid.UUID      `json:"uid"`
	Label      string         `json:"label"`
	Recurrence RecurrenceSpec `json:"recurrence"`
	// Fixed firing time for recurring alarms, "HH:MM" wall clock
	TimeOfDay  string            `json:"time_of_day"`
	Tone       string            `json:"tone"`
	Enabled    bool              `json:"enabled"`
	Status     AlarmStatus       `json:"status"`
	NextFireAt *time.Time        `json:"next_fire_at,omitempty"`
	Meta       map[string]string `json:"meta,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

type RecurrenceKind string

const (
	RecurrenceOnce       RecurrenceKind = "once"
	RecurrenceAllDays    RecurrenceKind = "all_days"
	RecurrenceWeekdays   RecurrenceKind = "weekdays"
	RecurrenceFixedDays  RecurrenceKind = "fixed_days"
	RecurrenceEveryNDays RecurrenceKind = "every_n_days"
)

// RecurrenceSpec describes which calendar days an entity is active on.
// Stored as jsonb alongside its owner.
type RecurrenceSpec struct {
	Kind RecurrenceKind `json:"kind"`
	// ISO weekdays 1 (Mon) .. 7 (Sun), for fixed_days
	Days []int `json:"days,omitempty"`
	// Interval and anchor date for every_n_days
	EveryN int        `json:"every_n,omitempty"`
	Anchor *time.Time `json:"anchor,omitempty"`
	// Optional active window, open-ended when nil
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

type EventType string

const (
	EventHabitSuccess      EventType = "habit_success"
	EventAntiHabitSlip     EventType = "antihabit_slip"
	EventDangerWindowSlip  EventType = "danger_window_slip"
	EventStreakAtRisk      EventType = "streak_at_risk"
	EventAlarmFire         EventType = "alarm_fire"
	EventAlarmDismiss      EventType = "alarm_dismiss"
	EventEscalation        EventType = "escalation"
	EventAchievementUnlock EventType = "achievement_unlock"
)

// Event is an append-only ledger entry. Rows are immutable once written.
type Event struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"uid"`
	EntityID  uuid.UUID `json:"entity_id"`
	Type      EventType `json:"type"`
	Payload   []byte    `json:"payload,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Achievement is a static catalog entry, not user data.
type Achievement struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Threshold int    `json:"threshold"`
	Tier      string `json:"tier"`
	Reward    int    `json:"reward"`
}

type AchievementUnlock struct {
	ID            int64     `json:"id"`
	UserID        uuid.UUID `json:"uid"`
	HabitID       uuid.UUID `json:"habit_id"`
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

type CelebrationEntry struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"uid"`
	UnlockID  int64     `json:"unlock_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Progress is derived on read, never stored.
type Progress struct {
	XP    int    `json:"xp"`
	Level int    `json:"level"`
	Rank  string `json:"rank"`
}

type JobStatus string

const (
	JobPending  JobStatus = "pending"
	JobRunning  JobStatus = "running"
	JobDone     JobStatus = "done"
	JobCanceled JobStatus = "canceled"
)

// Job is a durable delayed-execution entry. Handlers must tolerate
// at-least-once invocation.
type Job struct {
	ID      int64     `json:"id"`
	Kind    string    `json:"kind"`
	Key     string    `json:"key"`
	RunAt   time.Time `json:"run_at"`
	Payload []byte    `json:"payload,omitempty"`
	Status  JobStatus `json:"status"`
}

type HabitStats struct {
	ID         uuid.UUID  `json:"habit_id"`
	TotalTicks int        `json:"total_ticks"`
	Streak     int        `json:"streak"`
	LastTick   *time.Time `json:"last_tick,omitempty"`
}
