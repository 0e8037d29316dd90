// Package metrics exposes the engine's counters. Registered on the default
// prometheus registry and served by the API under /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TicksApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cadence_habit_ticks_applied_total",
		Help: "Habit ticks that won the per-day insert",
	})
	TicksDeduplicated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cadence_habit_ticks_deduplicated_total",
		Help: "Habit ticks rejected as already applied for the day",
	})
	AlarmsFired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cadence_alarms_fired_total",
		Help: "Alarm fire events emitted",
	})
	EscalationsRaised = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cadence_escalations_raised_total",
		Help: "Escalations raised after an undismissed fire",
	})
	AchievementsUnlocked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cadence_achievements_unlocked_total",
		Help: "Achievement unlocks created",
	})
	NotificationsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cadence_notifications_failed_total",
		Help: "Notification dispatches that errored and were dropped",
	})
	JobsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cadence_jobs_processed_total",
		Help: "Delayed jobs claimed and handled by the worker",
	})
)
