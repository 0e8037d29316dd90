package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/cadence/internal/error_values"
	"github.com/limbo/cadence/internal/repository"
	"github.com/limbo/cadence/pkg/entity"
	"github.com/limbo/cadence/pkg/recurrence"
)

// Local hour from which an unticked habit with a running streak counts as
// at risk.
const DefaultLateHour = 20

// How many habits per user the at-risk scan looks at. Plenty above any real
// account.
const atRiskScanLimit = 1000

type RulesService struct {
	habitsRepo     repository.HabitsRepositoryI
	antiHabitsRepo repository.AntiHabitsRepositoryI
	usersRepo      repository.UsersRepositoryI
	eventsRepo     repository.EventsRepositoryI
	idempotency    repository.IdempotencyRepositoryI
	notifier       NotifierI
	lateHour       int
}

func NewRulesService(habitsRepo repository.HabitsRepositoryI, antiHabitsRepo repository.AntiHabitsRepositoryI, usersRepo repository.UsersRepositoryI,
	eventsRepo repository.EventsRepositoryI, idempotencyRepo repository.IdempotencyRepositoryI, notifier NotifierI, lateHour int) *RulesService {
	if habitsRepo == nil || antiHabitsRepo == nil || usersRepo == nil || eventsRepo == nil || idempotencyRepo == nil || notifier == nil {
		log.Fatal("on rules service provided nil dependencies")
	}
	if lateHour <= 0 || lateHour > 23 {
		lateHour = DefaultLateHour
	}
	return &RulesService{
		habitsRepo:     habitsRepo,
		antiHabitsRepo: antiHabitsRepo,
		usersRepo:      usersRepo,
		eventsRepo:     eventsRepo,
		idempotency:    idempotencyRepo,
		notifier:       notifier,
		lateHour:       lateHour,
	}
}

// Evaluate derives events from current state and the trigger. The state
// mutations themselves already happened upstream; this only reads and emits.
// Safe to run any number of times: the at-risk rule is keyed per habit per
// day, the danger-window rule only reacts to its trigger event.
func (rs *RulesService) Evaluate(ctx context.Context, userID uuid.UUID, trigger *entity.Event, now time.Time) ([]entity.Event, error) {
	user, err := rs.usersRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("users repository error: " + err.Error())
	}
	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		loc = time.UTC
	}
	derived := make([]entity.Event, 0)

	if trigger != nil && trigger.Type == entity.EventAntiHabitSlip {
		event, err := rs.dangerWindowRule(ctx, userID, trigger, loc)
		if err != nil {
			return nil, err
		}
		if event != nil {
			derived = append(derived, *event)
		}
	}

	atRisk, err := rs.streakAtRiskRule(ctx, userID, now, loc)
	if err != nil {
		return nil, err
	}
	derived = append(derived, atRisk...)
	return derived, nil
}

func (rs *RulesService) dangerWindowRule(ctx context.Context, userID uuid.UUID, trigger *entity.Event, loc *time.Location) (*entity.Event, error) {
	ah, err := rs.antiHabitsRepo.GetByID(ctx, trigger.EntityID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrAntiHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("anti-habits repository error: " + err.Error())
	}
	slipHour := trigger.CreatedAt.In(loc).Hour()
	inWindow := false
	for _, h := range ah.DangerWindow {
		if h == slipHour {
			inWindow = true
			break
		}
	}
	if !inWindow {
		return nil, nil
	}
	payload, err := sonic.Marshal(map[string]any{"hour": slipHour})
	if err != nil {
		return nil, errors.New("marshalling danger payload error: " + err.Error())
	}
	event := entity.Event{
		UserID:   userID,
		EntityID: ah.ID,
		Type:     entity.EventDangerWindowSlip,
		Payload:  payload,
	}
	if err = rs.eventsRepo.Append(ctx, &event); err != nil {
		return nil, errors.New("events repository error: " + err.Error())
	}
	_ = rs.notifier.Send(ctx, userID, "Slip inside danger window: "+ah.Name, UrgencyUrgent)
	return &event, nil
}

func (rs *RulesService) streakAtRiskRule(ctx context.Context, userID uuid.UUID, now time.Time, loc *time.Location) ([]entity.Event, error) {
	local := now.In(loc)
	if local.Hour() < rs.lateHour {
		return nil, nil
	}
	day := recurrence.Day(now, loc)
	habits, err := rs.habitsRepo.GetByUserID(ctx, userID, atRiskScanLimit, 0)
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	events := make([]entity.Event, 0)
	for _, habit := range habits {
		if habit.Streak == 0 || !recurrence.IsDue(habit.Recurrence, local, habit.CreatedAt) {
			continue
		}
		ticked, err := rs.habitsRepo.TickExists(ctx, habit.ID, day)
		if err != nil {
			return nil, errors.New("habits repository error: " + err.Error())
		}
		if ticked {
			continue
		}
		// Keyed per habit per day so repeated evaluations stay silent
		applied, err := rs.idempotency.Apply(ctx, habit.ID, "streak_at_risk:"+day)
		if err != nil {
			return nil, errors.New("idempotency repository error: " + err.Error())
		}
		if !applied {
			continue
		}
		payload, err := sonic.Marshal(map[string]any{"day": day, "streak": habit.Streak})
		if err != nil {
			return nil, errors.New("marshalling at-risk payload error: " + err.Error())
		}
		event := entity.Event{
			UserID:   userID,
			EntityID: habit.ID,
			Type:     entity.EventStreakAtRisk,
			Payload:  payload,
		}
		if err = rs.eventsRepo.Append(ctx, &event); err != nil {
			return nil, errors.New("events repository error: " + err.Error())
		}
		_ = rs.notifier.Send(ctx, userID, "Streak at risk: "+habit.Title, UrgencyNormal)
		events = append(events, event)
	}
	return events, nil
}

// EveningPass runs the at-risk rule for every user with a live streak.
// Re-running within the same day emits nothing new.
func (rs *RulesService) EveningPass(ctx context.Context, now time.Time) error {
	userIDs, err := rs.habitsRepo.ListActiveUserIDs(ctx)
	if err != nil {
		return errors.New("habits repository error: " + err.Error())
	}
	for _, uid := range userIDs {
		if _, err = rs.Evaluate(ctx, uid, nil, now); err != nil {
			return err
		}
	}
	return nil
}

// NightlyCleanPass bumps clean streaks for anti-habits that got through the
// previous day without a slip. Keyed per entity per day, so replays after a
// crash don't double count.
func (rs *RulesService) NightlyCleanPass(ctx context.Context, now time.Time) error {
	userIDs, err := rs.antiHabitsRepo.ListUserIDs(ctx)
	if err != nil {
		return errors.New("anti-habits repository error: " + err.Error())
	}
	for _, uid := range userIDs {
		user, err := rs.usersRepo.FindByID(ctx, uid)
		if err != nil {
			if errors.Is(err, errorvalues.ErrUserNotFound) {
				continue
			}
			return errors.New("users repository error: " + err.Error())
		}
		loc, err := time.LoadLocation(user.Timezone)
		if err != nil {
			loc = time.UTC
		}
		yesterday := recurrence.Day(now.AddDate(0, 0, -1), loc)
		antiHabits, err := rs.antiHabitsRepo.GetByUserID(ctx, uid)
		if err != nil {
			return errors.New("anti-habits repository error: " + err.Error())
		}
		for _, ah := range antiHabits {
			if ah.LastSlip != nil && recurrence.Day(*ah.LastSlip, loc) >= yesterday {
				continue
			}
			applied, err := rs.idempotency.Apply(ctx, ah.ID, "clean_day:"+yesterday)
			if err != nil {
				return errors.New("idempotency repository error: " + err.Error())
			}
			if !applied {
				continue
			}
			if err = rs.antiHabitsRepo.IncrementCleanStreak(ctx, ah.ID); err != nil {
				return errors.New("anti-habits repository error: " + err.Error())
			}
		}
	}
	return nil
}
