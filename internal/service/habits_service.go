package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/cadence/internal/error_values"
	"github.com/limbo/cadence/internal/repository"
	"github.com/limbo/cadence/pkg/entity"
	"github.com/limbo/cadence/pkg/metrics"
	"github.com/limbo/cadence/pkg/recurrence"
)

type HabitsService struct {
	repo         repository.HabitsRepositoryI
	usersRepo    repository.UsersRepositoryI
	achievements AchievementsServiceI
}

func NewHabitsService(habitsRepo repository.HabitsRepositoryI, usersRepo repository.UsersRepositoryI, achievements AchievementsServiceI) *HabitsService {
	if habitsRepo == nil || usersRepo == nil || achievements == nil {
		log.Fatal("on habits service provided nil dependencies")
	}
	return &HabitsService{
		repo:         habitsRepo,
		usersRepo:    usersRepo,
		achievements: achievements,
	}
}

func (hs *HabitsService) CreateHabit(ctx context.Context, uid uuid.UUID, req *CreateHabitRequest) (*entity.Habit, error) {
	err := validate.Struct(*req)
	if err != nil {
		return nil, errors.New("validation error: " + err.Error())
	}
	if !RecurrenceSpecValid(req.Recurrence) {
		return nil, errors.New("validation error: impossible recurrence spec")
	}
	h := entity.Habit{
		UserID:      uid,
		Title:       req.Title,
		Description: req.Description,
		Recurrence:  req.Recurrence,
	}
	id, err := hs.repo.Create(ctx, &h)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrOwnerNotFound):
			return nil, errorvalues.ErrUserNotFound
		case errors.Is(err, errorvalues.ErrUserHasHabit):
			return nil, errorvalues.ErrUserHasHabit
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	habit, err := hs.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habit, nil
}

func (hs *HabitsService) GetUserHabits(ctx context.Context, uid uuid.UUID, pagination PaginationOpts) ([]*entity.Habit, error) {
	habits, err := hs.repo.GetByUserID(ctx, uid, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habits, nil
}

func (hs *HabitsService) UpdateHabit(ctx context.Context, habitID, userID uuid.UUID, req *UpdateHabitRequest) error {
	err := validate.Struct(*req)
	if err != nil {
		return errors.New("validation error: " + err.Error())
	}
	if !RecurrenceSpecValid(req.Recurrence) {
		return errors.New("validation error: impossible recurrence spec")
	}
	habit, err := hs.owned(ctx, habitID, userID)
	if err != nil {
		return err
	}
	habit.Title = req.Title
	habit.Description = req.Description
	habit.Recurrence = req.Recurrence
	err = hs.repo.Update(ctx, habit)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return err
		}
		return errors.New("habits repository error: " + err.Error())
	}
	return nil
}

func (hs *HabitsService) DeleteHabit(ctx context.Context, habitID, userID uuid.UUID) error {
	_, err := hs.owned(ctx, habitID, userID)
	if err != nil {
		return err
	}
	err = hs.repo.Delete(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return err
		}
		return errors.New("habits repository error: " + err.Error())
	}
	return nil
}

// Tick applies the once-per-day completion. Two near-simultaneous calls for
// the same habit both come back with the same streak: the repository's
// per-day insert decides the winner, the loser reports Applied=false. Only
// the winning call runs the achievement check, so thresholds fire once.
func (hs *HabitsService) Tick(ctx context.Context, habitID, userID uuid.UUID, now time.Time) (*TickOutcome, error) {
	habit, err := hs.owned(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}
	user, err := hs.usersRepo.FindByID(ctx, userID)
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
	day := recurrence.Day(now, loc)
	result, err := hs.repo.ApplyTick(ctx, habit.ID, userID, day, now)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	outcome := TickOutcome{
		Applied:  result.Applied,
		Streak:   result.Streak,
		LastTick: result.LastTick,
	}
	if !result.Applied {
		metrics.TicksDeduplicated.Inc()
		return &outcome, nil
	}
	metrics.TicksApplied.Inc()
	unlocked, err := hs.achievements.CheckThresholds(ctx, userID, habit.ID, result.Streak, now)
	if err != nil {
		return nil, errors.New("achievements service error: " + err.Error())
	}
	outcome.Unlocked = unlocked
	return &outcome, nil
}

func (hs *HabitsService) GetHabitStats(ctx context.Context, habitID, userID uuid.UUID) (*entity.HabitStats, error) {
	habit, err := hs.owned(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}
	total, err := hs.repo.CountTicks(ctx, habitID)
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return &entity.HabitStats{
		ID:         habit.ID,
		TotalTicks: total,
		Streak:     habit.Streak,
		LastTick:   habit.LastTick,
	}, nil
}

func (hs *HabitsService) owned(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error) {
	habit, err := hs.repo.GetByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	if habit.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	return habit, nil
}
