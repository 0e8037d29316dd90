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
)

type AntiHabitsService struct {
	repo  repository.AntiHabitsRepositoryI
	rules RulesServiceI
}

func NewAntiHabitsService(antiHabitsRepo repository.AntiHabitsRepositoryI, rules RulesServiceI) *AntiHabitsService {
	if antiHabitsRepo == nil || rules == nil {
		log.Fatal("on anti-habits service provided nil dependencies")
	}
	return &AntiHabitsService{
		repo:  antiHabitsRepo,
		rules: rules,
	}
}

func (ahs *AntiHabitsService) CreateAntiHabit(ctx context.Context, uid uuid.UUID, req *CreateAntiHabitRequest) (*entity.AntiHabit, error) {
	err := validate.Struct(*req)
	if err != nil {
		return nil, errors.New("validation error: " + err.Error())
	}
	ah := entity.AntiHabit{
		UserID:       uid,
		Name:         req.Name,
		DangerWindow: req.DangerWindow,
	}
	id, err := ahs.repo.Create(ctx, &ah)
	if err != nil {
		if errors.Is(err, errorvalues.ErrOwnerNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("anti-habits repository error: " + err.Error())
	}
	created, err := ahs.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("anti-habits repository error: " + err.Error())
	}
	return created, nil
}

func (ahs *AntiHabitsService) GetUserAntiHabits(ctx context.Context, uid uuid.UUID) ([]*entity.AntiHabit, error) {
	antiHabits, err := ahs.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("anti-habits repository error: " + err.Error())
	}
	return antiHabits, nil
}

func (ahs *AntiHabitsService) DeleteAntiHabit(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := ahs.owned(ctx, id, userID); err != nil {
		return err
	}
	err := ahs.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrAntiHabitNotFound) {
			return err
		}
		return errors.New("anti-habits repository error: " + err.Error())
	}
	return nil
}

// RecordSlip stamps the slip and resets the clean streak, then lets the
// rules engine decide whether the hour fell inside the danger window. A slip
// inside the window is distinguishable in the ledger by the extra
// danger_window_slip event.
func (ahs *AntiHabitsService) RecordSlip(ctx context.Context, id, userID uuid.UUID, at time.Time) (*SlipOutcome, error) {
	ah, err := ahs.owned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if err = ahs.repo.RecordSlip(ctx, ah.ID, userID, at); err != nil {
		if errors.Is(err, errorvalues.ErrAntiHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("anti-habits repository error: " + err.Error())
	}
	trigger := entity.Event{
		UserID:    userID,
		EntityID:  ah.ID,
		Type:      entity.EventAntiHabitSlip,
		CreatedAt: at,
	}
	derived, err := ahs.rules.Evaluate(ctx, userID, &trigger, at)
	if err != nil {
		return nil, errors.New("rules service error: " + err.Error())
	}
	outcome := SlipOutcome{}
	for _, e := range derived {
		if e.Type == entity.EventDangerWindowSlip {
			outcome.InDangerWindow = true
		}
	}
	return &outcome, nil
}

func (ahs *AntiHabitsService) owned(ctx context.Context, id, userID uuid.UUID) (*entity.AntiHabit, error) {
	ah, err := ahs.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrAntiHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("anti-habits repository error: " + err.Error())
	}
	if ah.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	return ah, nil
}
