package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	repomocks "github.com/limbo/cadence/internal/repository/mocks"
	"github.com/limbo/cadence/internal/service"
	servicemocks "github.com/limbo/cadence/internal/service/mocks"
	"github.com/limbo/cadence/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rulesServiceMocks struct {
	habits      *repomocks.MockHabitsRepositoryI
	antiHabits  *repomocks.MockAntiHabitsRepositoryI
	users       *repomocks.MockUsersRepositoryI
	events      *repomocks.MockEventsRepositoryI
	idempotency *repomocks.MockIdempotencyRepositoryI
	notifier    *servicemocks.MockNotifierI
}

func newRulesService(t *testing.T) (*service.RulesService, *rulesServiceMocks) {
	ctrl := gomock.NewController(t)
	m := &rulesServiceMocks{
		habits:      repomocks.NewMockHabitsRepositoryI(ctrl),
		antiHabits:  repomocks.NewMockAntiHabitsRepositoryI(ctrl),
		users:       repomocks.NewMockUsersRepositoryI(ctrl),
		events:      repomocks.NewMockEventsRepositoryI(ctrl),
		idempotency: repomocks.NewMockIdempotencyRepositoryI(ctrl),
		notifier:    servicemocks.NewMockNotifierI(ctrl),
	}
	serv := service.NewRulesService(m.habits, m.antiHabits, m.users, m.events, m.idempotency, m.notifier, service.DefaultLateHour)
	return serv, m
}

func TestEvaluateDangerWindow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	userID := uuid.New()
	ahID := uuid.New()
	// Slip at 23:30, evaluation at noon so the at-risk rule stays out of the way
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	trigger := &entity.Event{
		UserID:    userID,
		EntityID:  ahID,
		Type:      entity.EventAntiHabitSlip,
		CreatedAt: time.Date(2025, 3, 14, 23, 30, 0, 0, time.UTC),
	}

	t.Run("slip inside the window derives the event", func(t *testing.T) {
		serv, m := newRulesService(t)
		m.users.EXPECT().FindByID(gomock.Any(), userID).Return(&entity.User{ID: userID, Timezone: "UTC"}, nil)
		m.antiHabits.EXPECT().GetByID(gomock.Any(), ahID).Return(&entity.AntiHabit{
			ID:           ahID,
			UserID:       userID,
			Name:         "late snacking",
			DangerWindow: []int{22, 23, 0},
		}, nil)
		m.events.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		m.notifier.EXPECT().Send(gomock.Any(), userID, gomock.Any(), service.UrgencyUrgent).Return(nil)
		derived, err := serv.Evaluate(ctx, userID, trigger, now)
		assert.NoError(t, err)
		require.Len(t, derived, 1)
		assert.Equal(t, entity.EventDangerWindowSlip, derived[0].Type)
	})
	t.Run("slip outside the window derives nothing", func(t *testing.T) {
		serv, m := newRulesService(t)
		m.users.EXPECT().FindByID(gomock.Any(), userID).Return(&entity.User{ID: userID, Timezone: "UTC"}, nil)
		m.antiHabits.EXPECT().GetByID(gomock.Any(), ahID).Return(&entity.AntiHabit{
			ID:           ahID,
			UserID:       userID,
			Name:         "late snacking",
			DangerWindow: []int{6, 7},
		}, nil)
		derived, err := serv.Evaluate(ctx, userID, trigger, now)
		assert.NoError(t, err)
		assert.Empty(t, derived)
	})
}

func TestEvaluateStreakAtRisk(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	userID := uuid.New()
	habitID := uuid.New()
	evening := time.Date(2025, 3, 14, 21, 0, 0, 0, time.UTC)
	habit := &entity.Habit{
		ID:         habitID,
		UserID:     userID,
		Title:      "reading",
		Recurrence: entity.RecurrenceSpec{Kind: entity.RecurrenceAllDays},
		Streak:     12,
	}

	t.Run("due unticked habit past the late hour", func(t *testing.T) {
		serv, m := newRulesService(t)
		m.users.EXPECT().FindByID(gomock.Any(), userID).Return(&entity.User{ID: userID, Timezone: "UTC"}, nil)
		m.habits.EXPECT().GetByUserID(gomock.Any(), userID, gomock.Any(), 0).Return([]*entity.Habit{habit}, nil)
		m.habits.EXPECT().TickExists(gomock.Any(), habitID, "2025-03-14").Return(false, nil)
		m.idempotency.EXPECT().Apply(gomock.Any(), habitID, "streak_at_risk:2025-03-14").Return(true, nil)
		m.events.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		m.notifier.EXPECT().Send(gomock.Any(), userID, gomock.Any(), service.UrgencyNormal).Return(nil)
		derived, err := serv.Evaluate(ctx, userID, nil, evening)
		assert.NoError(t, err)
		require.Len(t, derived, 1)
		assert.Equal(t, entity.EventStreakAtRisk, derived[0].Type)
	})
	t.Run("second evaluation the same day emits nothing", func(t *testing.T) {
		serv, m := newRulesService(t)
		m.users.EXPECT().FindByID(gomock.Any(), userID).Return(&entity.User{ID: userID, Timezone: "UTC"}, nil)
		m.habits.EXPECT().GetByUserID(gomock.Any(), userID, gomock.Any(), 0).Return([]*entity.Habit{habit}, nil)
		m.habits.EXPECT().TickExists(gomock.Any(), habitID, "2025-03-14").Return(false, nil)
		m.idempotency.EXPECT().Apply(gomock.Any(), habitID, "streak_at_risk:2025-03-14").Return(false, nil)
		derived, err := serv.Evaluate(ctx, userID, nil, evening)
		assert.NoError(t, err)
		assert.Empty(t, derived)
	})
	t.Run("ticked habit is safe", func(t *testing.T) {
		serv, m := newRulesService(t)
		m.users.EXPECT().FindByID(gomock.Any(), userID).Return(&entity.User{ID: userID, Timezone: "UTC"}, nil)
		m.habits.EXPECT().GetByUserID(gomock.Any(), userID, gomock.Any(), 0).Return([]*entity.Habit{habit}, nil)
		m.habits.EXPECT().TickExists(gomock.Any(), habitID, "2025-03-14").Return(true, nil)
		derived, err := serv.Evaluate(ctx, userID, nil, evening)
		assert.NoError(t, err)
		assert.Empty(t, derived)
	})
	t.Run("before the late hour the rule stays quiet", func(t *testing.T) {
		serv, m := newRulesService(t)
		m.users.EXPECT().FindByID(gomock.Any(), userID).Return(&entity.User{ID: userID, Timezone: "UTC"}, nil)
		noon := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
		derived, err := serv.Evaluate(ctx, userID, nil, noon)
		assert.NoError(t, err)
		assert.Empty(t, derived)
	})
}

func TestNightlyCleanPass(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	userID := uuid.New()
	ahID := uuid.New()
	now := time.Date(2025, 3, 15, 0, 30, 0, 0, time.UTC)

	t.Run("clean day bumps the streak once", func(t *testing.T) {
		serv, m := newRulesService(t)
		m.antiHabits.EXPECT().ListUserIDs(gomock.Any()).Return([]uuid.UUID{userID}, nil)
		m.users.EXPECT().FindByID(gomock.Any(), userID).Return(&entity.User{ID: userID, Timezone: "UTC"}, nil)
		m.antiHabits.EXPECT().GetByUserID(gomock.Any(), userID).Return([]*entity.AntiHabit{{
			ID:     ahID,
			UserID: userID,
		}}, nil)
		m.idempotency.EXPECT().Apply(gomock.Any(), ahID, "clean_day:2025-03-14").Return(true, nil)
		m.antiHabits.EXPECT().IncrementCleanStreak(gomock.Any(), ahID).Return(nil)
		err := serv.NightlyCleanPass(ctx, now)
		assert.NoError(t, err)
	})
	t.Run("slipped yesterday means no bump", func(t *testing.T) {
		serv, m := newRulesService(t)
		slip := time.Date(2025, 3, 14, 23, 0, 0, 0, time.UTC)
		m.antiHabits.EXPECT().ListUserIDs(gomock.Any()).Return([]uuid.UUID{userID}, nil)
		m.users.EXPECT().FindByID(gomock.Any(), userID).Return(&entity.User{ID: userID, Timezone: "UTC"}, nil)
		m.antiHabits.EXPECT().GetByUserID(gomock.Any(), userID).Return([]*entity.AntiHabit{{
			ID:       ahID,
			UserID:   userID,
			LastSlip: &slip,
		}}, nil)
		err := serv.NightlyCleanPass(ctx, now)
		assert.NoError(t, err)
	})
	t.Run("replay after a crash counts nothing twice", func(t *testing.T) {
		serv, m := newRulesService(t)
		m.antiHabits.EXPECT().ListUserIDs(gomock.Any()).Return([]uuid.UUID{userID}, nil)
		m.users.EXPECT().FindByID(gomock.Any(), userID).Return(&entity.User{ID: userID, Timezone: "UTC"}, nil)
		m.antiHabits.EXPECT().GetByUserID(gomock.Any(), userID).Return([]*entity.AntiHabit{{
			ID:     ahID,
			UserID: userID,
		}}, nil)
		m.idempotency.EXPECT().Apply(gomock.Any(), ahID, "clean_day:2025-03-14").Return(false, nil)
		err := serv.NightlyCleanPass(ctx, now)
		assert.NoError(t, err)
	})
}
