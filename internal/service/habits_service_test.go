package service_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/cadence/internal/error_values"
	"github.com/limbo/cadence/internal/repository"
	repomocks "github.com/limbo/cadence/internal/repository/mocks"
	"github.com/limbo/cadence/internal/service"
	servicemocks "github.com/limbo/cadence/internal/service/mocks"
	"github.com/limbo/cadence/pkg/entity"
	"github.com/stretchr/testify/assert"
)

func TestTick(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	habitsRepo := repomocks.NewMockHabitsRepositoryI(ctrl)
	usersRepo := repomocks.NewMockUsersRepositoryI(ctrl)
	achievements := servicemocks.NewMockAchievementsServiceI(ctrl)

	serv := service.NewHabitsService(habitsRepo, usersRepo, achievements)
	habitID := uuid.New()
	userID := uuid.New()
	now := time.Date(2025, 3, 14, 21, 30, 0, 0, time.UTC)
	habit := &entity.Habit{
		ID:         habitID,
		UserID:     userID,
		Title:      "morning run",
		Recurrence: entity.RecurrenceSpec{Kind: entity.RecurrenceAllDays},
		Streak:     29,
	}
	oneMonth := entity.Achievement{ID: "one_month", Title: "One Month", Threshold: 30, Tier: "silver", Reward: 300}
	testCases := []struct {
		Desc         string
		Error        error
		Now          time.Time
		Applied      bool
		Streak       int
		Unlocked     []entity.Achievement
		MockPrepFunc func()
	}{
		{
			Desc:     "winner bumps streak and unlocks",
			Error:    nil,
			Now:      now,
			Applied:  true,
			Streak:   30,
			Unlocked: []entity.Achievement{oneMonth},
			MockPrepFunc: func() {
				habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(habit, nil)
				usersRepo.EXPECT().FindByID(gomock.Any(), userID).Return(&entity.User{ID: userID, Timezone: "UTC"}, nil)
				habitsRepo.EXPECT().ApplyTick(gomock.Any(), habitID, userID, "2025-03-14", now).
					Return(&repository.TickResult{Applied: true, Streak: 30, LastTick: now}, nil)
				achievements.EXPECT().CheckThresholds(gomock.Any(), userID, habitID, 30, now).
					Return([]entity.Achievement{oneMonth}, nil)
			},
		},
		{
			Desc:    "repeat same day reports winner state",
			Error:   nil,
			Now:     now,
			Applied: false,
			Streak:  30,
			MockPrepFunc: func() {
				habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(habit, nil)
				usersRepo.EXPECT().FindByID(gomock.Any(), userID).Return(&entity.User{ID: userID, Timezone: "UTC"}, nil)
				habitsRepo.EXPECT().ApplyTick(gomock.Any(), habitID, userID, "2025-03-14", now).
					Return(&repository.TickResult{Applied: false, Streak: 30, LastTick: now}, nil)
			},
		},
		{
			Desc:     "day bucket follows the user timezone",
			Error:    nil,
			Now:      time.Date(2025, 3, 15, 2, 0, 0, 0, time.UTC),
			Applied:  true,
			Streak:   1,
			Unlocked: []entity.Achievement{},
			MockPrepFunc: func() {
				late := time.Date(2025, 3, 15, 2, 0, 0, 0, time.UTC)
				habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(habit, nil)
				usersRepo.EXPECT().FindByID(gomock.Any(), userID).Return(&entity.User{ID: userID, Timezone: "America/New_York"}, nil)
				// 02:00 UTC is still the previous evening in New York
				habitsRepo.EXPECT().ApplyTick(gomock.Any(), habitID, userID, "2025-03-14", late).
					Return(&repository.TickResult{Applied: true, Streak: 1, LastTick: late}, nil)
				achievements.EXPECT().CheckThresholds(gomock.Any(), userID, habitID, 1, late).
					Return([]entity.Achievement{}, nil)
			},
		},
		{
			Desc:  "error wrong owner",
			Error: errorvalues.ErrWrongOwner,
			Now:   now,
			MockPrepFunc: func() {
				habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(&entity.Habit{
					ID:     habitID,
					UserID: uuid.New(),
				}, nil)
			},
		},
		{
			Desc:  "error habit not found",
			Error: errorvalues.ErrHabitNotFound,
			Now:   now,
			MockPrepFunc: func() {
				habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(nil, errorvalues.ErrHabitNotFound)
			},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			outcome, err := serv.Tick(ctx, habitID, userID, tc.Now)
			if tc.Error != nil {
				assert.ErrorIs(t, err, tc.Error)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.Applied, outcome.Applied)
			assert.Equal(t, tc.Streak, outcome.Streak)
			assert.Equal(t, tc.Unlocked, outcome.Unlocked)
		})
	}
}

func TestCreateHabit(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	habitsRepo := repomocks.NewMockHabitsRepositoryI(ctrl)
	usersRepo := repomocks.NewMockUsersRepositoryI(ctrl)
	achievements := servicemocks.NewMockAchievementsServiceI(ctrl)

	serv := service.NewHabitsService(habitsRepo, usersRepo, achievements)
	userID := uuid.New()
	habitID := uuid.New()
	req := &service.CreateHabitRequest{
		Title:      "meditation",
		Recurrence: entity.RecurrenceSpec{Kind: entity.RecurrenceFixedDays, Days: []int{1, 3, 5}},
	}
	ctx := context.Background()
	t.Run("created", func(t *testing.T) {
		habitsRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(habitID, nil)
		habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(&entity.Habit{
			ID:         habitID,
			UserID:     userID,
			Title:      req.Title,
			Recurrence: req.Recurrence,
		}, nil)
		habit, err := serv.CreateHabit(ctx, userID, req)
		assert.NoError(t, err)
		assert.Equal(t, habitID, habit.ID)
	})
	t.Run("error duplicate title", func(t *testing.T) {
		habitsRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uuid.UUID{}, errorvalues.ErrUserHasHabit)
		_, err := serv.CreateHabit(ctx, userID, req)
		assert.ErrorIs(t, err, errorvalues.ErrUserHasHabit)
	})
	t.Run("error unexist owner", func(t *testing.T) {
		habitsRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uuid.UUID{}, errorvalues.ErrOwnerNotFound)
		_, err := serv.CreateHabit(ctx, userID, req)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("error impossible recurrence", func(t *testing.T) {
		_, err := serv.CreateHabit(ctx, userID, &service.CreateHabitRequest{
			Title:      "meditation",
			Recurrence: entity.RecurrenceSpec{Kind: entity.RecurrenceFixedDays, Days: []int{0, 9}},
		})
		assert.Error(t, err)
	})
	t.Run("error empty title", func(t *testing.T) {
		_, err := serv.CreateHabit(ctx, userID, &service.CreateHabitRequest{
			Recurrence: entity.RecurrenceSpec{Kind: entity.RecurrenceAllDays},
		})
		assert.Error(t, err)
	})
}

func TestTickConcurrent(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	habitsRepo := repomocks.NewMockHabitsRepositoryI(ctrl)
	usersRepo := repomocks.NewMockUsersRepositoryI(ctrl)
	achievements := servicemocks.NewMockAchievementsServiceI(ctrl)
	serv := service.NewHabitsService(habitsRepo, usersRepo, achievements)

	habitID := uuid.New()
	userID := uuid.New()
	now := time.Date(2025, 3, 14, 21, 30, 0, 0, time.UTC)
	habit := &entity.Habit{
		ID:         habitID,
		UserID:     userID,
		Title:      "morning run",
		Recurrence: entity.RecurrenceSpec{Kind: entity.RecurrenceAllDays},
		Streak:     4,
	}
	habitsRepo.EXPECT().GetByID(gomock.Any(), habitID).Return(habit, nil).AnyTimes()
	usersRepo.EXPECT().FindByID(gomock.Any(), userID).Return(&entity.User{ID: userID, Timezone: "UTC"}, nil).AnyTimes()

	// Stub of the tick table's unique insert: the first caller per day gets
	// the increment, everyone else reads the winner's state
	var mu sync.Mutex
	ticked := make(map[string]bool)
	habitsRepo.EXPECT().ApplyTick(gomock.Any(), habitID, userID, "2025-03-14", now).
		DoAndReturn(func(_ context.Context, _, _ uuid.UUID, day string, ts time.Time) (*repository.TickResult, error) {
			mu.Lock()
			defer mu.Unlock()
			if ticked[day] {
				return &repository.TickResult{Applied: false, Streak: 5, LastTick: ts}, nil
			}
			ticked[day] = true
			return &repository.TickResult{Applied: true, Streak: 5, LastTick: ts}, nil
		}).AnyTimes()
	// Only the winner runs the threshold check
	achievements.EXPECT().CheckThresholds(gomock.Any(), userID, habitID, 5, now).
		Return([]entity.Achievement{}, nil).Times(1)

	const callers = 16
	var (
		wg      sync.WaitGroup
		winners int32
	)
	streaks := make([]int, callers)
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			outcome, err := serv.Tick(context.Background(), habitID, userID, now)
			if err != nil {
				t.Error(err)
				return
			}
			if outcome.Applied {
				atomic.AddInt32(&winners, 1)
			}
			streaks[i] = outcome.Streak
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), winners)
	for _, s := range streaks {
		assert.Equal(t, 5, s)
	}
}
