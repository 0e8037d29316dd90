package api_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/limbo/cadence/internal/api"
	errorvalues "github.com/limbo/cadence/internal/error_values"
	"github.com/limbo/cadence/internal/service"
	"github.com/limbo/cadence/internal/service/mocks"
	"github.com/limbo/cadence/pkg/entity"
	jwtservice "github.com/limbo/cadence/pkg/jwt_service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	service.InitValidator()
	m.Run()
}

var (
	username        = "test_name"
	password        = "test_password"
	passwordHash, _ = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userID          = uuid.New()
)

// withUID mimics what AuthMiddleware leaves in the request context.
func withUID(r *http.Request) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), "User-ID", userID))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestRegister(t *testing.T) {
	ctrl := gomock.NewController(t)
	uService := mocks.NewMockUserServiceI(ctrl)
	serv := api.New(&api.ServicesList{
		UserService: uService,
	})
	body, err := sonic.ConfigDefault.Marshal(api.RegisterRequest{
		Name:     username,
		Password: password,
		Timezone: "Europe/Berlin",
	})
	require.NoError(t, err)

	testCases := []struct {
		ExpectedCode int
		MockPrepFunc func()
		Body         io.Reader
	}{
		{
			ExpectedCode: http.StatusCreated,
			MockPrepFunc: func() {
				uService.EXPECT().Register(gomock.Any(), gomock.Any()).Return(&entity.User{
					ID:           userID,
					Name:         username,
					PasswordHash: string(passwordHash),
					Timezone:     "Europe/Berlin",
				}, nil)
			},
			Body: bytes.NewReader(body),
		},
		{
			ExpectedCode: http.StatusConflict,
			MockPrepFunc: func() {
				uService.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, errorvalues.ErrUserExists)
			},
			Body: bytes.NewReader(body),
		},
		{
			ExpectedCode: http.StatusInternalServerError,
			MockPrepFunc: func() {
				uService.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, errors.New("service error"))
			},
			Body: bytes.NewReader(body),
		},
		{
			ExpectedCode: http.StatusBadRequest,
			MockPrepFunc: func() {},
			Body:         bytes.NewReader([]byte("corrupted")),
		},
	}
	for _, tc := range testCases {
		tc.MockPrepFunc()
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/v1/register", tc.Body)
		serv.Register(rr, r)
		assert.Equal(t, tc.ExpectedCode, rr.Result().StatusCode)
	}
}

func TestLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	uService := mocks.NewMockUserServiceI(ctrl)
	serv := api.New(&api.ServicesList{
		UserService: uService,
		JwtService:  jwtservice.New("test_secret"),
	})
	body, err := sonic.ConfigDefault.Marshal(api.LoginRequest{
		Name:     username,
		Password: password,
	})
	require.NoError(t, err)

	testCases := []struct {
		ExpectedCode int
		MockPrepFunc func()
		Body         io.Reader
	}{
		{
			ExpectedCode: http.StatusOK,
			MockPrepFunc: func() {
				uService.EXPECT().Login(gomock.Any(), username, password).Return(&entity.User{
					ID:           userID,
					Name:         username,
					PasswordHash: string(passwordHash),
				}, nil)
			},
			Body: bytes.NewReader(body),
		},
		{
			ExpectedCode: http.StatusNotFound,
			MockPrepFunc: func() {
				uService.EXPECT().Login(gomock.Any(), username, password).Return(nil, errorvalues.ErrUserNotFound)
			},
			Body: bytes.NewReader(body),
		},
		{
			ExpectedCode: http.StatusForbidden,
			MockPrepFunc: func() {
				uService.EXPECT().Login(gomock.Any(), username, password).Return(nil, errorvalues.ErrWrongCredentials)
			},
			Body: bytes.NewReader(body),
		},
		{
			ExpectedCode: http.StatusBadRequest,
			MockPrepFunc: func() {},
			Body:         bytes.NewReader([]byte("corrupted")),
		},
	}
	for _, tc := range testCases {
		tc.MockPrepFunc()
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/v1/login", tc.Body)
		serv.Login(rr, r)
		assert.Equal(t, tc.ExpectedCode, rr.Result().StatusCode)
	}
}

func TestCreateHabit(t *testing.T) {
	ctrl := gomock.NewController(t)
	hService := mocks.NewMockHabitsServiceI(ctrl)
	serv := api.New(&api.ServicesList{
		HabitsService: hService,
	})
	habit := api.CreateHabitRequest{
		Title:       "test_habit",
		Description: "test_habit_description",
		Recurrence:  entity.RecurrenceSpec{Kind: entity.RecurrenceAllDays},
	}
	body, err := sonic.ConfigDefault.Marshal(habit)
	require.NoError(t, err)
	habitID := uuid.New()

	testCases := []struct {
		ExpectedCode int
		MockPrepFunc func()
		Body         io.Reader
	}{
		{
			ExpectedCode: http.StatusCreated,
			MockPrepFunc: func() {
				hService.EXPECT().CreateHabit(gomock.Any(), userID, gomock.Any()).Return(&entity.Habit{
					ID:          habitID,
					UserID:      userID,
					Title:       habit.Title,
					Description: habit.Description,
					Recurrence:  habit.Recurrence,
				}, nil)
			},
			Body: bytes.NewReader(body),
		},
		{
			ExpectedCode: http.StatusConflict,
			MockPrepFunc: func() {
				hService.EXPECT().CreateHabit(gomock.Any(), userID, gomock.Any()).Return(nil, errorvalues.ErrUserHasHabit)
			},
			Body: bytes.NewReader(body),
		},
		{
			ExpectedCode: http.StatusNotFound,
			MockPrepFunc: func() {
				hService.EXPECT().CreateHabit(gomock.Any(), userID, gomock.Any()).Return(nil, errorvalues.ErrUserNotFound)
			},
			Body: bytes.NewReader(body),
		},
		{
			ExpectedCode: http.StatusInternalServerError,
			MockPrepFunc: func() {
				hService.EXPECT().CreateHabit(gomock.Any(), userID, gomock.Any()).Return(nil, errors.New("service error"))
			},
			Body: bytes.NewReader(body),
		},
		{
			ExpectedCode: http.StatusBadRequest,
			MockPrepFunc: func() {},
			Body:         bytes.NewReader([]byte("corrupted")),
		},
	}
	for _, tc := range testCases {
		tc.MockPrepFunc()
		rr := httptest.NewRecorder()
		r := withUID(httptest.NewRequest(http.MethodPost, "/api/v1/habits", tc.Body))
		serv.CreateHabit(rr, r)
		assert.Equal(t, tc.ExpectedCode, rr.Result().StatusCode)
	}
}

func TestTickHabit(t *testing.T) {
	ctrl := gomock.NewController(t)
	hService := mocks.NewMockHabitsServiceI(ctrl)
	serv := api.New(&api.ServicesList{
		HabitsService: hService,
	})
	habitID := uuid.New()
	now := time.Now()

	t.Run("winner gets the fresh streak", func(t *testing.T) {
		hService.EXPECT().Tick(gomock.Any(), habitID, userID, gomock.Any()).Return(&service.TickOutcome{
			Applied:  true,
			Streak:   30,
			LastTick: now,
			Unlocked: []entity.Achievement{{ID: "one_month", Title: "One Month", Threshold: 30}},
		}, nil)
		rr := httptest.NewRecorder()
		r := withUID(httptest.NewRequest(http.MethodPost, "/api/v1/habits/"+habitID.String()+"/tick", nil))
		r = withURLParam(r, "id", habitID.String())
		serv.TickHabit(rr, r)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		var resp api.TickResponse
		require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Result().Body).Decode(&resp))
		assert.True(t, resp.Applied)
		assert.False(t, resp.Idempotent)
		assert.Equal(t, 30, resp.Streak)
		require.Len(t, resp.Unlocked, 1)
	})
	t.Run("repeat answers 200 with idempotent flag", func(t *testing.T) {
		hService.EXPECT().Tick(gomock.Any(), habitID, userID, gomock.Any()).Return(&service.TickOutcome{
			Applied:  false,
			Streak:   30,
			LastTick: now,
		}, nil)
		rr := httptest.NewRecorder()
		r := withUID(httptest.NewRequest(http.MethodPost, "/api/v1/habits/"+habitID.String()+"/tick", nil))
		r = withURLParam(r, "id", habitID.String())
		serv.TickHabit(rr, r)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		var resp api.TickResponse
		require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Result().Body).Decode(&resp))
		assert.False(t, resp.Applied)
		assert.True(t, resp.Idempotent)
	})
	t.Run("unexist habit", func(t *testing.T) {
		hService.EXPECT().Tick(gomock.Any(), habitID, userID, gomock.Any()).Return(nil, errorvalues.ErrHabitNotFound)
		rr := httptest.NewRecorder()
		r := withUID(httptest.NewRequest(http.MethodPost, "/api/v1/habits/"+habitID.String()+"/tick", nil))
		r = withURLParam(r, "id", habitID.String())
		serv.TickHabit(rr, r)
		assert.Equal(t, http.StatusNotFound, rr.Result().StatusCode)
	})
	t.Run("invalid id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := withUID(httptest.NewRequest(http.MethodPost, "/api/v1/habits/garbage/tick", nil))
		r = withURLParam(r, "id", "garbage")
		serv.TickHabit(rr, r)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
	t.Run("no authorization", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/v1/habits/"+habitID.String()+"/tick", nil)
		r = withURLParam(r, "id", habitID.String())
		serv.TickHabit(rr, r)
		assert.Equal(t, http.StatusUnauthorized, rr.Result().StatusCode)
	})
}

func TestDismissAlarm(t *testing.T) {
	ctrl := gomock.NewController(t)
	aService := mocks.NewMockAlarmsServiceI(ctrl)
	serv := api.New(&api.ServicesList{
		AlarmsService: aService,
	})
	alarmID := uuid.New()

	t.Run("dismissed", func(t *testing.T) {
		aService.EXPECT().Dismiss(gomock.Any(), alarmID, userID, gomock.Any()).Return(nil)
		rr := httptest.NewRecorder()
		r := withUID(httptest.NewRequest(http.MethodPost, "/api/v1/alarms/"+alarmID.String()+"/dismiss", nil))
		r = withURLParam(r, "id", alarmID.String())
		serv.DismissAlarm(rr, r)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("unexist alarm", func(t *testing.T) {
		aService.EXPECT().Dismiss(gomock.Any(), alarmID, userID, gomock.Any()).Return(errorvalues.ErrAlarmNotFound)
		rr := httptest.NewRecorder()
		r := withUID(httptest.NewRequest(http.MethodPost, "/api/v1/alarms/"+alarmID.String()+"/dismiss", nil))
		r = withURLParam(r, "id", alarmID.String())
		serv.DismissAlarm(rr, r)
		assert.Equal(t, http.StatusNotFound, rr.Result().StatusCode)
	})
}

func TestAckCelebration(t *testing.T) {
	ctrl := gomock.NewController(t)
	achService := mocks.NewMockAchievementsServiceI(ctrl)
	serv := api.New(&api.ServicesList{
		AchievementService: achService,
	})

	t.Run("acked", func(t *testing.T) {
		achService.EXPECT().AckCelebration(gomock.Any(), userID, int64(5)).Return(nil)
		rr := httptest.NewRecorder()
		r := withUID(httptest.NewRequest(http.MethodDelete, "/api/v1/celebrations/5", nil))
		r = withURLParam(r, "id", "5")
		serv.AckCelebration(rr, r)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("unexist entry", func(t *testing.T) {
		achService.EXPECT().AckCelebration(gomock.Any(), userID, int64(5)).Return(errorvalues.ErrCelebrationNotFound)
		rr := httptest.NewRecorder()
		r := withUID(httptest.NewRequest(http.MethodDelete, "/api/v1/celebrations/5", nil))
		r = withURLParam(r, "id", "5")
		serv.AckCelebration(rr, r)
		assert.Equal(t, http.StatusNotFound, rr.Result().StatusCode)
	})
	t.Run("invalid id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := withUID(httptest.NewRequest(http.MethodDelete, "/api/v1/celebrations/abc", nil))
		r = withURLParam(r, "id", "abc")
		serv.AckCelebration(rr, r)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
}
