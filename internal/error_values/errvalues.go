package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong name or password")
	ErrInvalidToken     = errors.New("invalid token")

	ErrHabitNotFound     = errors.New("habit doesn't exist")
	ErrUserHasHabit      = errors.New("user already has habit with such title")
	ErrAntiHabitNotFound = errors.New("anti-habit doesn't exist")
	ErrAlarmNotFound     = errors.New("alarm doesn't exist")
	ErrWrongOwner        = errors.New("entity has different owner")
	ErrOwnerNotFound     = errors.New("entity owner doesn't exist")

	ErrAchievementUnknown  = errors.New("unknown achievement id")
	ErrCelebrationNotFound = errors.New("celebration entry doesn't exist")
	ErrJobNotFound         = errors.New("delayed job doesn't exist")
)
