package recurrence_test

import (
	"testing"
	"time"

	"github.com/limbo/cadence/pkg/entity"
	"github.com/limbo/cadence/pkg/recurrence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestIsDue(t *testing.T) {
	t.Parallel()
	created := date(2023, time.June, 1)
	// 2024-01-02 is a Tuesday, 2024-01-03 a Wednesday
	testCases := []struct {
		Desc string
		Spec entity.RecurrenceSpec
		Ref  time.Time
		Due  bool
	}{
		{
			Desc: "once is never due via recurrence",
			Spec: entity.RecurrenceSpec{Kind: entity.RecurrenceOnce},
			Ref:  date(2024, time.January, 3),
			Due:  false,
		},
		{
			Desc: "all days",
			Spec: entity.RecurrenceSpec{Kind: entity.RecurrenceAllDays},
			Ref:  date(2024, time.January, 3),
			Due:  true,
		},
		{
			Desc: "all days before window opens",
			Spec: entity.RecurrenceSpec{Kind: entity.RecurrenceAllDays, From: datePtr(2024, time.February, 1)},
			Ref:  date(2024, time.January, 3),
			Due:  false,
		},
		{
			Desc: "all days after window closes",
			Spec: entity.RecurrenceSpec{Kind: entity.RecurrenceAllDays, To: datePtr(2023, time.December, 31)},
			Ref:  date(2024, time.January, 3),
			Due:  false,
		},
		{
			Desc: "all days on window boundary",
			Spec: entity.RecurrenceSpec{Kind: entity.RecurrenceAllDays, To: datePtr(2024, time.January, 3)},
			Ref:  date(2024, time.January, 3),
			Due:  true,
		},
		{
			Desc: "weekdays on wednesday",
			Spec: entity.RecurrenceSpec{Kind: entity.RecurrenceWeekdays},
			Ref:  date(2024, time.January, 3),
			Due:  true,
		},
		{
			Desc: "weekdays on sunday",
			Spec: entity.RecurrenceSpec{Kind: entity.RecurrenceWeekdays},
			Ref:  date(2024, time.January, 7),
			Due:  false,
		},
		{
			Desc: "fixed days mon wed fri on tuesday",
			Spec: entity.RecurrenceSpec{Kind: entity.RecurrenceFixedDays, Days: []int{1, 3, 5}},
			Ref:  date(2024, time.January, 2),
			Due:  false,
		},
		{
			Desc: "fixed days mon wed fri on wednesday",
			Spec: entity.RecurrenceSpec{Kind: entity.RecurrenceFixedDays, Days: []int{1, 3, 5}},
			Ref:  date(2024, time.January, 3),
			Due:  true,
		},
		{
			Desc: "fixed days empty set without window is always due",
			Spec: entity.RecurrenceSpec{Kind: entity.RecurrenceFixedDays},
			Ref:  date(2024, time.January, 7),
			Due:  true,
		},
		{
			Desc: "fixed days empty set with window respects window",
			Spec: entity.RecurrenceSpec{Kind: entity.RecurrenceFixedDays, From: datePtr(2024, time.February, 1)},
			Ref:  date(2024, time.January, 7),
			Due:  false,
		},
		{
			Desc: "every 3 days on day 3",
			Spec: entity.RecurrenceSpec{Kind: entity.RecurrenceEveryNDays, EveryN: 3, Anchor: datePtr(2024, time.January, 1)},
			Ref:  date(2024, time.January, 4),
			Due:  true,
		},
		{
			Desc: "every 3 days on day 4",
			Spec: entity.RecurrenceSpec{Kind: entity.RecurrenceEveryNDays, EveryN: 3, Anchor: datePtr(2024, time.January, 1)},
			Ref:  date(2024, time.January, 5),
			Due:  false,
		},
		{
			Desc: "every n days before anchor",
			Spec: entity.RecurrenceSpec{Kind: entity.RecurrenceEveryNDays, EveryN: 3, Anchor: datePtr(2024, time.January, 10)},
			Ref:  date(2024, time.January, 4),
			Due:  false,
		},
		{
			Desc: "every n days with non-positive interval is always due",
			Spec: entity.RecurrenceSpec{Kind: entity.RecurrenceEveryNDays, EveryN: 0},
			Ref:  date(2024, time.January, 5),
			Due:  true,
		},
		{
			Desc: "every n days without anchor falls back to creation date",
			Spec: entity.RecurrenceSpec{Kind: entity.RecurrenceEveryNDays, EveryN: 2},
			Ref:  date(2023, time.June, 3),
			Due:  true,
		},
		{
			Desc: "malformed kind fails open",
			Spec: entity.RecurrenceSpec{Kind: "lunar_cycle"},
			Ref:  date(2024, time.January, 5),
			Due:  true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			assert.Equal(t, tc.Due, recurrence.IsDue(tc.Spec, tc.Ref, created))
			// Pure: a second call with the same inputs agrees
			assert.Equal(t, tc.Due, recurrence.IsDue(tc.Spec, tc.Ref, created))
		})
	}
}

func TestNextFire(t *testing.T) {
	t.Parallel()
	created := date(2023, time.June, 1)
	loc := time.UTC
	// Wednesday 2024-01-03, 10:00
	now := time.Date(2024, time.January, 3, 10, 0, 0, 0, loc)

	t.Run("same day when time of day still ahead", func(t *testing.T) {
		spec := entity.RecurrenceSpec{Kind: entity.RecurrenceAllDays}
		got := recurrence.NextFire(spec, "21:30", now, created, loc)
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2024, time.January, 3, 21, 30, 0, 0, loc), *got)
	})

	t.Run("advances to next day when time of day passed", func(t *testing.T) {
		spec := entity.RecurrenceSpec{Kind: entity.RecurrenceAllDays}
		got := recurrence.NextFire(spec, "08:00", now, created, loc)
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2024, time.January, 4, 8, 0, 0, 0, loc), *got)
	})

	t.Run("skips to next matching fixed day", func(t *testing.T) {
		spec := entity.RecurrenceSpec{Kind: entity.RecurrenceFixedDays, Days: []int{1}}
		got := recurrence.NextFire(spec, "07:15", now, created, loc)
		require.NotNil(t, got)
		// Next Monday is 2024-01-08
		assert.Equal(t, time.Date(2024, time.January, 8, 7, 15, 0, 0, loc), *got)
	})

	t.Run("once has no recurring fire", func(t *testing.T) {
		spec := entity.RecurrenceSpec{Kind: entity.RecurrenceOnce}
		assert.Nil(t, recurrence.NextFire(spec, "07:15", now, created, loc))
	})

	t.Run("invalid time of day", func(t *testing.T) {
		spec := entity.RecurrenceSpec{Kind: entity.RecurrenceAllDays}
		assert.Nil(t, recurrence.NextFire(spec, "25:99", now, created, loc))
	})

	t.Run("no day inside horizon", func(t *testing.T) {
		spec := entity.RecurrenceSpec{Kind: entity.RecurrenceAllDays, To: datePtr(2023, time.December, 31)}
		assert.Nil(t, recurrence.NextFire(spec, "08:00", now, created, loc))
	})
}

func TestDay(t *testing.T) {
	t.Parallel()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	// 2024-01-04 02:30 UTC is still 2024-01-03 in New York
	instant := time.Date(2024, time.January, 4, 2, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-03", recurrence.Day(instant, loc))
	assert.Equal(t, "2024-01-04", recurrence.Day(instant, time.UTC))
}
