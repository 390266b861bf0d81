package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venue-directory/internal/domain"
	"github.com/venue-directory/internal/pkg/errors"
	"github.com/venue-directory/internal/usecase"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestScheduleResolver_ResolveNextOccurrence(t *testing.T) {
	resolver := usecase.NewScheduleResolver(time.UTC, "15:04")
	saturday8pm := &domain.TimeOfDay{Hour: 20, Minute: 0, TimeZone: "Pacific Standard Time"}

	t.Run("winter offset", func(t *testing.T) {
		now := time.Date(2026, time.January, 14, 12, 0, 0, 0, time.UTC)

		got, err := resolver.ResolveNextOccurrence(saturday8pm, domain.Saturday, now)

		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2026, time.January, 18, 4, 0, 0, 0, time.UTC)), got.String())
		assert.Equal(t, time.UTC, got.Location())
	})

	t.Run("summer offset", func(t *testing.T) {
		now := time.Date(2026, time.July, 15, 12, 0, 0, 0, time.UTC)

		got, err := resolver.ResolveNextOccurrence(saturday8pm, domain.Saturday, now)

		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2026, time.July, 19, 3, 0, 0, 0, time.UTC)), got.String())
	})

	t.Run("same source day counts even after the time passed", func(t *testing.T) {
		// Saturday 21:00 in Los Angeles
		now := time.Date(2026, time.January, 18, 5, 0, 0, 0, time.UTC)

		got, err := resolver.ResolveNextOccurrence(saturday8pm, domain.Saturday, now)

		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2026, time.January, 18, 4, 0, 0, 0, time.UTC)), got.String())
	})

	t.Run("next day flag", func(t *testing.T) {
		now := time.Date(2026, time.January, 14, 12, 0, 0, 0, time.UTC)
		tod := &domain.TimeOfDay{Hour: 1, Minute: 30, NextDay: true, TimeZone: "UTC"}

		got, err := resolver.ResolveNextOccurrence(tod, domain.Saturday, now)

		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2026, time.January, 18, 1, 30, 0, 0, time.UTC)), got.String())
	})

	t.Run("iana zone", func(t *testing.T) {
		now := time.Date(2026, time.January, 14, 12, 0, 0, 0, time.UTC)
		tod := &domain.TimeOfDay{Hour: 21, TimeZone: "Europe/London"}

		got, err := resolver.ResolveNextOccurrence(tod, domain.Wednesday, now)

		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2026, time.January, 14, 21, 0, 0, 0, time.UTC)), got.String())
	})

	t.Run("unknown zone", func(t *testing.T) {
		_, err := resolver.ResolveNextOccurrence(&domain.TimeOfDay{Hour: 1, TimeZone: "Mars/Olympus"}, domain.Monday, time.Now())
		assert.ErrorIs(t, err, errors.ErrUnknownTimeZone)

		_, err = resolver.ResolveNextOccurrence(&domain.TimeOfDay{Hour: 1, TimeZone: "  "}, domain.Monday, time.Now())
		assert.ErrorIs(t, err, errors.ErrUnknownTimeZone)
	})
}

func TestDescribeInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval *domain.Interval
		want     string
	}{
		{"absent", nil, "Unknown"},
		{"weekly", &domain.Interval{Kind: domain.IntervalEveryXWeeks, Argument: 1}, "Weekly"},
		{"biweekly", &domain.Interval{Kind: domain.IntervalEveryXWeeks, Argument: 2}, "Every 2 weeks"},
		{"daily negative", &domain.Interval{Kind: domain.IntervalEveryXDays, Argument: -1}, "Daily"},
		{"every three days negative", &domain.Interval{Kind: domain.IntervalEveryXDays, Argument: -3}, "Every 3 days"},
		{"monthly", &domain.Interval{Kind: domain.IntervalEveryXMonths}, "Monthly"},
		{"hours", &domain.Interval{Kind: domain.IntervalEveryXHours, Argument: 6}, "Every 6 hours"},
		{"minute", &domain.Interval{Kind: domain.IntervalEveryXMinutes, Argument: 1}, "Every minute"},
		{"once", &domain.Interval{Kind: domain.IntervalOnce, Argument: 4}, "One-time"},
		{"other with argument", &domain.Interval{Kind: domain.IntervalOther, Raw: "Fortnightly", Argument: 2}, "Fortnightly (2)"},
		{"other without argument", &domain.Interval{Kind: domain.IntervalOther, Raw: "7"}, "7"},
		{"unknown kind", &domain.Interval{Kind: domain.IntervalUnknown, Argument: 3}, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, usecase.DescribeInterval(tt.interval))
		})
	}
}

func TestScheduleResolver_FormatScheduleRow(t *testing.T) {
	now := time.Date(2026, time.January, 14, 12, 0, 0, 0, time.UTC)
	resolver := usecase.NewScheduleResolver(time.UTC, "15:04").WithClock(fixedClock(now))

	t.Run("localized", func(t *testing.T) {
		entry := domain.ScheduleEntry{
			Day:        domain.Saturday,
			Start:      &domain.TimeOfDay{Hour: 20, TimeZone: "Pacific Standard Time"},
			End:        &domain.TimeOfDay{Hour: 23, TimeZone: "Pacific Standard Time"},
			Interval:   &domain.Interval{Kind: domain.IntervalEveryXWeeks, Argument: 1},
			Resolution: &domain.Resolution{IsNow: true},
		}

		row := resolver.FormatScheduleRow(entry, time.Sunday)

		assert.Equal(t, "04:00", row.StartText)
		assert.Equal(t, "07:00", row.EndText)
		assert.Equal(t, "Weekly on Sundays", row.Label)
		assert.True(t, row.IsToday)
		assert.True(t, row.IsActiveNow)
		require.NotNil(t, row.LocalDay)
		assert.Equal(t, time.Sunday, *row.LocalDay)
	})

	t.Run("raw fallback", func(t *testing.T) {
		entry := domain.ScheduleEntry{
			Day:      domain.Saturday,
			Start:    &domain.TimeOfDay{Hour: 20, Minute: 5, NextDay: true, TimeZone: "Mars/Olympus"},
			Interval: &domain.Interval{Kind: domain.IntervalEveryXWeeks, Argument: 2},
		}

		row := resolver.FormatScheduleRow(entry, time.Saturday)

		assert.Equal(t, "20:05 Mars/Olympus (+1)", row.StartText)
		assert.Equal(t, "--", row.EndText)
		assert.Equal(t, "Every 2 weeks on Saturdays", row.Label)
		assert.True(t, row.IsToday)
		assert.False(t, row.IsActiveNow)
		assert.Nil(t, row.LocalDay)
	})

	t.Run("daily label", func(t *testing.T) {
		entry := domain.ScheduleEntry{
			Day:      domain.Monday,
			Start:    &domain.TimeOfDay{Hour: 18, TimeZone: "UTC"},
			End:      &domain.TimeOfDay{Hour: 20, TimeZone: "UTC"},
			Interval: &domain.Interval{Kind: domain.IntervalEveryXDays, Argument: 1},
		}

		row := resolver.FormatScheduleRow(entry, time.Wednesday)

		assert.Equal(t, "Daily", row.Label)
		assert.Equal(t, "18:00", row.StartText)
		assert.False(t, row.IsToday)
	})
}

func TestScheduleResolver_ScheduleRowsOrder(t *testing.T) {
	resolver := usecase.NewScheduleResolver(time.UTC, "15:04").
		WithClock(fixedClock(time.Date(2026, time.January, 14, 12, 0, 0, 0, time.UTC)))

	venue := &domain.Venue{ID: "v1", Schedule: []domain.ScheduleEntry{
		{Day: domain.Friday, Start: &domain.TimeOfDay{Hour: 22, TimeZone: "UTC"}, End: &domain.TimeOfDay{Hour: 23, TimeZone: "UTC"}},
		{Day: domain.Monday, Start: &domain.TimeOfDay{Hour: 19, TimeZone: "UTC"}, End: &domain.TimeOfDay{Hour: 21, TimeZone: "UTC"}},
		{Day: domain.Friday, Start: &domain.TimeOfDay{Hour: 18, TimeZone: "UTC"}, End: &domain.TimeOfDay{Hour: 20, TimeZone: "UTC"}},
	}}

	rows := resolver.ScheduleRows(venue, time.Wednesday)

	require.Len(t, rows, 3)
	assert.Equal(t, "19:00", rows[0].StartText)
	assert.Equal(t, "18:00", rows[1].StartText)
	assert.Equal(t, "22:00", rows[2].StartText)
	assert.Equal(t, "Unknown on Fridays", rows[2].Label)
}

func TestZoneAbbreviation(t *testing.T) {
	winter := time.Date(2026, time.January, 14, 12, 0, 0, 0, time.UTC)
	summer := time.Date(2026, time.July, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "PST", usecase.ZoneAbbreviation("Pacific Standard Time", winter))
	assert.Equal(t, "PDT", usecase.ZoneAbbreviation("Pacific Standard Time", summer))
	assert.Equal(t, "PDT", usecase.ZoneAbbreviation("America/Los_Angeles", summer))
	assert.Equal(t, "CEST", usecase.ZoneAbbreviation("W. Europe Standard Time", summer))
	assert.Equal(t, "JST", usecase.ZoneAbbreviation("Asia/Tokyo", winter))
	assert.Equal(t, "K", usecase.ZoneAbbreviation("Korea Standard Time", winter))
	assert.Equal(t, "IST", usecase.ZoneAbbreviation("Asia/Kolkata", winter))
	assert.Equal(t, "UTC", usecase.ZoneAbbreviation("Etc/UTC", winter))
	assert.Equal(t, "UTC", usecase.ZoneAbbreviation("", winter))
	assert.Equal(t, "GMT", usecase.ZoneAbbreviation("gmt", winter))
	assert.Equal(t, "Nowhere/Special", usecase.ZoneAbbreviation("Nowhere/Special", winter))
}

func TestScheduleResolver_StatusAndHeadline(t *testing.T) {
	resolver := usecase.NewScheduleResolver(time.UTC, "15:04")

	open := &domain.Resolution{
		IsNow: true,
		Start: time.Date(2026, time.January, 14, 18, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.January, 14, 21, 0, 0, 0, time.UTC),
	}
	upcoming := &domain.Resolution{
		Start: time.Date(2026, time.January, 17, 20, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.January, 17, 23, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, "Open until 21:00", resolver.StatusLine(&domain.Venue{Resolution: open}))
	assert.Equal(t, "Opens Sat 20:00", resolver.StatusLine(&domain.Venue{Resolution: upcoming}))
	assert.Equal(t, "No scheduled openings", resolver.StatusLine(&domain.Venue{}))

	assert.Equal(t, "Open now until 21:00!", resolver.ResolutionHeadline(open))
	assert.Equal(t, "Next open Saturday at 20:00", resolver.ResolutionHeadline(upcoming))
	assert.Empty(t, resolver.ResolutionHeadline(nil))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, time.January, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{60 * time.Second, "a minute ago"},
		{150 * time.Second, "2 minutes ago"},
		{30 * time.Minute, "30 minutes ago"},
		{70 * time.Minute, "an hour ago"},
		{5 * time.Hour, "5 hours ago"},
		{30 * time.Hour, "yesterday"},
		{72 * time.Hour, "3 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, usecase.RelativeTime(now.Add(-tt.ago), now))
		})
	}
}
