package usecase

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/venue-directory/internal/domain"
	"github.com/venue-directory/internal/pkg/errors"
)

// ScheduleRow - строка расписания, готовая к показу
type ScheduleRow struct {
	Label       string        `json:"label"`
	StartText   string        `json:"start"`
	EndText     string        `json:"end"`
	IsToday     bool          `json:"is_today"`
	IsActiveNow bool          `json:"is_active_now"`
	LocalDay    *time.Weekday `json:"-"`
}

// ScheduleResolver - перевод расписаний из исходного пояса в пояс зрителя
type ScheduleResolver struct {
	viewer *time.Location
	layout string
	now    func() time.Time
}

// NewScheduleResolver - создание нового ScheduleResolver
func NewScheduleResolver(viewer *time.Location, layout string) *ScheduleResolver {
	if viewer == nil {
		viewer = time.Local
	}
	if layout == "" {
		layout = "15:04"
	}
	return &ScheduleResolver{
		viewer: viewer,
		layout: layout,
		now:    time.Now,
	}
}

// WithClock подменяет источник текущего времени
func (r *ScheduleResolver) WithClock(now func() time.Time) *ScheduleResolver {
	cp := *r
	cp.now = now
	return &cp
}

func (r *ScheduleResolver) Viewer() *time.Location {
	return r.viewer
}

// Today - текущий день недели зрителя
func (r *ScheduleResolver) Today() time.Weekday {
	return r.now().In(r.viewer).Weekday()
}

var rruleDays = [...]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

// ResolveNextOccurrence - ближайшее (от сегодняшнего дня в исходном поясе) наступление
// времени tod в день day, в поясе зрителя
func (r *ScheduleResolver) ResolveNextOccurrence(tod *domain.TimeOfDay, day domain.Weekday, now time.Time) (time.Time, error) {
	if tod == nil {
		return time.Time{}, errors.ErrUnknownTimeZone
	}

	source, err := ResolveZone(tod.TimeZone)
	if err != nil {
		return time.Time{}, err
	}

	sourceNow := now.In(source)
	today := time.Date(sourceNow.Year(), sourceNow.Month(), sourceNow.Day(), 0, 0, 0, 0, source)
	date := nextWeekday(today, day.Time())

	extraDays := 0
	if tod.NextDay {
		extraDays = 1
	}

	occurrence := time.Date(date.Year(), date.Month(), date.Day()+extraDays, tod.Hour, tod.Minute, 0, 0, source)
	return occurrence.In(r.viewer), nil
}

// nextWeekday - первая дата не раньше from с нужным днём недели
func nextWeekday(from time.Time, target time.Weekday) time.Time {
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rruleDays[target]},
		Dtstart:   from,
		Count:     1,
	})
	if err == nil {
		if dates := rule.All(); len(dates) > 0 {
			return dates[0].In(from.Location())
		}
	}

	diff := (int(target) - int(from.Weekday()) + 7) % 7
	return from.AddDate(0, 0, diff)
}

// FormatScheduleRow - подпись и время строки расписания; при нераспознанном поясе
// время выводится в исходном виде с аббревиатурой пояса
func (r *ScheduleResolver) FormatScheduleRow(entry domain.ScheduleEntry, today time.Weekday) ScheduleRow {
	now := r.now()
	row := ScheduleRow{
		IsActiveNow: entry.Resolution != nil && entry.Resolution.IsNow,
	}

	start, startErr := r.ResolveNextOccurrence(entry.Start, entry.Day, now)
	end, endErr := r.ResolveNextOccurrence(entry.End, entry.Day, now)

	if startErr == nil && endErr == nil {
		localDay := start.Weekday()
		row.StartText = start.Format(r.layout)
		row.EndText = end.Format(r.layout)
		row.LocalDay = &localDay
		row.IsToday = localDay == today
	} else {
		row.StartText = formatRawTime(entry.Start, now)
		row.EndText = formatRawTime(entry.End, now)
		row.IsToday = entry.Day.Time() == today
	}

	row.Label = scheduleLabel(entry, row.LocalDay)
	return row
}

// ScheduleRows - всё расписание заведения по дням и часу начала
func (r *ScheduleResolver) ScheduleRows(venue *domain.Venue, today time.Weekday) []ScheduleRow {
	entries := append([]domain.ScheduleEntry(nil), venue.Schedule...)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Day != entries[j].Day {
			return entries[i].Day < entries[j].Day
		}
		return startHour(entries[i]) < startHour(entries[j])
	})

	rows := make([]ScheduleRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, r.FormatScheduleRow(e, today))
	}
	return rows
}

func startHour(e domain.ScheduleEntry) int {
	if e.Start == nil {
		return 0
	}
	return e.Start.Hour
}

// ResolutionHeadline - заголовок карточки расписания
func (r *ScheduleResolver) ResolutionHeadline(res *domain.Resolution) string {
	if res == nil {
		return ""
	}
	if res.IsNow {
		return fmt.Sprintf("Open now until %s!", res.End.In(r.viewer).Format(r.layout))
	}
	start := res.Start.In(r.viewer)
	return fmt.Sprintf("Next open %s at %s", start.Weekday(), start.Format(r.layout))
}

// StatusLine - краткий статус для списка заведений
func (r *ScheduleResolver) StatusLine(venue *domain.Venue) string {
	res := venue.Resolution
	if res == nil {
		return "No scheduled openings"
	}
	if res.IsNow {
		return "Open until " + res.End.In(r.viewer).Format(r.layout)
	}
	start := res.Start.In(r.viewer)
	return fmt.Sprintf("Opens %s %s", start.Format("Mon"), start.Format(r.layout))
}

// RelativeTime - "5 minutes ago" и т.п. относительно now
func RelativeTime(t, now time.Time) string {
	span := now.Sub(t)
	switch {
	case span.Seconds() < 45:
		return "just now"
	case span.Minutes() < 1.5:
		return "a minute ago"
	case span.Hours() < 1:
		return fmt.Sprintf("%.0f minutes ago", math.RoundToEven(span.Minutes()))
	case span.Hours() < 1.5:
		return "an hour ago"
	case span.Hours() < 24:
		return fmt.Sprintf("%.0f hours ago", math.RoundToEven(span.Hours()))
	case span.Hours() < 48:
		return "yesterday"
	}
	return fmt.Sprintf("%.0f days ago", math.RoundToEven(span.Hours()/24))
}

// DescribeInterval - текстовое описание периодичности
func DescribeInterval(interval *domain.Interval) string {
	if interval == nil {
		return "Unknown"
	}

	arg := interval.Argument
	switch interval.Kind {
	case domain.IntervalEveryXWeeks:
		return cadence(arg, "Weekly", "weeks")
	case domain.IntervalEveryXDays:
		return cadence(abs(arg), "Daily", "days")
	case domain.IntervalEveryXMonths:
		return cadence(arg, "Monthly", "months")
	case domain.IntervalEveryXHours:
		return cadence(arg, "Hourly", "hours")
	case domain.IntervalEveryXMinutes:
		return cadence(arg, "Every minute", "minutes")
	case domain.IntervalOnce:
		return "One-time"
	case domain.IntervalOther:
		if arg > 0 {
			return fmt.Sprintf("%s (%d)", interval.Raw, arg)
		}
		return interval.Raw
	}
	return "Unknown"
}

func cadence(n int, singular, unit string) string {
	if n <= 1 {
		return singular
	}
	return fmt.Sprintf("Every %d %s", n, unit)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func scheduleLabel(entry domain.ScheduleEntry, localDay *time.Weekday) string {
	interval := DescribeInterval(entry.Interval)
	if strings.EqualFold(interval, "Daily") {
		return "Daily"
	}

	day := entry.Day.String()
	if localDay != nil {
		day = localDay.String()
	}
	return fmt.Sprintf("%s on %s", interval, pluralizeDay(day))
}

func pluralizeDay(name string) string {
	if strings.HasSuffix(strings.ToLower(name), "day") {
		return name + "s"
	}
	return name
}

// formatRawTime - время без перевода в пояс зрителя: "20:00 PST (+1)"
func formatRawTime(tod *domain.TimeOfDay, now time.Time) string {
	if tod == nil {
		return "--"
	}
	suffix := ""
	if tod.NextDay {
		suffix = " (+1)"
	}
	return fmt.Sprintf("%02d:%02d %s%s", tod.Hour, tod.Minute, ZoneAbbreviation(tod.TimeZone, now.UTC()), suffix)
}
