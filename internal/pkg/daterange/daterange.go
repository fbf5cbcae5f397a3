package daterange

import (
	"time"
)

// Preset identifiers as used in the history view query string.
const (
	PresetAllTime   = "all_time"
	PresetToday     = "today"
	PresetYesterday = "yesterday"
	PresetThisWeek  = "this_week"
	PresetLastWeek  = "last_week"
	PresetThisMonth = "this_month"
	PresetLastMonth = "last_month"
	PresetThisYear  = "this_year"
	PresetLastYear  = "last_year"
	PresetCustom    = "custom"
)

const dateLayout = "2006-01-02"

// Option is one selectable preset with its display label.
type Option struct {
	Value string
	Label string
}

// Options lists the presets in display order.
func Options() []Option {
	return []Option{
		{PresetAllTime, "All time"},
		{PresetToday, "Today"},
		{PresetYesterday, "Yesterday"},
		{PresetThisWeek, "This week"},
		{PresetLastWeek, "Last week"},
		{PresetThisMonth, "This month"},
		{PresetLastMonth, "Last month"},
		{PresetThisYear, "This year"},
		{PresetLastYear, "Last year"},
		{PresetCustom, "Custom"},
	}
}

// Label returns the display label of a preset, "All time" for unknown values.
func Label(preset string) string {
	for _, o := range Options() {
		if o.Value == preset {
			return o.Label
		}
	}
	return "All time"
}

// Range is a half-open-free, fully inclusive unix-second interval.
// Nil bounds mean unbounded.
type Range struct {
	Start *int64
	End   *int64
}

// Resolve computes the query range for a preset. For PresetCustom the
// YYYY-MM-DD start/end strings are parsed inclusively (start 00:00:00, end
// 23:59:59, end clamped to now); a broken custom input falls back to all time.
// Weeks start on Monday. All calculations in UTC.
func Resolve(preset, startDate, endDate string, now time.Time) Range {
	now = now.UTC()

	if preset == PresetCustom && startDate != "" && endDate != "" {
		startDay, errS := time.ParseInLocation(dateLayout, startDate, time.UTC)
		endDay, errE := time.ParseInLocation(dateLayout, endDate, time.UTC)
		if errS == nil && errE == nil {
			end := endDay.Add(24*time.Hour - time.Second)
			if end.After(now) {
				end = now
			}
			return span(startDay, end)
		}
	}

	switch preset {
	case PresetToday:
		return span(startOfDay(now), now)
	case PresetYesterday:
		start := startOfDay(now).AddDate(0, 0, -1)
		return span(start, start.AddDate(0, 0, 1).Add(-time.Second))
	case PresetThisWeek:
		return span(startOfWeek(now), now)
	case PresetLastWeek:
		start := startOfWeek(now).AddDate(0, 0, -7)
		return span(start, start.AddDate(0, 0, 7).Add(-time.Second))
	case PresetThisMonth:
		return span(startOfMonth(now), now)
	case PresetLastMonth:
		firstThis := startOfMonth(now)
		return span(firstThis.AddDate(0, -1, 0), firstThis.Add(-time.Second))
	case PresetThisYear:
		return span(startOfYear(now), now)
	case PresetLastYear:
		start := startOfYear(now).AddDate(-1, 0, 0)
		return span(start, start.AddDate(1, 0, 0).Add(-time.Second))
	default:
		// all_time and anything unrecognized
		return Range{}
	}
}

// DisplayStrings returns the (start, end) date strings shown in the
// datepicker for a preset. All-time defaults to the last 30 days for display.
func DisplayStrings(preset, startDate, endDate string, now time.Time) (string, string) {
	now = now.UTC()
	today := now.Format(dateLayout)

	switch preset {
	case PresetCustom:
		if startDate != "" && endDate != "" {
			return startDate, endDate
		}
		return today, today
	case PresetToday:
		return today, today
	case PresetYesterday:
		y := now.AddDate(0, 0, -1).Format(dateLayout)
		return y, y
	case PresetThisWeek:
		return startOfWeek(now).Format(dateLayout), today
	case PresetLastWeek:
		start := startOfWeek(now).AddDate(0, 0, -7)
		return start.Format(dateLayout), start.AddDate(0, 0, 6).Format(dateLayout)
	case PresetThisMonth:
		return startOfMonth(now).Format(dateLayout), today
	case PresetLastMonth:
		firstThis := startOfMonth(now)
		return firstThis.AddDate(0, -1, 0).Format(dateLayout), firstThis.AddDate(0, 0, -1).Format(dateLayout)
	case PresetThisYear:
		return startOfYear(now).Format(dateLayout), today
	case PresetLastYear:
		start := startOfYear(now).AddDate(-1, 0, 0)
		return start.Format(dateLayout), start.AddDate(1, 0, -1).Format(dateLayout)
	default:
		return now.AddDate(0, 0, -30).Format(dateLayout), today
	}
}

func span(start, end time.Time) Range {
	s := start.Unix()
	e := end.Unix()
	return Range{Start: &s, End: &e}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func startOfWeek(t time.Time) time.Time {
	// Monday-based week
	offset := (int(t.Weekday()) + 6) % 7
	return startOfDay(t).AddDate(0, 0, -offset)
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func startOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
}
