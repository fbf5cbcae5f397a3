package daterange

import (
	"testing"
	"time"
)

// Wednesday in the middle of the year, 14:45 UTC.
var testNow = time.Date(2025, 6, 18, 14, 45, 30, 0, time.UTC)

func ts(year int, month time.Month, day, hour, minute, second int) int64 {
	return time.Date(year, month, day, hour, minute, second, 0, time.UTC).Unix()
}

func TestResolve_Presets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		preset    string
		wantStart int64
		wantEnd   int64
	}{
		{PresetToday, ts(2025, 6, 18, 0, 0, 0), testNow.Unix()},
		{PresetYesterday, ts(2025, 6, 17, 0, 0, 0), ts(2025, 6, 17, 23, 59, 59)},
		{PresetThisWeek, ts(2025, 6, 16, 0, 0, 0), testNow.Unix()},
		{PresetLastWeek, ts(2025, 6, 9, 0, 0, 0), ts(2025, 6, 15, 23, 59, 59)},
		{PresetThisMonth, ts(2025, 6, 1, 0, 0, 0), testNow.Unix()},
		{PresetLastMonth, ts(2025, 5, 1, 0, 0, 0), ts(2025, 5, 31, 23, 59, 59)},
		{PresetThisYear, ts(2025, 1, 1, 0, 0, 0), testNow.Unix()},
		{PresetLastYear, ts(2024, 1, 1, 0, 0, 0), ts(2024, 12, 31, 23, 59, 59)},
	}

	for _, tt := range tests {
		r := Resolve(tt.preset, "", "", testNow)
		if r.Start == nil || r.End == nil {
			t.Fatalf("Resolve(%q) returned unbounded range", tt.preset)
		}
		if *r.Start != tt.wantStart {
			t.Errorf("Resolve(%q) start = %d, want %d", tt.preset, *r.Start, tt.wantStart)
		}
		if *r.End != tt.wantEnd {
			t.Errorf("Resolve(%q) end = %d, want %d", tt.preset, *r.End, tt.wantEnd)
		}
	}
}

func TestResolve_AllTimeIsUnbounded(t *testing.T) {
	t.Parallel()

	for _, preset := range []string{PresetAllTime, "", "bogus"} {
		r := Resolve(preset, "", "", testNow)
		if r.Start != nil || r.End != nil {
			t.Fatalf("Resolve(%q) = bounded range, want unbounded", preset)
		}
	}
}

func TestResolve_WeekStartsMonday(t *testing.T) {
	t.Parallel()

	// A Sunday still belongs to the week that started the previous Monday.
	sunday := time.Date(2025, 6, 22, 10, 0, 0, 0, time.UTC)
	r := Resolve(PresetThisWeek, "", "", sunday)
	if *r.Start != ts(2025, 6, 16, 0, 0, 0) {
		t.Fatalf("week start = %d, want Monday 2025-06-16", *r.Start)
	}

	// A Monday starts its own week.
	monday := time.Date(2025, 6, 16, 1, 0, 0, 0, time.UTC)
	r = Resolve(PresetThisWeek, "", "", monday)
	if *r.Start != ts(2025, 6, 16, 0, 0, 0) {
		t.Fatalf("week start on Monday = %d, want same day", *r.Start)
	}
}

func TestResolve_CustomInclusive(t *testing.T) {
	t.Parallel()

	r := Resolve(PresetCustom, "2025-06-01", "2025-06-10", testNow)
	if *r.Start != ts(2025, 6, 1, 0, 0, 0) {
		t.Errorf("custom start = %d, want midnight of start day", *r.Start)
	}
	if *r.End != ts(2025, 6, 10, 23, 59, 59) {
		t.Errorf("custom end = %d, want last second of end day", *r.End)
	}
}

func TestResolve_CustomEndClampedToNow(t *testing.T) {
	t.Parallel()

	r := Resolve(PresetCustom, "2025-06-01", "2025-12-31", testNow)
	if *r.End != testNow.Unix() {
		t.Fatalf("custom end = %d, want clamped to now %d", *r.End, testNow.Unix())
	}
}

func TestResolve_BrokenCustomFallsBackToAllTime(t *testing.T) {
	t.Parallel()

	for _, tt := range [][2]string{
		{"not-a-date", "2025-06-10"},
		{"2025-06-01", "10.06.2025"},
		{"", "2025-06-10"},
	} {
		r := Resolve(PresetCustom, tt[0], tt[1], testNow)
		if r.Start != nil || r.End != nil {
			t.Fatalf("Resolve(custom, %q, %q) = bounded range, want all time", tt[0], tt[1])
		}
	}
}

func TestLabel(t *testing.T) {
	t.Parallel()

	if got := Label(PresetLastMonth); got != "Last month" {
		t.Errorf("Label(last_month) = %q", got)
	}
	if got := Label("nonsense"); got != "All time" {
		t.Errorf("Label(nonsense) = %q, want All time", got)
	}
}

func TestDisplayStrings(t *testing.T) {
	t.Parallel()

	start, end := DisplayStrings(PresetLastMonth, "", "", testNow)
	if start != "2025-05-01" || end != "2025-05-31" {
		t.Errorf("DisplayStrings(last_month) = %q..%q", start, end)
	}

	start, end = DisplayStrings(PresetCustom, "2025-01-05", "2025-01-07", testNow)
	if start != "2025-01-05" || end != "2025-01-07" {
		t.Errorf("DisplayStrings(custom) = %q..%q, want echoed input", start, end)
	}

	start, end = DisplayStrings(PresetLastYear, "", "", testNow)
	if start != "2024-01-01" || end != "2024-12-31" {
		t.Errorf("DisplayStrings(last_year) = %q..%q", start, end)
	}
}
