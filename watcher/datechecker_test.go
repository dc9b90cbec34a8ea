package watcher

import (
	"strings"
	"testing"
	"time"

	"github.com/helloworldpark/tickle-upper-limit/commons"
)

func TestTradingDay(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, commons.AsiaSeoul)
	}
	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"before cutoff", time.Date(2024, 3, 5, 8, 59, 59, 0, commons.AsiaSeoul), day(2024, 3, 4)},
		{"at cutoff", time.Date(2024, 3, 5, 9, 0, 0, 0, commons.AsiaSeoul), day(2024, 3, 5)},
		{"after cutoff", time.Date(2024, 3, 5, 18, 30, 0, 0, commons.AsiaSeoul), day(2024, 3, 5)},
		{"midnight", time.Date(2024, 3, 5, 0, 0, 0, 0, commons.AsiaSeoul), day(2024, 3, 4)},
		{"new year", time.Date(2024, 1, 1, 7, 0, 0, 0, commons.AsiaSeoul), day(2023, 12, 31)},
		// 2024-03-05 01:00 UTC is 10:00 in Seoul
		{"utc input", time.Date(2024, 3, 5, 1, 0, 0, 0, time.UTC), day(2024, 3, 5)},
	}
	for _, c := range cases {
		got := TradingDay(c.now, DefaultCutoffHour)
		if !got.Equal(c.want) {
			t.Errorf("%s: TradingDay(%v) = %v, want %v", c.name, c.now, got, c.want)
		}
	}
}

func TestParseDay(t *testing.T) {
	got, err := ParseDay("2024-03-05")
	if err != nil {
		t.Fatalf("ParseDay returned error: %v", err)
	}
	if got.Format(QueryLayout) != "20240305" {
		t.Errorf("unexpected day: %v", got)
	}
	if _, err := ParseDay("20240305"); err == nil {
		t.Error("ParseDay should reject the query layout")
	}
}

func TestDateChecker(t *testing.T) {
	checker, err := NewDateChecker([]string{"2024-03-01", "2024-05-06"})
	if err != nil {
		t.Fatalf("NewDateChecker returned error: %v", err)
	}

	cases := map[string]bool{
		"2024-03-01": true,  // 삼일절
		"2024-03-02": true,  // Saturday
		"2024-03-03": true,  // Sunday
		"2024-03-04": false, // Monday
		"2024-05-06": true,
	}
	for s, want := range cases {
		day, _ := ParseDay(s)
		if got := checker.IsHoliday(day); got != want {
			t.Errorf("IsHoliday(%s) = %v, want %v", s, got, want)
		}
	}

	// Afternoon of a holiday is still a holiday
	if !checker.IsHoliday(time.Date(2024, 3, 1, 15, 0, 0, 0, commons.AsiaSeoul)) {
		t.Error("holiday check should ignore the time of day")
	}

	desc := checker.Description(time.Date(2024, 3, 4, 10, 0, 0, 0, commons.AsiaSeoul))
	if !strings.Contains(desc, "Today is not holiday") || !strings.Contains(desc, "2024년  3월  1일 금요일") {
		t.Errorf("unexpected description:\n%s", desc)
	}
}

func TestDateCheckerInvalid(t *testing.T) {
	if _, err := NewDateChecker([]string{"2024/03/01"}); err == nil {
		t.Error("NewDateChecker should reject malformed days")
	}
}
