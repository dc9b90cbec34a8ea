package watcher

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/helloworldpark/tickle-upper-limit/commons"
	"github.com/helloworldpark/tickle-upper-limit/logger"
)

const (
	// DefaultCutoffHour is the KRX opening hour. Before it, today's table is not there yet.
	DefaultCutoffHour = 9

	// QueryLayout is the date layout of the KRX data service.
	QueryLayout = "20060102"
	// NoteLayout is the date layout of note headings and file names.
	NoteLayout = "2006-01-02"
)

var newDateError = commons.NewTaggedError("Watcher")

// TradingDay resolves the day whose market data should be reported.
// Before cutoffHour (Seoul time) it is yesterday, from cutoffHour on it is today.
func TradingDay(now time.Time, cutoffHour int) time.Time {
	day := commons.Midnight(now)
	if now.In(commons.AsiaSeoul).Hour() < cutoffHour {
		day = day.AddDate(0, 0, -1)
	}
	return day
}

// ParseDay parses YYYY-MM-DD as a Seoul midnight.
func ParseDay(value string) (time.Time, error) {
	t, err := time.ParseInLocation(NoteLayout, value, commons.AsiaSeoul)
	if err != nil {
		return time.Time{}, newDateError(fmt.Sprintf("invalid day %q, expected %s", value, NoteLayout))
	}
	return t, nil
}

// DateChecker is a struct holding holidays as a map
type DateChecker struct {
	holidays map[int64]bool
}

// NewDateChecker returns a new DateChecker knowing the given holidays(YYYY-MM-DD).
// Weekends are always holidays.
func NewDateChecker(holidays []string) (*DateChecker, error) {
	checker := DateChecker{
		holidays: make(map[int64]bool),
	}
	for _, h := range holidays {
		day, err := ParseDay(h)
		if err != nil {
			return nil, err
		}
		checker.holidays[day.Unix()] = true
	}
	if len(holidays) > 0 {
		logger.Info("[Watcher] Registered %d holidays", len(holidays))
	}
	return &checker, nil
}

// IsHoliday checks if the day is holiday or not.
func (c *DateChecker) IsHoliday(day time.Time) bool {
	day = day.In(commons.AsiaSeoul)
	// 토, 일요일은 주식거래가 없지롱
	if day.Weekday() == time.Sunday || day.Weekday() == time.Saturday {
		return true
	}
	_, ok := c.holidays[commons.Midnight(day).Unix()]
	return ok
}

// Description lists the registered holidays from the year of now.
func (c *DateChecker) Description(now time.Time) string {
	var buf bytes.Buffer

	addLine := func(str string, args ...interface{}) {
		if len(args) > 0 {
			str = fmt.Sprintf(str, args...)
		}
		buf.WriteString(str)
		buf.WriteString("\n")
	}

	weekdayKorean := [7]string{"일", "월", "화", "수", "목", "금", "토"}
	currentYear := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, commons.AsiaSeoul).Unix()
	addLine("[Holiday]")
	addLine("    Today: %s", now.Format(NoteLayout))
	if c.IsHoliday(now) {
		addLine("    Today is holiday")
	} else {
		addLine("    Today is not holiday")
	}
	addLine("List")
	var holidayTimestamp []int64
	for timestamp := range c.holidays {
		if timestamp < currentYear {
			continue
		}
		holidayTimestamp = append(holidayTimestamp, timestamp)
	}
	sort.Slice(holidayTimestamp, func(i, j int) bool {
		return holidayTimestamp[i] < holidayTimestamp[j]
	})
	for i, timestamp := range holidayTimestamp {
		holiday := commons.Unix(timestamp)
		y, m, d := holiday.Date()
		weekday := weekdayKorean[int(holiday.Weekday())]
		addLine("    %2d. %4d년 %2d월 %2d일 %v요일", i+1, y, int(m), d, weekday)
	}
	return buf.String()
}
