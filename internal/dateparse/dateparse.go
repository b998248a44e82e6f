package dateparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dayFormat is the canonical calendar-date wire format (YYYY-MM-DD).
const dayFormat = "2006-01-02"

var monthDayRegex = regexp.MustCompile(`^(?:(\d{4})-)?(\d{1,2})-(\d{1,2})$`)

// Day parses a YYYY-MM-DD string into midnight UTC of that calendar day.
func Day(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	t, err := time.ParseInLocation(dayFormat, input, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", input)
	}
	return t, nil
}

// MonthDay parses a calendar date down to its month and day, ignoring the
// year when one is present. Accepted forms: "YYYY-MM-DD" and "MM-DD".
func MonthDay(input string) (time.Month, int, error) {
	input = strings.TrimSpace(input)
	matches := monthDayRegex.FindStringSubmatch(input)
	if matches == nil {
		return 0, 0, fmt.Errorf("invalid date %q: use YYYY-MM-DD or MM-DD", input)
	}

	month, err := strconv.Atoi(matches[2])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month in %q", input)
	}

	day, err := strconv.Atoi(matches[3])
	if err != nil || day < 1 || day > 31 {
		return 0, 0, fmt.Errorf("invalid day in %q", input)
	}

	return time.Month(month), day, nil
}

// Relative parses the loose date forms accepted on the command line:
// "today", "yesterday", "N days ago" or an explicit YYYY-MM-DD. The result
// is midnight UTC of the calendar day, computed against now.
func Relative(input string, now time.Time) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))

	midnight := func(t time.Time) time.Time {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	switch input {
	case "", "today":
		return midnight(now), nil
	case "yesterday":
		return midnight(now.AddDate(0, 0, -1)), nil
	}

	agoRegex := regexp.MustCompile(`^(\d+)\s+days?\s+ago$`)
	if matches := agoRegex.FindStringSubmatch(input); matches != nil {
		n, err := strconv.Atoi(matches[1])
		if err != nil || n < 0 || n > 366 {
			return time.Time{}, fmt.Errorf("days ago must be between 0 and 366")
		}
		return midnight(now.AddDate(0, 0, -n)), nil
	}

	return Day(input)
}

// FormatDay renders t in YYYY-MM-DD form.
func FormatDay(t time.Time) string {
	return t.Format(dayFormat)
}
