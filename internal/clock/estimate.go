// Package clock maintains a wall-clock estimate backed by a hardware RTC,
// corrected opportunistically from HTTP Date headers. The document store's
// clock is the canonical source of truth for report ordering, so every
// successful HTTP exchange is a sync opportunity.
package clock

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// "Fri, 12 Jan 2024 20:51:40 GMT"
var httpDateRE = regexp.MustCompile(`\s*(\w+),\s+(\d+)\s+(\w+)\s+(\d+)\s+(\d+):(\d+):(\d+)\s+(\w+)`)

// ErrDateFormat is returned when a Date header does not match the expected
// "<Dow>, <DD> <Mon> <YYYY> <HH>:<MM>:<SS> <TZ>" shape.
var ErrDateFormat = errors.New("unrecognized HTTP Date format")

// UnknownMonthError is returned when the month token of a Date header is not
// one of the twelve canonical English abbreviations.
type UnknownMonthError struct {
	Month string
}

func (e *UnknownMonthError) Error() string {
	return fmt.Sprintf("unknown month %q in HTTP Date", e.Month)
}

var months = map[string]int{
	"Jan": 1, "Feb": 2, "Mar": 3, "Apr": 4, "May": 5, "Jun": 6,
	"Jul": 7, "Aug": 8, "Sep": 9, "Oct": 10, "Nov": 11, "Dec": 12,
}

// index 1..12
var monthAbbrevs = [13]string{"", "Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// minPlausibleYear is the boot-default detector: an RTC reporting an earlier
// year was never set, whatever its provenance claims.
const minPlausibleYear = 2024

// resyncToleranceSeconds is the drift, in seconds, absorbed without touching
// the hardware clock. It is a hysteresis band covering normal round-trip
// latency, not a precision bound.
const resyncToleranceSeconds = 2

// Estimate is a wall-clock timestamp (UTC) plus provenance. Synced is false
// for a device-boot-default clock, which is always considered stale.
type Estimate struct {
	Year   int
	Month  int // 1..12
	Day    int
	Hour   int
	Minute int
	Second int
	Synced bool
}

// Time converts the estimate to a time.Time in UTC.
func (e Estimate) Time() time.Time {
	return time.Date(e.Year, time.Month(e.Month), e.Day, e.Hour, e.Minute, e.Second, 0, time.UTC)
}

// SecondOfDay returns the estimate's offset into its day, in seconds.
func (e Estimate) SecondOfDay() int {
	return e.Hour*3600 + e.Minute*60 + e.Second
}

// FromTime builds an Estimate from a time.Time (converted to UTC).
func FromTime(t time.Time, synced bool) Estimate {
	t = t.UTC()
	return Estimate{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
		Synced: synced,
	}
}

// ParseHTTPDate parses an RFC-1123-style Date header. The timezone token is
// required to be present but is otherwise not validated; GMT is assumed.
func ParseHTTPDate(text string) (Estimate, error) {
	m := httpDateRE.FindStringSubmatch(text)
	if m == nil {
		return Estimate{}, fmt.Errorf("%w: %q", ErrDateFormat, text)
	}
	// m[1] is the day of week, m[8] the timezone; both accepted unchecked.
	mon, ok := months[m[3]]
	if !ok {
		return Estimate{}, &UnknownMonthError{Month: m[3]}
	}
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[4])
	hour, _ := strconv.Atoi(m[5])
	min, _ := strconv.Atoi(m[6])
	sec, _ := strconv.Atoi(m[7])
	return Estimate{
		Year: year, Month: mon, Day: day,
		Hour: hour, Minute: min, Second: sec,
		Synced: true,
	}, nil
}

// FormatHTTPDate renders the estimate in the Date header shape this package
// parses, e.g. "Fri, 12 Jan 2024 20:51:40 GMT".
func FormatHTTPDate(e Estimate) string {
	dow := e.Time().Weekday().String()[:3]
	return fmt.Sprintf("%s, %02d %s %04d %02d:%02d:%02d GMT",
		dow, e.Day, monthAbbrevs[e.Month], e.Year, e.Hour, e.Minute, e.Second)
}

// FormatISO renders "YYYY-Mon-DDTHH:MM:SS", the report identifier prefix.
func FormatISO(e Estimate) string {
	return fmt.Sprintf("%04d-%s-%02dT%02d:%02d:%02d",
		e.Year, monthAbbrevs[e.Month], e.Day, e.Hour, e.Minute, e.Second)
}

// SecondsSince returns the elapsed whole seconds from older to newer.
func SecondsSince(newer, older Estimate) int64 {
	return newer.Time().Unix() - older.Time().Unix()
}

// ShouldResync reports whether parsed should be committed over current:
// either the device clock was never set, or the drift exceeds the tolerance.
func ShouldResync(current, parsed Estimate) bool {
	if !current.Synced || current.Year < minPlausibleYear {
		return true
	}
	delta := parsed.SecondOfDay() - current.SecondOfDay()
	if delta < 0 {
		delta = -delta
	}
	return delta > resyncToleranceSeconds
}
