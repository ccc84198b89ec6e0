// README: Date normalizer: turns absolute, relative and partial date text into YYYY-MM-DD.
package travel

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const isoLayout = "2006-01-02"

var (
	todayRe     = regexp.MustCompile(`\b(?:today|tonight)\b`)
	tomorrowRe  = regexp.MustCompile(`\b(?:tomorrow|tmrw|tmr)\b`)
	nextWeekRe  = regexp.MustCompile(`\bnext\s+week\b`)
	nextMonthRe = regexp.MustCompile(`\bnext\s+month\b`)

	dayFirstRe   = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?(` + monthAlt + `)\b\.?(?:,?\s+(\d{4})\b)?`)
	monthFirstRe = regexp.MustCompile(`\b(` + monthAlt + `)\.?\s+(\d{1,2})(?:st|nd|rd|th)?\b(?:,?\s+(\d{4})\b)?`)
	isoExactRe   = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	numericExRe  = regexp.MustCompile(`^(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{2}|\d{4})$`)
	digitsRe     = regexp.MustCompile(`^\d+$`)
)

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sept": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// Normalize converts text to YYYY-MM-DD relative to ref. Rules apply in
// order and the first match wins: calendar dates, relative words, ISO,
// numeric triples, then a fuzzy parse. Dates given without a year that would fall
// before ref move to the following year. ("", false) means the text is not a
// date this normalizer understands.
func Normalize(text string, ref time.Time) (string, bool) {
	s := normalizeMessage(text)
	s = strings.Trim(s, " ,!?")
	if s == "" {
		return "", false
	}
	day := dateOnly(ref)

	// A calendar date outranks a relative word in the same reply ("June 15, not today").
	if m := dayFirstRe.FindStringSubmatch(s); m != nil {
		return calendarDate(day, m[3], monthsByName[m[2]], m[1])
	}
	if m := monthFirstRe.FindStringSubmatch(s); m != nil {
		return calendarDate(day, m[3], monthsByName[m[1]], m[2])
	}

	switch {
	case todayRe.MatchString(s):
		return day.Format(isoLayout), true
	case tomorrowRe.MatchString(s):
		return day.AddDate(0, 0, 1).Format(isoLayout), true
	case nextWeekRe.MatchString(s):
		return day.AddDate(0, 0, 7).Format(isoLayout), true
	case nextMonthRe.MatchString(s):
		return nextMonth(day).Format(isoLayout), true
	}

	s = strings.TrimRight(s, ".")
	if m := isoExactRe.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		if t, ok := validDate(y, time.Month(mo), d, ref.Location()); ok {
			return t.Format(isoLayout), true
		}
		return "", false
	}
	if m := numericExRe.FindStringSubmatch(s); m != nil {
		return numericDate(m[1], m[2], m[3], ref.Location())
	}

	return fuzzyDate(s, day)
}

// calendarDate builds a date from a day and month, using the explicit year when
// given and otherwise the first occurrence on or after ref.
func calendarDate(ref time.Time, yearText string, month time.Month, dayText string) (string, bool) {
	d, err := strconv.Atoi(dayText)
	if err != nil || month == 0 {
		return "", false
	}
	if yearText != "" {
		y, _ := strconv.Atoi(yearText)
		if t, ok := validDate(y, month, d, ref.Location()); ok {
			return t.Format(isoLayout), true
		}
		return "", false
	}
	if t, ok := upcoming(ref, month, d); ok {
		return t.Format(isoLayout), true
	}
	return "", false
}

// numericDate reads a/b/y month-first, then day-first. Two-digit years below
// 50 are 20xx, the rest 19xx.
func numericDate(a, b, yearText string, loc *time.Location) (string, bool) {
	first, _ := strconv.Atoi(a)
	second, _ := strconv.Atoi(b)
	y, _ := strconv.Atoi(yearText)
	if len(yearText) == 2 {
		if y < 50 {
			y += 2000
		} else {
			y += 1900
		}
	}
	if t, ok := validDate(y, time.Month(first), second, loc); ok {
		return t.Format(isoLayout), true
	}
	if t, ok := validDate(y, time.Month(second), first, loc); ok {
		return t.Format(isoLayout), true
	}
	return "", false
}

func fuzzyDate(s string, ref time.Time) (out string, ok bool) {
	// Bare numbers parse as timestamps, never as travel dates.
	if digitsRe.MatchString(s) {
		return "", false
	}
	// dateparse panics on some malformed inputs.
	defer func() {
		if recover() != nil {
			out, ok = "", false
		}
	}()
	t, err := dateparse.ParseIn(s, ref.Location())
	if err != nil {
		return "", false
	}
	if t.Year() <= 1 {
		u, ok := upcoming(ref, t.Month(), t.Day())
		if !ok {
			return "", false
		}
		return u.Format(isoLayout), true
	}
	return t.Format(isoLayout), true
}

// upcoming places month/day in ref's year, or the next year when that is already past.
func upcoming(ref time.Time, month time.Month, day int) (time.Time, bool) {
	t, ok := validDate(ref.Year(), month, day, ref.Location())
	if ok && !t.Before(ref) {
		return t, true
	}
	return validDate(ref.Year()+1, month, day, ref.Location())
}

func validDate(y int, m time.Month, d int, loc *time.Location) (time.Time, bool) {
	if y < 1 || m < time.January || m > time.December || d < 1 {
		return time.Time{}, false
	}
	t := time.Date(y, m, d, 0, 0, 0, 0, loc)
	if t.Year() != y || t.Month() != m || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

// nextMonth keeps the day of month, clamped to the length of the next month.
func nextMonth(ref time.Time) time.Time {
	y, m := ref.Year(), ref.Month()+1
	if m > time.December {
		m = time.January
		y++
	}
	last := time.Date(y, m+1, 0, 0, 0, 0, 0, ref.Location()).Day()
	d := ref.Day()
	if d > last {
		d = last
	}
	return time.Date(y, m, d, 0, 0, 0, 0, ref.Location())
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsISODate reports whether s is a valid calendar date in YYYY-MM-DD form.
func IsISODate(s string) bool {
	t, err := time.Parse(isoLayout, s)
	return err == nil && t.Format(isoLayout) == s
}
