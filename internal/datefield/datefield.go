// Package datefield formats and validates free-text dates in DD/MM/YYYY form.
package datefield

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Layout is the textual layout of a complete date.
const Layout = "02/01/2006"

// MaxLen is the length of a complete DD/MM/YYYY date.
const MaxLen = 10

var datePattern = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)

// Normalize applies typing rules to s: everything except digits and '/' is
// dropped and separators are inserted after the day and month groups.
// When the result would be longer than MaxLen, prev is returned unchanged.
func Normalize(prev, s string) string {
	out := clean(s)
	for i := 0; i < 4; i++ {
		next := insertSeparators(out)
		if next == out {
			break
		}
		out = next
	}
	if len(out) > MaxLen {
		return prev
	}
	return out
}

// Format is the one-shot form of Normalize used for pasted or submitted
// values: overlong input is cut to MaxLen instead of being rejected.
// Format(Format(s)) == Format(s) for every s.
func Format(s string) string {
	out := clean(s)
	for i := 0; i < 8; i++ {
		next := truncate(insertSeparators(out))
		if next == out {
			break
		}
		out = next
	}
	return out
}

// IsValid reports whether s is a DD/MM/YYYY string naming a real calendar date.
func IsValid(s string) bool {
	_, ok := Parse(s)
	return ok
}

// Parse returns the date s names, at midnight UTC.
func Parse(s string) (time.Time, bool) {
	m := datePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate formats a day, month and year triple as DD/MM/YYYY.
func FormatDate(day, month, year int) string {
	return fmt.Sprintf("%02d/%02d/%04d", day, month, year)
}

// Today returns the date of now as DD/MM/YYYY.
func Today(now time.Time) string {
	return FormatDate(now.Day(), int(now.Month()), now.Year())
}

func clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || c == '/' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// insertSeparators adds at most one separator: after the day group when s
// has none, or after the month group when s has exactly one.
func insertSeparators(s string) string {
	switch strings.Count(s, "/") {
	case 0:
		if len(s) >= 2 {
			return s[:2] + "/" + s[2:]
		}
	case 1:
		i := strings.IndexByte(s, '/')
		seg := s[i+1:]
		if len(s) >= 5 && len(seg) >= 2 {
			return s[:i+1] + seg[:2] + "/" + seg[2:]
		}
	}
	return s
}

func truncate(s string) string {
	if len(s) > MaxLen {
		return s[:MaxLen]
	}
	return s
}
