package dataprocessing

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ISODate is the output layout of parsed dates
const ISODate = "2006-01-02"

var (
	dayFirst     = regexp.MustCompile(`^(\d{1,2})[./\-]+(\d{1,2})[./\-]+(\d{2,4})$`)
	dayFirstGlue = regexp.MustCompile(`^(\d{1,2})[./\-]+(\d{2})(\d{4})$`)
	yearFirst    = regexp.MustCompile(`^(\d{4})[./\-](\d{1,2})[./\-](\d{1,2})$`)
)

// ParseDate parses day-first dates such as "05/09/2019", "5.9.2019",
// "22/01//2015" or "05/072018", plus ISO "2019-09-05". Two and three digit
// years are taken as 2000+. Impossible calendar dates are rejected.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimFunc(norm.NFKC.String(raw), func(r rune) bool {
		return unicode.IsSpace(r) || r == '\\' || r == '"'
	})
	if s == "" {
		return time.Time{}, false
	}

	var day, month, year string
	if m := yearFirst.FindStringSubmatch(s); m != nil {
		year, month, day = m[1], m[2], m[3]
	} else if m := dayFirst.FindStringSubmatch(s); m != nil {
		day, month, year = m[1], m[2], m[3]
	} else if m := dayFirstGlue.FindStringSubmatch(s); m != nil {
		day, month, year = m[1], m[2], m[3]
	} else {
		return time.Time{}, false
	}

	d, _ := strconv.Atoi(day)
	mo, _ := strconv.Atoi(month)
	y, _ := strconv.Atoi(year)
	if len(year) < 4 {
		y += 2000
	}

	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || int(t.Month()) != mo || t.Year() != y {
		return time.Time{}, false
	}
	return t, true
}

// DateColumns holds the outputs of the date stage
type DateColumns struct {
	Dates   []string
	Years   []string
	Missing []bool
}

// ParseDateColumn parses every cell; unparseable cells become empty with
// Missing set
func ParseDateColumn(cells []string) DateColumns {
	out := DateColumns{
		Dates:   make([]string, len(cells)),
		Years:   make([]string, len(cells)),
		Missing: make([]bool, len(cells)),
	}
	for i, cell := range cells {
		t, ok := ParseDate(cell)
		if !ok {
			out.Missing[i] = true
			continue
		}
		out.Dates[i] = t.Format(ISODate)
		out.Years[i] = strconv.Itoa(t.Year())
	}
	return out
}
