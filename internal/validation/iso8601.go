package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Calendar and ordinal dates, extended and basic.
var isoDateLayouts = []string{"2006-01-02", "20060102", "2006-002", "2006002"}

var isoTimeLayouts = []string{"15", "15:04", "15:04:05", "1504", "150405"}

// "Z07:00" also matches a bare "Z".
var isoZoneLayouts = []string{"", "Z07:00", "Z0700", "Z07"}

// isoLayouts holds every accepted layout, reduced precision first.
var isoLayouts = buildISOLayouts()

func buildISOLayouts() []string {
	layouts := []string{"2006", "2006-01"}
	for _, date := range isoDateLayouts {
		layouts = append(layouts, date)
		for _, sep := range []string{"T", " "} {
			for _, clock := range isoTimeLayouts {
				for _, zone := range isoZoneLayouts {
					layouts = append(layouts, date+sep+clock+zone)
				}
			}
		}
	}
	return layouts
}

// 2024-W18, 2024-W18-3, 2024W183
var isoWeekDate = regexp.MustCompile(`^(\d{4})-?W(\d{2})(?:-?([1-7]))?$`)

// ParseISO8601 parses an ISO-8601 date or date-time: reduced precision
// (YYYY, YYYY-MM), calendar, ordinal and week dates in extended or basic
// format, optionally followed by a time and a UTC offset. An empty string
// yields nil.
func ParseISO8601(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if strings.HasSuffix(s, "z") {
		s = s[:len(s)-1] + "Z"
	}
	if m := isoWeekDate.FindStringSubmatch(s); m != nil {
		return parseWeekDate(m[1], m[2], m[3])
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%q is not an ISO-8601 date", s)
}

func parseWeekDate(year, week, day string) (*time.Time, error) {
	y, _ := strconv.Atoi(year)
	w, _ := strconv.Atoi(week)
	d := 1
	if day != "" {
		d, _ = strconv.Atoi(day)
	}

	// Week 1 is the week that contains January 4th.
	jan4 := time.Date(y, time.January, 4, 0, 0, 0, 0, time.UTC)
	monday := jan4.AddDate(0, 0, -((int(jan4.Weekday()) + 6) % 7))
	if _, last := time.Date(y, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek(); w < 1 || w > last {
		return nil, fmt.Errorf("week %d out of range for %d", w, y)
	}

	t := monday.AddDate(0, 0, (w-1)*7+d-1)
	return &t, nil
}
