package project

import (
	"fmt"
	"time"
)

// DateLayout is the year.month format used for date ranges.
const DateLayout = "2006.01"

// Duration returns the elapsed time between the start and end dates. A nil
// end date means the project is ongoing and now is used instead.
func (p *Project) Duration(now time.Time) time.Duration {
	end := now
	if p.EndDate != nil {
		end = *p.EndDate
	}
	if end.Before(p.StartDate) {
		return 0
	}
	return end.Sub(p.StartDate)
}

// DurationText formats the project duration in whole days, months or years.
// Months are counted as 30 days and years as 365.
func (p *Project) DurationText(now time.Time) string {
	return FormatDays(int(p.Duration(now) / (24 * time.Hour)))
}

// FormatDays renders a day count the way durations are shown on cards and in
// the timeline.
func FormatDays(days int) string {
	switch {
	case days <= 0:
		return "same day"
	case days < 30:
		return plural(days, "day")
	case days < 365:
		return plural(days/30, "month")
	}
	years := days / 365
	months := (days % 365) / 30
	if months > 0 {
		return plural(years, "year") + " " + plural(months, "month")
	}
	return plural(years, "year")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// DateRangeText formats the start and end as "2024.03 - 2024.09", with
// "present" standing in for a missing end date.
func (p *Project) DateRangeText() string {
	end := "present"
	if p.EndDate != nil {
		end = p.EndDate.Format(DateLayout)
	}
	return p.StartDate.Format(DateLayout) + " - " + end
}

// ParseDate accepts the date formats used on the command line and in the API:
// RFC 3339, 2006-01-02 and 2006.01.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02", DateLayout, "2006-01"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q: want YYYY-MM-DD, YYYY.MM or RFC 3339", s)
}
