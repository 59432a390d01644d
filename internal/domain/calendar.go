package domain

import "time"

// Calendar holds the date-derived model inputs.
type Calendar struct {
	Day       int
	Month     int
	Year      int
	Quarter   int
	DayOfWeek int // Monday = 0 ... Sunday = 6
	IsWeekend int
}

// CalendarFromDate derives the calendar fields for the given date.
func CalendarFromDate(t time.Time) Calendar {
	month := int(t.Month())
	dow := (int(t.Weekday()) + 6) % 7

	weekend := 0
	if dow >= 5 {
		weekend = 1
	}

	return Calendar{
		Day:       t.Day(),
		Month:     month,
		Year:      t.Year(),
		Quarter:   (month-1)/3 + 1,
		DayOfWeek: dow,
		IsWeekend: weekend,
	}
}

// WeekdayName returns the English name for DayOfWeek.
func (c Calendar) WeekdayName() string {
	return time.Weekday((c.DayOfWeek + 1) % 7).String()
}
