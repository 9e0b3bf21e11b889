package schema

import (
	"fmt"
	"time"
)

var (
	ErrMalformedHours = fmt.Errorf("malformed opening hours")
)

// DayTime is a wall-clock time of day without a date.
type DayTime struct {
	Hour   int `bson:"hour" json:"hour"`
	Minute int `bson:"minute" json:"minute"`
}

// Minutes returns the time of day in minutes after midnight.
func (d DayTime) Minutes() int {
	return d.Hour*60 + d.Minute
}

// OnDate anchors the time of day to a calendar date in its location.
func (d DayTime) OnDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), d.Hour, d.Minute, 0, 0, date.Location())
}

// OpenPeriod is one open/close pair within a day. Close may be numerically
// earlier than Open, which encodes a period spanning midnight; consumers add
// 24h to Close before comparing.
type OpenPeriod struct {
	Open  DayTime `bson:"open" json:"open"`
	Close DayTime `bson:"close" json:"close"`
}

// OpenHours maps a weekday to its ordered open periods. A missing weekday
// means closed that day.
type OpenHours struct {
	Periods map[time.Weekday][]OpenPeriod `bson:"periods" json:"periods"`
}

// weekday document keys as stored upstream
var weekdayKeys = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// OpenHoursFromDocument builds OpenHours from the raw hours sub-document:
// weekday name to a list of ["15:04", "15:04"] pairs. A nil document is
// valid and means no listed hours; a present-but-malformed document is an
// error so the whole record can be rejected.
func OpenHoursFromDocument(doc map[string][][]string) (*OpenHours, error) {
	if doc == nil {
		return nil, nil
	}

	hours := &OpenHours{Periods: map[time.Weekday][]OpenPeriod{}}
	for key, pairs := range doc {
		weekday, ok := weekdayKeys[key]
		if !ok {
			return nil, fmt.Errorf("%w: unknown weekday %q", ErrMalformedHours, key)
		}

		periods := make([]OpenPeriod, 0, len(pairs))
		for _, pair := range pairs {
			if len(pair) != 2 {
				return nil, fmt.Errorf("%w: expect [open, close] pair, got %d values", ErrMalformedHours, len(pair))
			}

			open, err := parseDayTime(pair[0])
			if err != nil {
				return nil, err
			}
			close, err := parseDayTime(pair[1])
			if err != nil {
				return nil, err
			}

			periods = append(periods, OpenPeriod{Open: open, Close: close})
		}

		hours.Periods[weekday] = periods
	}

	return hours, nil
}

func parseDayTime(value string) (DayTime, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return DayTime{}, fmt.Errorf("%w: %s", ErrMalformedHours, err)
	}

	return DayTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}
