package hours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mozilla-mobile/prox-sub000/schema"
)

// mondayOf returns a known Monday so weekday math stays readable.
// 2020-06-22 was a Monday.
func mondayAt(hour, minute int) time.Time {
	return time.Date(2020, 6, 22, hour, minute, 0, 0, time.UTC)
}

func overnightSchedule() *schema.OpenHours {
	return &schema.OpenHours{
		Periods: map[time.Weekday][]schema.OpenPeriod{
			time.Monday: {
				{Open: schema.DayTime{Hour: 22}, Close: schema.DayTime{Hour: 2}},
			},
		},
	}
}

func TestIsOpenOvernight(t *testing.T) {
	h := overnightSchedule()

	// Monday 22:00-02:00 spans midnight into Tuesday
	assert.True(t, IsOpen(h, mondayAt(23, 0)))
	assert.True(t, IsOpen(h, mondayAt(1, 0).AddDate(0, 0, 1)))  // Tuesday 01:00
	assert.False(t, IsOpen(h, mondayAt(3, 0).AddDate(0, 0, 1))) // Tuesday 03:00
	assert.False(t, IsOpen(h, mondayAt(21, 59)))
}

func TestIsOpenBoundaries(t *testing.T) {
	h := &schema.OpenHours{
		Periods: map[time.Weekday][]schema.OpenPeriod{
			time.Monday: {
				{Open: schema.DayTime{Hour: 9}, Close: schema.DayTime{Hour: 17}},
			},
		},
	}

	// [open, close)
	assert.True(t, IsOpen(h, mondayAt(9, 0)))
	assert.True(t, IsOpen(h, mondayAt(16, 59)))
	assert.False(t, IsOpen(h, mondayAt(17, 0)))
}

func TestIsOpenNilSchedule(t *testing.T) {
	assert.False(t, IsOpen(nil, mondayAt(12, 0)))
}

func TestNextOpeningTime(t *testing.T) {
	h := &schema.OpenHours{
		Periods: map[time.Weekday][]schema.OpenPeriod{
			time.Monday: {
				{Open: schema.DayTime{Hour: 9}, Close: schema.DayTime{Hour: 12}},
				{Open: schema.DayTime{Hour: 14}, Close: schema.DayTime{Hour: 18}},
			},
			time.Wednesday: {
				{Open: schema.DayTime{Hour: 10}, Close: schema.DayTime{Hour: 16}},
			},
		},
	}

	// later the same day
	assert.Equal(t, mondayAt(14, 0), NextOpeningTime(h, mondayAt(12, 30)))

	// skips closed Tuesday into Wednesday
	wednesday := mondayAt(10, 0).AddDate(0, 0, 2)
	assert.Equal(t, wednesday, NextOpeningTime(h, mondayAt(19, 0)))

	// strictly after: being exactly at the open instant points at the next period
	assert.Equal(t, mondayAt(14, 0), NextOpeningTime(h, mondayAt(9, 0)))
}

func TestNextOpeningTimeEmptySchedule(t *testing.T) {
	h := &schema.OpenHours{Periods: map[time.Weekday][]schema.OpenPeriod{}}
	assert.True(t, NextOpeningTime(h, mondayAt(9, 0)).IsZero())
}

func TestClosingTime(t *testing.T) {
	h := &schema.OpenHours{
		Periods: map[time.Weekday][]schema.OpenPeriod{
			time.Monday: {
				{Open: schema.DayTime{Hour: 9}, Close: schema.DayTime{Hour: 17}},
			},
		},
	}

	// open now: close of the current period
	assert.Equal(t, mondayAt(17, 0), ClosingTime(h, mondayAt(12, 0)))

	// closed now: close of the soonest upcoming period
	assert.Equal(t, mondayAt(17, 0), ClosingTime(h, mondayAt(7, 0)))
}

func TestClosingTimeOvernight(t *testing.T) {
	h := overnightSchedule()

	tuesday0100 := mondayAt(1, 0).AddDate(0, 0, 1)
	tuesday0200 := mondayAt(2, 0).AddDate(0, 0, 1)

	// inside the overnight period that started Monday evening
	assert.Equal(t, tuesday0200, ClosingTime(h, tuesday0100))
	assert.Equal(t, tuesday0200, ClosingTime(h, mondayAt(23, 30)))
}
