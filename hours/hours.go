// Package hours answers open/closed queries against a weekly schedule,
// including periods that span midnight.
package hours

import (
	"time"

	"github.com/mozilla-mobile/prox-sub000/schema"
)

// maxLookaheadDays bounds the forward search for the next open period. A
// schedule with at least one period repeats weekly, so eight days always
// covers it.
const maxLookaheadDays = 8

// materialized is an open period anchored to absolute instants on a calendar
// date, with the overnight +24h correction already applied.
type materialized struct {
	open  time.Time
	close time.Time
}

// periodsOn materializes the periods of the weekday that date falls on,
// sorted ascending by open instant.
func periodsOn(h *schema.OpenHours, date time.Time) []materialized {
	if h == nil {
		return nil
	}

	day := h.Periods[date.Weekday()]
	out := make([]materialized, 0, len(day))
	for _, p := range day {
		open := p.Open.OnDate(date)
		close := p.Close.OnDate(date)
		if !close.After(open) {
			// close before open encodes a period spanning midnight
			close = close.Add(24 * time.Hour)
		}
		out = append(out, materialized{open: open, close: close})
	}

	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].open.Before(out[j-1].open); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}

	return out
}

// IsOpen reports whether the schedule is open at the given instant. A period
// that started yesterday and wraps past midnight still counts, so
// yesterday's materialized periods are checked before giving up.
func IsOpen(h *schema.OpenHours, at time.Time) bool {
	for _, p := range periodsOn(h, at) {
		if !at.Before(p.open) && at.Before(p.close) {
			return true
		}
	}

	yesterday := at.AddDate(0, 0, -1)
	for _, p := range periodsOn(h, yesterday) {
		if !at.Before(p.open) && at.Before(p.close) {
			return true
		}
	}

	return false
}

// NextOpeningTime returns the earliest open instant strictly after the given
// instant, or the zero time if the schedule has no periods at all.
func NextOpeningTime(h *schema.OpenHours, after time.Time) time.Time {
	for day := 0; day < maxLookaheadDays; day++ {
		date := after.AddDate(0, 0, day)
		for _, p := range periodsOn(h, date) {
			if p.open.After(after) {
				return p.open
			}
		}
	}

	return time.Time{}
}

// ClosingTime returns the close instant of the period open at the given
// instant, or the close instant of the soonest upcoming period when closed.
// The zero time means the schedule has no periods at all.
func ClosingTime(h *schema.OpenHours, at time.Time) time.Time {
	for _, p := range periodsOn(h, at.AddDate(0, 0, -1)) {
		if !at.Before(p.open) && at.Before(p.close) {
			return p.close
		}
	}
	for _, p := range periodsOn(h, at) {
		if !at.Before(p.open) && at.Before(p.close) {
			return p.close
		}
	}

	for day := 0; day < maxLookaheadDays; day++ {
		date := at.AddDate(0, 0, day)
		for _, p := range periodsOn(h, date) {
			if p.open.After(at) {
				return p.close
			}
		}
	}

	return time.Time{}
}
