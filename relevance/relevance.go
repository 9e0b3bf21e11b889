// Package relevance decides where an event sits in its display and
// notification time windows.
package relevance

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/mozilla-mobile/prox-sub000/schema"
)

// State is the relevance phase of an event relative to now.
type State int

const (
	StateNone State = iota
	StateFuture
	StateUpcoming
	StateAboutToStart
	StateOngoing
	StateAboutToEnd
	StateEnding
)

func (s State) String() string {
	switch s {
	case StateFuture:
		return "future"
	case StateUpcoming:
		return "upcoming"
	case StateAboutToStart:
		return "about_to_start"
	case StateOngoing:
		return "ongoing"
	case StateAboutToEnd:
		return "about_to_end"
	case StateEnding:
		return "ending"
	default:
		return "none"
	}
}

// Thresholds are the injected window durations. Nothing here is hardcoded;
// values come from configuration.
type Thresholds struct {
	StartNotificationInterval     time.Duration
	MinTimeFromEndForNotification time.Duration
	AboutToStartInterval          time.Duration
	AboutToEndInterval            time.Duration
}

// Engine evaluates events against the thresholds using an injected clock.
type Engine struct {
	thresholds Thresholds
	clock      clock.Clock
}

func NewEngine(thresholds Thresholds, c clock.Clock) *Engine {
	if c == nil {
		c = clock.New()
	}
	return &Engine{thresholds: thresholds, clock: c}
}

// IsFuture reports whether the event has not started yet.
func (e *Engine) IsFuture(ev *schema.Event) bool {
	return e.clock.Now().Before(ev.StartTime)
}

// IsUpcoming reports whether the event is future and already inside the
// start-notification window.
func (e *Engine) IsUpcoming(ev *schema.Event) bool {
	if !e.IsFuture(ev) {
		return false
	}
	return !ev.StartTime.Add(-e.thresholds.StartNotificationInterval).After(e.clock.Now())
}

// IsAboutToStart reports whether the event is upcoming and inside the
// tighter about-to-start window.
func (e *Engine) IsAboutToStart(ev *schema.Event) bool {
	if !e.IsUpcoming(ev) {
		return false
	}
	return !ev.StartTime.Add(-e.thresholds.AboutToStartInterval).After(e.clock.Now())
}

// IsOngoing reports whether enough of the event remains for attending to be
// worthwhile. Events without an end time are never ongoing.
func (e *Engine) IsOngoing(ev *schema.Event) bool {
	if ev.EndTime == nil {
		return false
	}
	cutoff := ev.EndTime.Add(-(e.thresholds.MinTimeFromEndForNotification + e.thresholds.StartNotificationInterval))
	return e.clock.Now().Before(cutoff)
}

// IsAboutToEnd reports whether the event is still worth attending but the
// last useful arrival time is inside the about-to-end window.
func (e *Engine) IsAboutToEnd(ev *schema.Event) bool {
	if ev.EndTime == nil {
		return false
	}
	now := e.clock.Now()
	lastNotification := ev.EndTime.Add(-e.thresholds.MinTimeFromEndForNotification)
	if !now.Before(lastNotification) {
		return false
	}
	return !lastNotification.Add(-e.thresholds.AboutToEndInterval).After(now)
}

// IsEnding reports whether now falls inside the final notification window
// just before the last useful arrival time.
func (e *Engine) IsEnding(ev *schema.Event) bool {
	if ev.EndTime == nil {
		return false
	}
	now := e.clock.Now()
	lastNotification := ev.EndTime.Add(-e.thresholds.MinTimeFromEndForNotification)
	return now.After(lastNotification.Add(-e.thresholds.StartNotificationInterval)) && now.Before(lastNotification)
}

// ShouldShow decides inclusion in a result set. A future event shows once it
// enters the start-notification window; a current or past event stays shown
// until the end-notification grace period after its end time has elapsed.
// Events with no end time that are not future are never shown.
func (e *Engine) ShouldShow(ev *schema.Event) bool {
	now := e.clock.Now()
	if e.IsFuture(ev) {
		return !ev.StartTime.Add(-e.thresholds.StartNotificationInterval).After(now)
	}
	if ev.EndTime == nil {
		return false
	}
	return now.Before(ev.EndTime.Add(e.thresholds.MinTimeFromEndForNotification))
}

// ArrivalByTime is the latest instant by which a user must arrive for the
// event to still count.
func (e *Engine) ArrivalByTime(ev *schema.Event) time.Time {
	if ev.EndTime != nil {
		return ev.EndTime.Add(-e.thresholds.MinTimeFromEndForNotification)
	}
	return ev.StartTime
}

// StateOf resolves the single display state for an event. When several
// windows apply at once the more urgent one wins: aboutToStart, then
// aboutToEnd, then upcoming, ongoing and ending.
func (e *Engine) StateOf(ev *schema.Event) State {
	switch {
	case e.IsAboutToStart(ev):
		return StateAboutToStart
	case e.IsAboutToEnd(ev):
		return StateAboutToEnd
	case e.IsUpcoming(ev):
		return StateUpcoming
	case e.IsOngoing(ev):
		return StateOngoing
	case e.IsEnding(ev):
		return StateEnding
	}
	return StateNone
}

// Now exposes the engine clock so message formatting stays consistent with
// window evaluation.
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}
