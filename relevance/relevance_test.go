package relevance

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"

	"github.com/mozilla-mobile/prox-sub000/schema"
	"github.com/mozilla-mobile/prox-sub000/utils"
)

var testThresholds = Thresholds{
	StartNotificationInterval:     60 * time.Minute,
	MinTimeFromEndForNotification: 120 * time.Minute,
	AboutToStartInterval:          15 * time.Minute,
	AboutToEndInterval:            30 * time.Minute,
}

func testEngine() (*Engine, *clock.Mock) {
	mock := clock.NewMock()
	mock.Set(time.Date(2020, 6, 22, 18, 0, 0, 0, time.UTC))
	return NewEngine(testThresholds, mock), mock
}

func eventStartingIn(now time.Time, d time.Duration) *schema.Event {
	return &schema.Event{
		ID:          "event-1",
		PlaceID:     "place-1",
		Description: "Jazz in the Park",
		StartTime:   now.Add(d),
	}
}

func eventEndingIn(now time.Time, startOffset, endOffset time.Duration) *schema.Event {
	ev := eventStartingIn(now, startOffset)
	end := now.Add(endOffset)
	ev.EndTime = &end
	return ev
}

func TestShouldShowStartBoundary(t *testing.T) {
	engine, mock := testEngine()
	now := mock.Now()

	assert.True(t, engine.ShouldShow(eventStartingIn(now, 59*time.Minute)))
	assert.False(t, engine.ShouldShow(eventStartingIn(now, 61*time.Minute)))
}

func TestShouldShowEndBoundary(t *testing.T) {
	engine, mock := testEngine()
	now := mock.Now()

	assert.False(t, engine.ShouldShow(eventEndingIn(now, -3*time.Hour, -121*time.Minute)))
	assert.True(t, engine.ShouldShow(eventEndingIn(now, -3*time.Hour, -119*time.Minute)))
}

func TestShouldShowNoEndTime(t *testing.T) {
	engine, mock := testEngine()
	now := mock.Now()

	// a started event without an end time is never shown
	assert.False(t, engine.ShouldShow(eventStartingIn(now, -5*time.Minute)))
}

func TestWindowPredicates(t *testing.T) {
	engine, mock := testEngine()
	now := mock.Now()

	upcoming := eventStartingIn(now, 45*time.Minute)
	assert.True(t, engine.IsFuture(upcoming))
	assert.True(t, engine.IsUpcoming(upcoming))
	assert.False(t, engine.IsAboutToStart(upcoming))

	aboutToStart := eventStartingIn(now, 10*time.Minute)
	assert.True(t, engine.IsAboutToStart(aboutToStart))

	farFuture := eventStartingIn(now, 2*time.Hour)
	assert.True(t, engine.IsFuture(farFuture))
	assert.False(t, engine.IsUpcoming(farFuture))

	// plenty of time left before the end cutoff
	ongoing := eventEndingIn(now, -time.Hour, 5*time.Hour)
	assert.True(t, engine.IsOngoing(ongoing))
	assert.False(t, engine.IsAboutToEnd(ongoing))

	// worth attending but ending soon
	aboutToEnd := eventEndingIn(now, -time.Hour, 145*time.Minute)
	assert.True(t, engine.IsAboutToEnd(aboutToEnd))
}

func TestIsEndingWindow(t *testing.T) {
	engine, mock := testEngine()
	now := mock.Now()

	// lastNotification = end - 120min; the ending window opens 60min before it
	ending := eventEndingIn(now, -2*time.Hour, 150*time.Minute)
	assert.True(t, engine.IsEnding(ending))

	tooEarly := eventEndingIn(now, -2*time.Hour, 200*time.Minute)
	assert.False(t, engine.IsEnding(tooEarly))

	tooLate := eventEndingIn(now, -4*time.Hour, 110*time.Minute)
	assert.False(t, engine.IsEnding(tooLate))
}

func TestStatePriority(t *testing.T) {
	engine, mock := testEngine()
	now := mock.Now()

	assert.Equal(t, StateAboutToStart, engine.StateOf(eventStartingIn(now, 10*time.Minute)))
	assert.Equal(t, StateUpcoming, engine.StateOf(eventStartingIn(now, 45*time.Minute)))
	assert.Equal(t, StateOngoing, engine.StateOf(eventEndingIn(now, -time.Hour, 5*time.Hour)))
	assert.Equal(t, StateAboutToEnd, engine.StateOf(eventEndingIn(now, -time.Hour, 145*time.Minute)))
	assert.Equal(t, StateNone, engine.StateOf(eventStartingIn(now, 3*time.Hour)))
}

func TestArrivalByTime(t *testing.T) {
	engine, mock := testEngine()
	now := mock.Now()

	withEnd := eventEndingIn(now, time.Hour, 4*time.Hour)
	assert.Equal(t, now.Add(2*time.Hour), engine.ArrivalByTime(withEnd))

	withoutEnd := eventStartingIn(now, time.Hour)
	assert.Equal(t, withoutEnd.StartTime, engine.ArrivalByTime(withoutEnd))
}

func TestMessageBuilder(t *testing.T) {
	engine, mock := testEngine()
	now := mock.Now()

	builder := NewMessageBuilder(engine, utils.NewLocalizer("en"))

	body, state, ok := builder.Build(eventStartingIn(now, 10*time.Minute), "Golden Gate Park")
	assert.True(t, ok)
	assert.Equal(t, StateAboutToStart, state)
	assert.Contains(t, body, "Jazz in the Park")
	assert.Contains(t, body, "Golden Gate Park")
	assert.Contains(t, body, "10 minutes")

	_, state, ok = builder.Build(eventStartingIn(now, 3*time.Hour), "Golden Gate Park")
	assert.False(t, ok)
	assert.Equal(t, StateNone, state)

	assert.NotEmpty(t, builder.Title())
}
