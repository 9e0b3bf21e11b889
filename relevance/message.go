package relevance

import (
	"fmt"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	log "github.com/sirupsen/logrus"

	"github.com/mozilla-mobile/prox-sub000/schema"
)

// messageIDs maps a relevance state to its notification template. Future and
// none states carry no message.
var messageIDs = map[State]string{
	StateAboutToStart: "notifications.event_about_to_start",
	StateAboutToEnd:   "notifications.event_about_to_end",
	StateUpcoming:     "notifications.event_upcoming",
	StateOngoing:      "notifications.event_ongoing",
	StateEnding:       "notifications.event_ending",
}

// MessageBuilder renders the display/notification string for an event in its
// current state.
type MessageBuilder struct {
	engine    *Engine
	localizer *i18n.Localizer
}

func NewMessageBuilder(engine *Engine, localizer *i18n.Localizer) *MessageBuilder {
	return &MessageBuilder{
		engine:    engine,
		localizer: localizer,
	}
}

// Title renders the shared notification title.
func (b *MessageBuilder) Title() string {
	title, err := b.localizer.Localize(&i18n.LocalizeConfig{MessageID: "notifications.event_title"})
	if err != nil {
		log.WithField("prefix", "relevance").WithError(err).Error("fail to localize notification title")
		return ""
	}
	return title
}

// Build resolves the event state and substitutes the matching template. The
// third return is false when the event is in no notifiable state.
func (b *MessageBuilder) Build(ev *schema.Event, placeName string) (string, State, bool) {
	state := b.engine.StateOf(ev)
	id, ok := messageIDs[state]
	if !ok {
		return "", state, false
	}

	now := b.engine.Now()
	data := map[string]string{
		"EventName":   ev.Description,
		"PlaceName":   placeName,
		"StartTime":   ev.StartTime.Format(time.Kitchen),
		"TimeToStart": formatDuration(ev.StartTime.Sub(now)),
	}
	if ev.EndTime != nil {
		data["EndTime"] = ev.EndTime.Format(time.Kitchen)
		data["TimeToEnd"] = formatDuration(ev.EndTime.Sub(now))
	}

	body, err := b.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		log.WithField("prefix", "relevance").WithError(err).Error("fail to localize event message")
		return "", state, false
	}

	return body, state, true
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}

	if d < time.Hour {
		minutes := int(d.Round(time.Minute) / time.Minute)
		if minutes <= 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}

	hours := int(d.Round(time.Hour) / time.Hour)
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
