// Package notification turns relevant nearby events into local alerts.
package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/mozilla-mobile/prox-sub000/relevance"
	"github.com/mozilla-mobile/prox-sub000/schema"
)

const notificationLogPrefix = "notification"

// Payload is carried on a local notification so the app can deep-link back
// to the event.
type Payload struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	PlaceID string `json:"place_id"`
}

// Notifier delivers a local notification. Delivery itself is outside this
// module; the production wiring logs what would fire.
type Notifier interface {
	ScheduleLocal(title, body string, fireDelay time.Duration, payload Payload) error
}

// SentStore remembers which events were already notified on a given day.
type SentStore interface {
	WasSent(ctx context.Context, day, eventID string) (bool, error)
	MarkSent(ctx context.Context, day, eventID string) error
}

// EventNotifier walks events through the relevance engine and schedules an
// alert for each one in a notifiable state. Same-day de-duplication is a
// configurable policy; the upstream app shipped with the check disabled,
// which is treated here as a bug, so the default is on.
type EventNotifier struct {
	notifier Notifier
	sent     SentStore
	engine   *relevance.Engine
	messages *relevance.MessageBuilder
	dedup    bool
}

func NewEventNotifier(notifier Notifier, sent SentStore, engine *relevance.Engine,
	messages *relevance.MessageBuilder, dedup bool) *EventNotifier {
	return &EventNotifier{
		notifier: notifier,
		sent:     sent,
		engine:   engine,
		messages: messages,
		dedup:    dedup,
	}
}

// NotifyRelevant schedules alerts for every event in a notifiable state.
// placeNames maps place ids to display names for template substitution; an
// event whose place is unknown falls back to an empty name. Per-event
// failures are logged and skipped so one bad event never blocks the rest.
func (n *EventNotifier) NotifyRelevant(ctx context.Context, events []*schema.Event, placeNames map[string]string) {
	day := n.engine.Now().Format("2006-01-02")

	for _, ev := range events {
		body, state, ok := n.messages.Build(ev, placeNames[ev.PlaceID])
		if !ok {
			continue
		}

		if n.dedup {
			sent, err := n.sent.WasSent(ctx, day, ev.ID)
			if err != nil {
				log.WithField("prefix", notificationLogPrefix).WithError(err).Error("fail to check sent store")
			} else if sent {
				continue
			}
		}

		payload := Payload{
			ID:      uuid.New().String(),
			EventID: ev.ID,
			PlaceID: ev.PlaceID,
		}

		if err := n.notifier.ScheduleLocal(n.messages.Title(), body, 0, payload); err != nil {
			log.WithFields(log.Fields{
				"prefix": notificationLogPrefix,
				"event":  ev.ID,
				"state":  state.String(),
			}).WithError(err).Error("fail to schedule notification")
			continue
		}

		if n.dedup {
			if err := n.sent.MarkSent(ctx, day, ev.ID); err != nil {
				log.WithField("prefix", notificationLogPrefix).WithError(err).Error("fail to mark event sent")
			}
		}

		log.WithFields(log.Fields{
			"prefix": notificationLogPrefix,
			"event":  ev.ID,
			"state":  state.String(),
		}).Debug("scheduled event notification")
	}
}

// LogNotifier is the default Notifier; push and local delivery live in the
// mobile shell, so the service side records what would fire.
type LogNotifier struct{}

func (LogNotifier) ScheduleLocal(title, body string, fireDelay time.Duration, payload Payload) error {
	log.WithFields(log.Fields{
		"prefix": notificationLogPrefix,
		"title":  title,
		"body":   body,
		"delay":  fireDelay,
		"event":  payload.EventID,
		"place":  payload.PlaceID,
	}).Info("local notification")
	return nil
}
