package store

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/mozilla-mobile/prox-sub000/schema"
)

// NearbyEvents returns the validated events within radiusKm of the center.
// Malformed event records are dropped with a log line, never surfaced.
func (m *mongoDB) NearbyEvents(ctx context.Context, center schema.Location, radiusKm float64) ([]*schema.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.EventCollection)

	cur, err := c.Find(ctx, distanceQuery(center, radiusKm))
	if err != nil {
		log.WithField("prefix", mongoLogPrefix).Errorf("query events near long:%v lat:%v with error: %s",
			center.Longitude, center.Latitude, err.Error())
		return nil, fmt.Errorf("event query with error: %s", err.Error())
	}
	defer cur.Close(ctx)

	var events []*schema.Event
	for cur.Next(ctx) {
		var doc schema.EventDocument
		if err := cur.Decode(&doc); err != nil {
			log.WithField("prefix", mongoLogPrefix).Infof("decode event with error: %s", err.Error())
			continue
		}

		event, err := schema.EventFromDocument(doc)
		if err != nil {
			log.WithFields(log.Fields{
				"prefix": mongoLogPrefix,
				"event":  doc.ID,
			}).WithError(err).Warn("drop invalid event record")
			continue
		}

		events = append(events, event)
	}

	log.WithField("prefix", mongoLogPrefix).Debugf("event query gets %d records near long:%v lat:%v",
		len(events), center.Longitude, center.Latitude)

	return events, nil
}
