package store

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mozilla-mobile/prox-sub000/geo"
	"github.com/mozilla-mobile/prox-sub000/schema"
)

// keyLocation is the projected form used for geo index queries; only the id
// and location are read.
type keyLocation struct {
	ID       string          `bson:"_id"`
	Location *schema.GeoJSON `bson:"location"`
}

// QueryKeysNear returns the keys of all places currently indexed within
// radiusKm of the center. The crawler keeps writing while we read; callers
// re-poll until the count settles.
func (m *mongoDB) QueryKeysNear(ctx context.Context, center schema.Location, radiusKm float64) ([]geo.IndexEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.PlaceCollection)

	cur, err := c.Find(ctx, distanceQuery(center, radiusKm),
		options.Find().SetProjection(bson.M{"location": 1}))
	if err != nil {
		log.WithField("prefix", mongoLogPrefix).Errorf("query place keys near long:%v lat:%v with error: %s",
			center.Longitude, center.Latitude, err.Error())
		return nil, fmt.Errorf("place keys query with error: %s", err.Error())
	}
	defer cur.Close(ctx)

	var entries []geo.IndexEntry
	for cur.Next(ctx) {
		var kl keyLocation
		if err := cur.Decode(&kl); err != nil {
			log.WithField("prefix", mongoLogPrefix).Infof("decode place key with error: %s", err.Error())
			return nil, fmt.Errorf("place keys query decode record with error: %s", err.Error())
		}
		entries = append(entries, geo.IndexEntry{
			Key:      kl.ID,
			Location: kl.Location.Location(),
		})
	}

	log.WithField("prefix", mongoLogPrefix).Debugf("place keys query gets %d records near long:%v lat:%v",
		len(entries), center.Longitude, center.Latitude)

	return entries, nil
}

// FetchPlace loads and validates one place record. A missing key maps to
// geo.ErrNotFound and an invalid record to geo.ErrInvalidDocument so callers
// can drop either without failing the batch.
func (m *mongoDB) FetchPlace(ctx context.Context, key string) (*schema.Place, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.PlaceCollection)

	var doc schema.PlaceDocument
	if err := c.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, geo.ErrNotFound
		}
		return nil, err
	}

	place, err := schema.PlaceFromDocument(doc)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": mongoLogPrefix,
			"key":    key,
		}).WithError(err).Warn("drop invalid place record")
		return nil, fmt.Errorf("%w: %s", geo.ErrInvalidDocument, err)
	}

	return place, nil
}
