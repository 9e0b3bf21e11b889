package store

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mozilla-mobile/prox-sub000/schema"
)

// distanceQuery builds a $nearSphere filter for documents whose location
// field lies within radiusKm of the center. Requires a 2dsphere index on
// "location".
func distanceQuery(center schema.Location, radiusKm float64) bson.M {
	return bson.M{
		"location": bson.M{
			"$nearSphere": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": []float64{center.Longitude, center.Latitude},
				},
				"$maxDistance": radiusKm * 1000,
			},
		},
	}
}
