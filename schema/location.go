package schema

import "math"

const earthRadiusMeters = 6371000

// Location is a WGS84 coordinate pair.
type Location struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// GeoJSON is the stored representation of a location. Coordinates are
// ordered longitude first, as mongo expects.
type GeoJSON struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

func NewGeoJSON(location Location) *GeoJSON {
	return &GeoJSON{
		Type:        "Point",
		Coordinates: []float64{location.Longitude, location.Latitude},
	}
}

// Location converts the GeoJSON point back into a coordinate pair.
func (g *GeoJSON) Location() Location {
	if g == nil || len(g.Coordinates) != 2 {
		return Location{}
	}
	return Location{
		Latitude:  g.Coordinates[1],
		Longitude: g.Coordinates[0],
	}
}

// DistanceTo returns the great-circle distance to another location in meters.
func (l Location) DistanceTo(other Location) float64 {
	lat1 := l.Latitude * math.Pi / 180
	lat2 := other.Latitude * math.Pi / 180
	dLat := (other.Latitude - l.Latitude) * math.Pi / 180
	dLng := (other.Longitude - l.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
