// Package directions computes travel times through the Google Maps distance
// matrix API.
package directions

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"googlemaps.github.io/maps"

	"github.com/mozilla-mobile/prox-sub000/schema"
)

var travelModes = map[schema.TravelMode]maps.Mode{
	schema.TravelModeWalking: maps.TravelModeWalking,
	schema.TravelModeDriving: maps.TravelModeDriving,
	schema.TravelModeTransit: maps.TravelModeTransit,
}

type Client struct {
	maps *maps.Client
}

func New(apiKey string) (*Client, error) {
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}

	return &Client{maps: c}, nil
}

// TravelTimes computes the durations from origin to destination for the
// requested modes. Modes the API cannot answer are left unset; the result
// is an error only when every requested mode fails.
func (c *Client) TravelTimes(ctx context.Context, origin, destination schema.Location, modes []schema.TravelMode) (*schema.TravelTimes, error) {
	times := &schema.TravelTimes{}
	resolved := 0

	for _, mode := range modes {
		mapsMode, ok := travelModes[mode]
		if !ok {
			continue
		}

		resp, err := c.maps.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
			Origins:      []string{fmt.Sprintf("%f,%f", origin.Latitude, origin.Longitude)},
			Destinations: []string{fmt.Sprintf("%f,%f", destination.Latitude, destination.Longitude)},
			Mode:         mapsMode,
			Units:        maps.UnitsMetric,
		})
		if err != nil {
			log.WithField("prefix", "directions").WithField("mode", mode).WithError(err).Warn("distance matrix request failed")
			continue
		}

		if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
			continue
		}

		element := resp.Rows[0].Elements[0]
		if element.Status != "OK" {
			log.WithField("prefix", "directions").WithFields(log.Fields{
				"mode":   mode,
				"status": element.Status,
			}).Debug("no route for mode")
			continue
		}

		duration := element.Duration
		switch mode {
		case schema.TravelModeWalking:
			times.Walking = &duration
		case schema.TravelModeDriving:
			times.Driving = &duration
		case schema.TravelModeTransit:
			times.Transit = &duration
		}
		resolved++
	}

	if resolved == 0 {
		return nil, fmt.Errorf("no travel time resolved for any requested mode")
	}

	return times, nil
}
