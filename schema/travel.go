package schema

import "time"

// TravelMode selects which durations a travel time computation populates.
type TravelMode string

const (
	TravelModeWalking TravelMode = "walking"
	TravelModeDriving TravelMode = "driving"
	TravelModeTransit TravelMode = "transit"
)

// TravelTimes holds the computed durations from an origin to a place. Only
// the requested subset of modes is populated.
type TravelTimes struct {
	Walking *time.Duration `json:"walking,omitempty"`
	Driving *time.Duration `json:"driving,omitempty"`
	Transit *time.Duration `json:"transit,omitempty"`
}

// Shortest returns the smallest populated duration, or nil if none is set.
func (t *TravelTimes) Shortest() *time.Duration {
	var shortest *time.Duration
	for _, d := range []*time.Duration{t.Walking, t.Driving, t.Transit} {
		if d == nil {
			continue
		}
		if shortest == nil || *d < *shortest {
			shortest = d
		}
	}
	return shortest
}
