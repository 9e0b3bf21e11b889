package schema

import (
	"fmt"
	"time"
)

var (
	ErrMissingPlaceID  = fmt.Errorf("event has no place id")
	ErrMissingStart    = fmt.Errorf("event has no start time")
	ErrInvertedEndTime = fmt.Errorf("event ends before it starts")
)

// EventDocument is the raw stored form of an event.
type EventDocument struct {
	ID          string   `bson:"_id" json:"id"`
	PlaceID     string   `bson:"place_id" json:"place_id"`
	Description string   `bson:"description" json:"description"`
	URL         string   `bson:"url" json:"url"`
	Location    *GeoJSON `bson:"location" json:"location"`
	StartTime   int64    `bson:"start_time" json:"start_time"`
	EndTime     *int64   `bson:"end_time,omitempty" json:"end_time,omitempty"`
}

// Event is a time-bound happening at a place. The place does not own the
// event; the association is by place id only and the aggregator distributes
// references.
type Event struct {
	ID          string
	PlaceID     string
	Description string
	URL         string
	Location    Location
	StartTime   time.Time
	EndTime     *time.Time
}

// EventFromDocument builds an Event from its raw document. An end time, when
// present, must be after the start time; records with inverted times would
// produce nonsensical relevance windows and are rejected outright.
func EventFromDocument(doc EventDocument) (*Event, error) {
	if doc.ID == "" {
		return nil, ErrMissingID
	}
	if doc.PlaceID == "" {
		return nil, fmt.Errorf("%w: event %s", ErrMissingPlaceID, doc.ID)
	}
	if doc.StartTime == 0 {
		return nil, fmt.Errorf("%w: event %s", ErrMissingStart, doc.ID)
	}
	if doc.Location == nil || len(doc.Location.Coordinates) != 2 {
		return nil, fmt.Errorf("%w: event %s", ErrMissingCoordinates, doc.ID)
	}

	event := &Event{
		ID:          doc.ID,
		PlaceID:     doc.PlaceID,
		Description: doc.Description,
		URL:         doc.URL,
		Location:    doc.Location.Location(),
		StartTime:   time.Unix(doc.StartTime, 0),
	}

	if doc.EndTime != nil {
		end := time.Unix(*doc.EndTime, 0)
		if !end.After(event.StartTime) {
			return nil, fmt.Errorf("%w: event %s", ErrInvertedEndTime, doc.ID)
		}
		event.EndTime = &end
	}

	return event, nil
}
