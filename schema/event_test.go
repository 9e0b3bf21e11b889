package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func validEventDocument() EventDocument {
	return EventDocument{
		ID:          "event-1",
		PlaceID:     "place-1",
		Description: "Jazz in the Park",
		Location:    NewGeoJSON(Location{Latitude: 37.7694, Longitude: -122.4862}),
		StartTime:   time.Date(2020, 6, 22, 18, 0, 0, 0, time.UTC).Unix(),
	}
}

func TestEventFromDocument(t *testing.T) {
	doc := validEventDocument()
	doc.EndTime = int64Ptr(doc.StartTime + 7200)

	event, err := EventFromDocument(doc)
	assert.NoError(t, err)

	assert.Equal(t, "event-1", event.ID)
	assert.Equal(t, "place-1", event.PlaceID)
	assert.Equal(t, doc.StartTime, event.StartTime.Unix())
	assert.NotNil(t, event.EndTime)
	assert.Equal(t, 2*time.Hour, event.EndTime.Sub(event.StartTime))
}

func TestEventFromDocumentNoEnd(t *testing.T) {
	event, err := EventFromDocument(validEventDocument())
	assert.NoError(t, err)
	assert.Nil(t, event.EndTime)
}

func TestEventFromDocumentMissingFields(t *testing.T) {
	doc := validEventDocument()
	doc.ID = ""
	_, err := EventFromDocument(doc)
	assert.ErrorIs(t, err, ErrMissingID)

	doc = validEventDocument()
	doc.PlaceID = ""
	_, err = EventFromDocument(doc)
	assert.ErrorIs(t, err, ErrMissingPlaceID)

	doc = validEventDocument()
	doc.StartTime = 0
	_, err = EventFromDocument(doc)
	assert.ErrorIs(t, err, ErrMissingStart)

	doc = validEventDocument()
	doc.Location = nil
	_, err = EventFromDocument(doc)
	assert.ErrorIs(t, err, ErrMissingCoordinates)
}

func TestEventFromDocumentInvertedTimes(t *testing.T) {
	doc := validEventDocument()
	doc.EndTime = int64Ptr(doc.StartTime - 60)
	_, err := EventFromDocument(doc)
	assert.ErrorIs(t, err, ErrInvertedEndTime)

	// equal start and end is also rejected
	doc.EndTime = int64Ptr(doc.StartTime)
	_, err = EventFromDocument(doc)
	assert.ErrorIs(t, err, ErrInvertedEndTime)
}
