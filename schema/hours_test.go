package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOpenHoursFromDocument(t *testing.T) {
	hours, err := OpenHoursFromDocument(map[string][][]string{
		"monday": {{"09:00", "17:00"}, {"19:00", "23:00"}},
		"friday": {{"22:00", "02:00"}},
	})
	assert.NoError(t, err)

	assert.Len(t, hours.Periods[time.Monday], 2)
	assert.Equal(t, DayTime{Hour: 9}, hours.Periods[time.Monday][0].Open)
	assert.Equal(t, DayTime{Hour: 17}, hours.Periods[time.Monday][0].Close)

	// overnight encoding survives parsing as-is
	assert.Equal(t, DayTime{Hour: 22}, hours.Periods[time.Friday][0].Open)
	assert.Equal(t, DayTime{Hour: 2}, hours.Periods[time.Friday][0].Close)

	_, ok := hours.Periods[time.Sunday]
	assert.False(t, ok)
}

func TestOpenHoursFromDocumentNil(t *testing.T) {
	hours, err := OpenHoursFromDocument(nil)
	assert.NoError(t, err)
	assert.Nil(t, hours)
}

func TestOpenHoursFromDocumentMalformed(t *testing.T) {
	_, err := OpenHoursFromDocument(map[string][][]string{
		"monday": {{"9am", "5pm"}},
	})
	assert.ErrorIs(t, err, ErrMalformedHours)

	_, err = OpenHoursFromDocument(map[string][][]string{
		"monday": {{"09:00"}},
	})
	assert.ErrorIs(t, err, ErrMalformedHours)

	_, err = OpenHoursFromDocument(map[string][][]string{
		"moonday": {{"09:00", "17:00"}},
	})
	assert.ErrorIs(t, err, ErrMalformedHours)
}

func TestLocationDistance(t *testing.T) {
	sf := Location{Latitude: 37.7749, Longitude: -122.4194}
	oakland := Location{Latitude: 37.8044, Longitude: -122.2712}

	d := sf.DistanceTo(oakland)
	assert.InDelta(t, 13500, d, 500)
	assert.InDelta(t, d, oakland.DistanceTo(sf), 1e-6)
	assert.Zero(t, sf.DistanceTo(sf))
}
