package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGeoPosition(t *testing.T) {
	lat, lng, err := parseGeoPosition("37.7749;-122.4194")
	assert.NoError(t, err)
	assert.Equal(t, 37.7749, lat)
	assert.Equal(t, -122.4194, lng)
}

func TestParseGeoPositionInvalid(t *testing.T) {
	cases := []string{
		"",
		"37.7749",
		"37.7749;-122.4194;10",
		"north;west",
		"37.7749;west",
		"91;0",
		"-91;0",
		"0;181",
		"0;-181",
	}

	for _, value := range cases {
		_, _, err := parseGeoPosition(value)
		assert.Error(t, err, value)
	}
}
