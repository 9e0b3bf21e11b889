package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/mozilla-mobile/prox-sub000/aggregator"
	"github.com/mozilla-mobile/prox-sub000/provider"
	"github.com/mozilla-mobile/prox-sub000/schema"
)

type placeView struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Location         schema.Location `json:"location"`
	Address          string         `json:"address,omitempty"`
	URL              string         `json:"url,omitempty"`
	CategoryNames    []string       `json:"category_names"`
	CategoryIDs      []string       `json:"category_ids"`
	PhotoURLs        []string       `json:"photo_urls"`
	Rating           *float64       `json:"rating,omitempty"`
	TotalReviewCount int            `json:"total_review_count"`
	Description      string         `json:"description,omitempty"`
	EventCount       int            `json:"event_count"`
}

func newPlaceView(place *schema.Place) placeView {
	merged := provider.Merge(place.Providers)

	return placeView{
		ID:               place.ID,
		Name:             place.Name,
		Location:         place.Location,
		Address:          place.Address,
		URL:              place.URL,
		CategoryNames:    place.CategoryNames,
		CategoryIDs:      place.CategoryIDs,
		PhotoURLs:        place.PhotoURLs,
		Rating:           merged.Rating,
		TotalReviewCount: merged.TotalReviewCount,
		Description:      merged.Description,
		EventCount:       len(place.Events),
	}
}

// updatePlaces kicks off an aggregation cycle for the location carried in
// the Geo-Position header.
func (s *Server) updatePlaces(c *gin.Context) {
	lat, lng, err := parseGeoPosition(c.GetHeader("Geo-Position"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	location := schema.Location{Latitude: lat, Longitude: lng}

	if !s.places.UpdatePlaces(c.Request.Context(), location) {
		abortWithEncoding(c, http.StatusConflict, errorUpdateInFlight)
		return
	}
	s.setStatus(statusFetching)

	if s.session != nil {
		go func(ctx context.Context) {
			if err := s.session.MarkLocationUpdate(ctx, time.Now()); err != nil {
				log.WithField("prefix", "api").WithError(err).Error("fail to record location update")
			}
		}(context.WithoutCancel(c.Request.Context()))
	}

	c.JSON(http.StatusAccepted, gin.H{"result": "OK"})
}

// listPlaces returns the current display list with its status so the client
// can tell slow-empty from genuinely-empty.
func (s *Server) listPlaces(c *gin.Context) {
	places := s.places.Places()

	views := make([]placeView, 0, len(places))
	for _, p := range places {
		views = append(views, newPlaceView(p))
	}

	resp := gin.H{
		"status": s.displayStatus(),
		"places": views,
	}
	if s.session != nil {
		if at, ok, err := s.session.LastLocationUpdate(c.Request.Context()); err == nil && ok {
			resp["last_updated"] = at
		}
	}

	c.JSON(http.StatusOK, resp)
}

// getPlace resolves either a display index (all digits) or a place id.
func (s *Server) getPlace(c *gin.Context) {
	param := c.Param("id")

	if index, err := strconv.Atoi(param); err == nil {
		place, err := s.places.Place(index)
		if err != nil {
			var oor *aggregator.IndexOutOfRangeError
			if errors.As(err, &oor) {
				abortWithEncoding(c, http.StatusNotFound, errorIndexOutOfRange, err)
				return
			}
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
			return
		}
		c.JSON(http.StatusOK, newPlaceView(place))
		return
	}

	place, ok := s.findPlace(param)
	if !ok {
		abortWithEncoding(c, http.StatusNotFound, errorPlaceNotFound)
		return
	}

	c.JSON(http.StatusOK, newPlaceView(place))
}

// placeNeighbors returns the carousel neighbors of a place. Next falls back
// to the first place when the id has left the list; previous does not.
func (s *Server) placeNeighbors(c *gin.Context) {
	probe := &schema.Place{ID: c.Param("id")}

	var next, previous *placeView
	if p := s.places.NextPlace(probe); p != nil {
		v := newPlaceView(p)
		next = &v
	}
	if p := s.places.PreviousPlace(probe); p != nil {
		v := newPlaceView(p)
		previous = &v
	}

	c.JSON(http.StatusOK, gin.H{
		"next":     next,
		"previous": previous,
	})
}

// placeTravelTimes answers with the cached or freshly computed travel times
// from the caller's location, waiting a bounded time for an in-flight
// computation. An absent result is the client's cue to offer the map view.
func (s *Server) placeTravelTimes(c *gin.Context) {
	lat, lng, err := parseGeoPosition(c.GetHeader("Geo-Position"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	place, ok := s.findPlace(c.Param("id"))
	if !ok {
		abortWithEncoding(c, http.StatusNotFound, errorPlaceNotFound)
		return
	}

	comp := s.places.TravelTimes(c.Request.Context(), place, schema.Location{Latitude: lat, Longitude: lng})

	select {
	case <-comp.Done():
	case <-time.After(travelTimeWait):
		abortWithEncoding(c, http.StatusGatewayTimeout, errorTravelTimeAbsent)
		return
	case <-c.Request.Context().Done():
		return
	}

	times, err := comp.Result()
	if err != nil {
		abortWithEncoding(c, http.StatusBadGateway, errorTravelTimeAbsent, err)
		return
	}

	c.JSON(http.StatusOK, times)
}

func (s *Server) findPlace(id string) (*schema.Place, bool) {
	probe := &schema.Place{ID: id}

	index, ok := s.places.IndexOf(probe)
	if !ok {
		return nil, false
	}

	place, err := s.places.Place(index)
	if err != nil {
		// the list moved between the two accessor calls; treat as gone
		return nil, false
	}

	return place, true
}

// listFilters returns the shared filter set.
func (s *Server) listFilters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"filters": s.places.Filters()})
}

// toggleFilter flips one filter group. The change applies on the next
// finalized update.
func (s *Server) toggleFilter(c *gin.Context) {
	var params struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	for _, f := range s.places.Filters() {
		if f.Label == c.Param("label") {
			f.Enabled = params.Enabled
			c.JSON(http.StatusOK, f)
			return
		}
	}

	abortWithEncoding(c, http.StatusNotFound, errorInvalidParameters)
}
