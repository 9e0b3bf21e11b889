package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/mozilla-mobile/prox-sub000/aggregator"
	"github.com/mozilla-mobile/prox-sub000/notification"
	"github.com/mozilla-mobile/prox-sub000/schema"
	"github.com/mozilla-mobile/prox-sub000/store"
)

// displayStatus is what the presentation layer reads alongside the place
// list. A timed-out update and an empty-but-stable one are distinct.
type displayStatus string

const (
	statusIdle     displayStatus = "idle"
	statusFetching displayStatus = "fetching"
	statusPartial  displayStatus = "partial"
	statusStable   displayStatus = "stable"
	statusTimedOut displayStatus = "timed_out"
)

// Server is the thin host shell driving the aggregation pipeline over HTTP.
type Server struct {
	server *http.Server

	mongoStore store.PlaceStore
	places     *aggregator.Aggregator
	events     *notification.EventNotifier
	session    *store.SessionStore

	traceMode bool

	statusMu sync.RWMutex
	status   displayStatus
}

func NewServer(mongoStore store.PlaceStore, places *aggregator.Aggregator,
	events *notification.EventNotifier, session *store.SessionStore, traceMode bool) *Server {
	return &Server{
		mongoStore: mongoStore,
		places:     places,
		events:     events,
		session:    session,
		traceMode:  traceMode,
		status:     statusIdle,
	}
}

// SetAggregator wires the aggregator after construction; the server is the
// aggregator's delegate, so the two reference each other.
func (s *Server) SetAggregator(places *aggregator.Aggregator) {
	s.places = places
}

// Run starts serving on addr and blocks.
func (s *Server) Run(addr string) error {
	if !s.traceMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.DumpRequest)

	r.GET("/healthz", s.healthz)

	v1 := r.Group("/v1")
	{
		v1.PUT("/places", s.updatePlaces)
		v1.GET("/places", s.listPlaces)
		v1.GET("/places/:id", s.getPlace)
		v1.GET("/places/:id/neighbors", s.placeNeighbors)
		v1.GET("/places/:id/travel-times", s.placeTravelTimes)
		v1.GET("/filters", s.listFilters)
		v1.PUT("/filters/:label", s.toggleFilter)
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}
	s.server = srv

	return srv.ListenAndServe()
}

// Shutdown drains the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) healthz(c *gin.Context) {
	if err := s.mongoStore.Ping(c.Request.Context()); err != nil {
		abortWithEncoding(c, http.StatusServiceUnavailable, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) setStatus(status displayStatus) {
	s.statusMu.Lock()
	s.status = status
	s.statusMu.Unlock()
}

func (s *Server) displayStatus() displayStatus {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status
}

// PlacesUpdated implements aggregator.Delegate. Final updates hand the
// associated events to the notifier.
func (s *Server) PlacesUpdated(location schema.Location, places []*schema.Place, final bool) {
	if !final {
		s.setStatus(statusPartial)
		return
	}

	s.setStatus(statusStable)

	if s.events == nil {
		return
	}

	var events []*schema.Event
	names := map[string]string{}
	for _, place := range places {
		for _, ev := range place.Events {
			events = append(events, ev)
			names[place.ID] = place.Name
		}
	}

	if len(events) == 0 {
		return
	}

	go s.events.NotifyRelevant(context.Background(), events, names)
}

// UpdateTimedOut implements aggregator.Delegate.
func (s *Server) UpdateTimedOut(location schema.Location) {
	log.WithFields(log.Fields{
		"prefix": "api",
		"lat":    location.Latitude,
		"lng":    location.Longitude,
	}).Warn("place update timed out")

	s.setStatus(statusTimedOut)
}

// travelTimeWait bounds how long the travel-times endpoint waits for an
// in-flight computation before telling the client to fall back to the map.
const travelTimeWait = 10 * time.Second
