package travel

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mozilla-mobile/prox-sub000/schema"
)

var locationA = schema.Location{Latitude: 37.7749, Longitude: -122.4194}

// ~150m north of locationA
var locationNearA = schema.Location{Latitude: 37.7762, Longitude: -122.4194}

// ~1.5km north of locationA
var locationFarFromA = schema.Location{Latitude: 37.7884, Longitude: -122.4194}

func TestGetReusesPendingComputation(t *testing.T) {
	cache := NewCache(500)

	comp := NewComputation()
	cache.Put("place-1", comp, locationA)

	got, ok := cache.Get("place-1", locationA)
	assert.True(t, ok)
	assert.Same(t, comp, got)

	// still pending, nearby query reuses the same in-flight handle
	got, ok = cache.Get("place-1", locationNearA)
	assert.True(t, ok)
	assert.Same(t, comp, got)
}

func TestGetExpiresByDistance(t *testing.T) {
	cache := NewCache(500)

	cache.Put("place-1", NewComputation(), locationA)

	_, ok := cache.Get("place-1", locationFarFromA)
	assert.False(t, ok)
}

func TestGetNeverReusesFailure(t *testing.T) {
	cache := NewCache(500)

	comp := NewComputation()
	comp.Resolve(nil, assert.AnError)
	cache.Put("place-1", comp, locationA)

	_, ok := cache.Get("place-1", locationA)
	assert.False(t, ok)
}

func TestGetReusesSuccess(t *testing.T) {
	cache := NewCache(500)

	walking := 7 * time.Minute
	comp := NewComputation()
	comp.Resolve(&schema.TravelTimes{Walking: &walking}, nil)
	cache.Put("place-1", comp, locationA)

	got, ok := cache.Get("place-1", locationA)
	assert.True(t, ok)

	times, err := got.Result()
	assert.NoError(t, err)
	assert.Equal(t, walking, *times.Walking)
}

func TestPutOverwrites(t *testing.T) {
	cache := NewCache(500)

	first := NewComputation()
	second := NewComputation()
	cache.Put("place-1", first, locationA)
	cache.Put("place-1", second, locationA)

	got, ok := cache.Get("place-1", locationA)
	assert.True(t, ok)
	assert.Same(t, second, got)
}

func TestGetOrCreateIsAtomic(t *testing.T) {
	cache := NewCache(500)

	const callers = 32

	var wg sync.WaitGroup
	comps := make([]*Computation, callers)
	createdCount := make([]bool, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			comps[i], createdCount[i] = cache.GetOrCreate("place-1", locationA)
		}(i)
	}
	wg.Wait()

	created := 0
	for i := 0; i < callers; i++ {
		assert.Same(t, comps[0], comps[i])
		if createdCount[i] {
			created++
		}
	}

	// exactly one caller owns starting the computation
	assert.Equal(t, 1, created)
}

func TestGetOrCreateReplacesFailure(t *testing.T) {
	cache := NewCache(500)

	failed := NewComputation()
	failed.Resolve(nil, assert.AnError)
	cache.Put("place-1", failed, locationA)

	comp, created := cache.GetOrCreate("place-1", locationA)
	assert.True(t, created)
	assert.NotSame(t, failed, comp)
}

func TestComputationResolveOnce(t *testing.T) {
	comp := NewComputation()
	assert.False(t, comp.Settled())

	walking := 3 * time.Minute
	comp.Resolve(&schema.TravelTimes{Walking: &walking}, nil)
	comp.Resolve(nil, assert.AnError) // ignored

	<-comp.Done()
	times, err := comp.Result()
	assert.NoError(t, err)
	assert.Equal(t, walking, *times.Walking)
}
