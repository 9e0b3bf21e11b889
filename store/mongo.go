package store

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/mozilla-mobile/prox-sub000/geo"
)

const (
	mongoLogPrefix = "mongo"
	defaultTimeout = 5 * time.Second
)

// PlaceStore is everything the aggregation pipeline needs from mongo: the
// geo index and the record store.
type PlaceStore interface {
	geo.Index
	geo.RecordStore
	Ping(ctx context.Context) error
}

type mongoDB struct {
	client   *mongo.Client
	database string
}

// NewPlaceStore wraps an established mongo client.
func NewPlaceStore(client *mongo.Client, database string) PlaceStore {
	return &mongoDB{
		client:   client,
		database: database,
	}
}

// Connect dials mongo and verifies the connection before returning a store.
func Connect(ctx context.Context, uri, database string) (PlaceStore, error) {
	opts := options.Client().ApplyURI(uri).SetServerSelectionTimeout(defaultTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	log.WithField("prefix", mongoLogPrefix).WithField("database", database).Info("mongodb connected")

	return NewPlaceStore(client, database), nil
}

func (m *mongoDB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return m.client.Ping(ctx, readpref.Primary())
}
