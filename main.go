package main

import (
	"context"
	"flag"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/mozilla-mobile/prox-sub000/aggregator"
	"github.com/mozilla-mobile/prox-sub000/api"
	"github.com/mozilla-mobile/prox-sub000/config"
	"github.com/mozilla-mobile/prox-sub000/external/crawler"
	"github.com/mozilla-mobile/prox-sub000/external/directions"
	"github.com/mozilla-mobile/prox-sub000/notification"
	"github.com/mozilla-mobile/prox-sub000/relevance"
	"github.com/mozilla-mobile/prox-sub000/schema"
	"github.com/mozilla-mobile/prox-sub000/store"
	"github.com/mozilla-mobile/prox-sub000/travel"
	"github.com/mozilla-mobile/prox-sub000/utils"
)

func main() {
	var configFile string
	var traceMode bool
	flag.StringVar(&configFile, "c", "", "config file")
	flag.BoolVar(&traceMode, "trace", false, "dump incoming requests")
	flag.Parse()

	params := config.Load(configFile)

	if level, err := log.ParseLevel(params.LogLevel); err == nil {
		log.SetLevel(level)
	}
	log.SetFormatter(&prefixed.TextFormatter{ForceFormatting: true})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongoStore, err := store.Connect(ctx, params.MongoURI, params.MongoDatabase)
	if err != nil {
		log.WithError(err).Fatal("fail to connect mongodb")
	}

	redisClient := redis.NewClient(&redis.Options{Addr: params.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.WithError(err).Fatal("fail to connect redis")
	}

	directionsClient, err := directions.New(params.MapsAPIKey)
	if err != nil {
		log.WithError(err).Fatal("fail to create directions client")
	}

	engine := relevance.NewEngine(relevance.Thresholds{
		StartNotificationInterval:     params.StartNotificationInterval,
		MinTimeFromEndForNotification: params.MinTimeFromEndForNotification,
		AboutToStartInterval:          params.AboutToStartInterval,
		AboutToEndInterval:            params.AboutToEndInterval,
	}, clock.New())

	messages := relevance.NewMessageBuilder(engine, utils.NewLocalizer("en"))

	events := notification.NewEventNotifier(
		notification.LogNotifier{},
		notification.NewRedisSentStore(redisClient),
		engine,
		messages,
		params.NotificationDedup,
	)

	server := api.NewServer(mongoStore, nil, events, store.NewSessionStore(redisClient), traceMode)

	places := aggregator.New(
		mongoStore,
		mongoStore,
		crawler.New(params.CrawlerEndpoint),
		engine,
		travel.NewCache(params.TravelExpirationMeters),
		directionsClient,
		server,
		clock.New(),
		aggregator.Config{
			RadiusKm:           params.RadiusKm,
			MaxRetries:         params.MaxRetries,
			TimeBetweenRetries: params.TimeBetweenRetries,
			TravelModes: []schema.TravelMode{
				schema.TravelModeWalking,
				schema.TravelModeDriving,
				schema.TravelModeTransit,
			},
		},
	)
	server.SetAggregator(places)

	log.WithField("addr", params.ListenAddr).Info("starting server")
	if err := server.Run(params.ListenAddr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
