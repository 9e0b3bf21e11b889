// Package config snapshots every tunable the pipeline consumes. Values are
// remote-operable through the environment and an optional config file; no
// component hardcodes a threshold.
package config

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Params struct {
	ListenAddr string
	LogLevel   string

	MongoURI      string
	MongoDatabase string
	RedisAddr     string

	CrawlerEndpoint string
	MapsAPIKey      string

	RadiusKm           float64
	MaxRetries         int
	TimeBetweenRetries time.Duration

	TravelExpirationMeters float64

	StartNotificationInterval     time.Duration
	MinTimeFromEndForNotification time.Duration
	AboutToStartInterval          time.Duration
	AboutToEndInterval            time.Duration

	NotificationDedup bool
}

// Load reads configuration from the environment (PROX_ prefix) layered over
// an optional config file and the shipped defaults.
func Load(file string) *Params {
	v := viper.New()
	v.SetEnvPrefix("prox")
	v.AutomaticEnv()

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("mongo_uri", "mongodb://127.0.0.1:27017")
	v.SetDefault("mongo_database", "prox")
	v.SetDefault("redis_addr", "127.0.0.1:6379")
	v.SetDefault("crawler_endpoint", "")
	v.SetDefault("maps_api_key", "")
	v.SetDefault("radius_km", 4.0)
	v.SetDefault("max_retries", 10)
	v.SetDefault("time_between_retries", "1s")
	v.SetDefault("travel_expiration_meters", 500.0)
	v.SetDefault("start_notification_interval", "1h")
	v.SetDefault("min_time_from_end_for_notification", "2h")
	v.SetDefault("about_to_start_interval", "15m")
	v.SetDefault("about_to_end_interval", "30m")
	v.SetDefault("notification_dedup", true)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			log.WithField("prefix", "config").WithError(err).Warn("fail to read config file, using defaults")
		}
	}

	return &Params{
		ListenAddr:                    v.GetString("listen_addr"),
		LogLevel:                      v.GetString("log_level"),
		MongoURI:                      v.GetString("mongo_uri"),
		MongoDatabase:                 v.GetString("mongo_database"),
		RedisAddr:                     v.GetString("redis_addr"),
		CrawlerEndpoint:               v.GetString("crawler_endpoint"),
		MapsAPIKey:                    v.GetString("maps_api_key"),
		RadiusKm:                      v.GetFloat64("radius_km"),
		MaxRetries:                    v.GetInt("max_retries"),
		TimeBetweenRetries:            v.GetDuration("time_between_retries"),
		TravelExpirationMeters:        v.GetFloat64("travel_expiration_meters"),
		StartNotificationInterval:     v.GetDuration("start_notification_interval"),
		MinTimeFromEndForNotification: v.GetDuration("min_time_from_end_for_notification"),
		AboutToStartInterval:          v.GetDuration("about_to_start_interval"),
		AboutToEndInterval:            v.GetDuration("about_to_end_interval"),
		NotificationDedup:             v.GetBool("notification_dedup"),
	}
}
