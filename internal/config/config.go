package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/munin-search/autocomplete/internal/query"
)

// Config is the process-wide configuration, loaded once at startup the
// way the teacher's Load does: an .env file plus environment overrides
// read through viper.
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Redis   RedisConfig
	Ranking RankingConfig
	Pool    PoolConfig
	Log     LogConfig
}

// ServerConfig configures the HTTP surface exposing the autocomplete
// endpoint.
type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// BackendConfig points at the search backend implementing C7.
type BackendConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// RedisConfig configures the Redis client backing the POI ingestion
// queue.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RankingConfig externalizes the tunable ranking constants of spec §4.3
// plus the POI enrichment pipeline's reverse-geocode radius (spec §9).
type RankingConfig struct {
	BoostAddr  float64
	BoostAdmin float64
	BoostStop  float64

	BoostPrimaryMatch float64
	BoostZipCodeMatch float64
	BoostFuzzyPrefix  float64

	ProximityDecayKm    float64
	BoostProximity      float64
	BoostWeightFallback float64

	FuzzyMinimumShouldMatchPercent float64
	ReverseGeocodeRadiusMeters     float64
}

// ToSettings converts a RankingConfig into the query package's runtime
// RankingSettings value.
func (r RankingConfig) ToSettings() query.RankingSettings {
	return query.RankingSettings{
		BoostAddr:                      r.BoostAddr,
		BoostAdmin:                     r.BoostAdmin,
		BoostStop:                      r.BoostStop,
		BoostPrimaryMatch:              r.BoostPrimaryMatch,
		BoostZipCodeMatch:              r.BoostZipCodeMatch,
		BoostFuzzyPrefix:               r.BoostFuzzyPrefix,
		ProximityDecayKm:               r.ProximityDecayKm,
		BoostProximity:                 r.BoostProximity,
		BoostWeightFallback:            r.BoostWeightFallback,
		FuzzyMinimumShouldMatchPercent: r.FuzzyMinimumShouldMatchPercent,
		ReverseGeocodeRadiusMeters:     r.ReverseGeocodeRadiusMeters,
	}
}

// PoolConfig configures the POI enrichment pipeline's bounded-concurrency
// worker pool (spec §4.5) and the Redis stream it consumes from.
type PoolConfig struct {
	Concurrency   int
	ConsumerGroup string
	StreamName    string
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string
}

// Load reads configuration from .env and the environment, falling back
// to the defaults in spec.md §4.3 for every ranking knob left unset.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	defaults := query.DefaultRankingSettings()

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Backend: BackendConfig{
			BaseURL:        viper.GetString("BACKEND_BASE_URL"),
			RequestTimeout: time.Duration(viper.GetInt("BACKEND_REQUEST_TIMEOUT_MS")) * time.Millisecond,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Ranking: RankingConfig{
			BoostAddr:                      viperFloatOrDefault("RANKING_BOOST_ADDR", defaults.BoostAddr),
			BoostAdmin:                     viperFloatOrDefault("RANKING_BOOST_ADMIN", defaults.BoostAdmin),
			BoostStop:                      viperFloatOrDefault("RANKING_BOOST_STOP", defaults.BoostStop),
			BoostPrimaryMatch:              viperFloatOrDefault("RANKING_BOOST_PRIMARY_MATCH", defaults.BoostPrimaryMatch),
			BoostZipCodeMatch:              viperFloatOrDefault("RANKING_BOOST_ZIP_CODE_MATCH", defaults.BoostZipCodeMatch),
			BoostFuzzyPrefix:               viperFloatOrDefault("RANKING_BOOST_FUZZY_PREFIX", defaults.BoostFuzzyPrefix),
			ProximityDecayKm:               viperFloatOrDefault("RANKING_PROXIMITY_DECAY_KM", defaults.ProximityDecayKm),
			BoostProximity:                 viperFloatOrDefault("RANKING_BOOST_PROXIMITY", defaults.BoostProximity),
			BoostWeightFallback:            viperFloatOrDefault("RANKING_BOOST_WEIGHT_FALLBACK", defaults.BoostWeightFallback),
			FuzzyMinimumShouldMatchPercent: viperFloatOrDefault("RANKING_FUZZY_MIN_SHOULD_MATCH_PCT", defaults.FuzzyMinimumShouldMatchPercent),
			ReverseGeocodeRadiusMeters:     viperFloatOrDefault("RANKING_REVERSE_GEOCODE_RADIUS_M", defaults.ReverseGeocodeRadiusMeters),
		},
		Pool: PoolConfig{
			Concurrency:   viper.GetInt("POI_POOL_CONCURRENCY"),
			ConsumerGroup: viper.GetString("POI_CONSUMER_GROUP"),
			StreamName:    viper.GetString("POI_STREAM_NAME"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	if cfg.Backend.RequestTimeout == 0 {
		cfg.Backend.RequestTimeout = 30 * time.Second
	}
	if cfg.Pool.Concurrency == 0 {
		cfg.Pool.Concurrency = 8
	}
	if cfg.Pool.ConsumerGroup == "" {
		cfg.Pool.ConsumerGroup = "poi-enrichment-workers"
	}
	if cfg.Pool.StreamName == "" {
		cfg.Pool.StreamName = "poi:raw"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

func viperFloatOrDefault(key string, fallback float64) float64 {
	if !viper.IsSet(key) {
		return fallback
	}
	return viper.GetFloat64(key)
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
