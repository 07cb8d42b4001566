package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr            string        `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type Catalog struct {
	BaseURL         string        `yaml:"CATALOG_BASE_URL" env:"CATALOG_BASE_URL" env-default:"https://dummyjson.com"`
	Timeout         time.Duration `yaml:"CATALOG_TIMEOUT" env:"CATALOG_TIMEOUT" env-default:"10s"`
	DefaultPageSize int           `yaml:"CATALOG_PAGE_SIZE" env:"CATALOG_PAGE_SIZE" env-default:"12"`
	SimilarLimit    int           `yaml:"CATALOG_SIMILAR_LIMIT" env:"CATALOG_SIMILAR_LIMIT" env-default:"4"`
}

type Search struct {
	DebounceDelay   time.Duration `yaml:"SEARCH_DEBOUNCE" env:"SEARCH_DEBOUNCE" env-default:"300ms"`
	MinQueryLength  int           `yaml:"SEARCH_MIN_LENGTH" env:"SEARCH_MIN_LENGTH" env-default:"2"`
	SuggestionLimit int           `yaml:"SEARCH_SUGGESTION_LIMIT" env:"SEARCH_SUGGESTION_LIMIT" env-default:"5"`
}

type Session struct {
	Secret        string        `yaml:"SESSION_SECRET" env:"SESSION_SECRET" env-required:"true"`
	CookieName    string        `yaml:"SESSION_COOKIE" env:"SESSION_COOKIE" env-default:"sf_session"`
	TTL           time.Duration `yaml:"SESSION_TTL" env:"SESSION_TTL" env-default:"24h"`
	SweepInterval time.Duration `yaml:"SESSION_SWEEP_INTERVAL" env:"SESSION_SWEEP_INTERVAL" env-default:"5m"`
	SecureCookie  bool          `yaml:"SESSION_SECURE_COOKIE" env:"SESSION_SECURE_COOKIE" env-default:"false"`
}

// RedisConnect is optional: an empty host disables the search rate limiter.
type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"30"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"10s"`
}

// CacheConfig controls the redis read-through cache in front of the catalog.
type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"DEFAULT_TTL" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
}

// Kafka is optional: no brokers disables cart event publishing.
type Kafka struct {
	Brokers []string `yaml:"KAFKA_BROKERS" env:"KAFKA_BROKERS" env-separator:","`
	Topic   string   `yaml:"KAFKA_TOPIC" env:"KAFKA_TOPIC" env-default:"storefront.cart-events"`
}

type Otel struct {
	Enabled          bool    `yaml:"ENABLED" env:"OTEL_ENABLED" env-default:"false"`
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"storefront"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4318"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"local"`
	LogLevel     string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	HTTPServer   `yaml:"http_server"`
	Catalog      Catalog      `yaml:"catalog"`
	Search       Search       `yaml:"search"`
	Session      Session      `yaml:"session"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	Cache        CacheConfig  `yaml:"cache"`
	Kafka        Kafka        `yaml:"kafka"`
	Otel         Otel         `yaml:"otel"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "path to the yaml config file")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			configPath = "config/local.yaml"
		}

	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config: %s", err.Error())
	}

	return cfg

}

func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("can not read config file: %w", err)
	}

	return &cfg, nil
}

func (r *RedisConnect) Enabled() bool {
	return r.Host != ""
}

func (r *RedisConnect) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s", r.Username, r.Password, r.Addr())
}

func (k *Kafka) Enabled() bool {
	return len(k.Brokers) > 0
}
