package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service settings.
type Config struct {
	Port      int
	LogLevel  string
	DB        DB
	Redis     Redis
	Kafka     Kafka
	Dispatch  Dispatch
	Retry     Retry
	RateLimit RateLimit
}

// DB stores Postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN returns a pgx connection string.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Redis stores offer store settings. Empty Addr selects the in-memory store.
type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Kafka stores broker settings.
type Kafka struct {
	Brokers            []string
	GroupID            string
	OrdersTopic        string
	NotificationsTopic string
}

// Dispatch stores assignment engine settings.
type Dispatch struct {
	OfferTTL          time.Duration
	Fanout            int
	RadiiKm           []float64
	LocationFreshness time.Duration
	MaxEscalations    int
	SweepSchedule     string
	OperationTimeout  time.Duration
	SettleGrace       time.Duration
}

// Retry stores the backoff policy for store calls.
type Retry struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RateLimit stores per-courier limiter settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      defaultPort,
		LogLevel:  defaultLogLevel,
		DB:        DefaultDB(),
		Redis:     DefaultRedis(),
		Kafka:     DefaultKafka(),
		Dispatch:  DefaultDispatch(),
		Retry:     DefaultRetry(),
		RateLimit: DefaultRateLimit(),
	}

	e := envReader{}
	e.int("PORT", &cfg.Port)
	e.str("LOG_LEVEL", &cfg.LogLevel)

	e.str("POSTGRES_HOST", &cfg.DB.Host)
	e.str("POSTGRES_PORT", &cfg.DB.Port)
	e.str("POSTGRES_USER", &cfg.DB.User)
	e.str("POSTGRES_PASSWORD", &cfg.DB.Pass)
	e.str("POSTGRES_DB", &cfg.DB.Name)

	e.str("REDIS_ADDR", &cfg.Redis.Addr)
	e.str("REDIS_PASSWORD", &cfg.Redis.Password)
	e.int("REDIS_DB", &cfg.Redis.DB)

	e.list("KAFKA_BROKERS", &cfg.Kafka.Brokers)
	e.str("KAFKA_GROUP_ID", &cfg.Kafka.GroupID)
	e.str("KAFKA_ORDERS_TOPIC", &cfg.Kafka.OrdersTopic)
	e.str("KAFKA_NOTIFICATIONS_TOPIC", &cfg.Kafka.NotificationsTopic)

	e.duration("DISPATCH_OFFER_TTL", &cfg.Dispatch.OfferTTL)
	e.int("DISPATCH_FANOUT", &cfg.Dispatch.Fanout)
	e.floats("DISPATCH_RADII_KM", &cfg.Dispatch.RadiiKm)
	e.duration("DISPATCH_LOCATION_FRESHNESS", &cfg.Dispatch.LocationFreshness)
	e.int("DISPATCH_MAX_ESCALATIONS", &cfg.Dispatch.MaxEscalations)
	e.str("DISPATCH_SWEEP_SCHEDULE", &cfg.Dispatch.SweepSchedule)
	e.duration("DISPATCH_OPERATION_TIMEOUT", &cfg.Dispatch.OperationTimeout)
	e.duration("DISPATCH_SETTLE_GRACE", &cfg.Dispatch.SettleGrace)

	e.int("RETRY_MAX_ATTEMPTS", &cfg.Retry.MaxAttempts)
	e.duration("RETRY_BASE_DELAY", &cfg.Retry.BaseDelay)
	e.duration("RETRY_MAX_DELAY", &cfg.Retry.MaxDelay)

	e.bool("RATE_LIMIT_ENABLED", &cfg.RateLimit.Enabled)
	e.float("RATE_LIMIT_RATE", &cfg.RateLimit.Rate)
	e.int("RATE_LIMIT_BURST", &cfg.RateLimit.Burst)
	e.duration("RATE_LIMIT_TTL", &cfg.RateLimit.TTL)
	e.int("RATE_LIMIT_MAX_BUCKETS", &cfg.RateLimit.MaxBuckets)

	if e.err != nil {
		return nil, e.err
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	pflag.DurationVar(&cfg.Dispatch.OfferTTL, "offer-ttl", cfg.Dispatch.OfferTTL, "time a courier has to answer an offer")
	pflag.StringVar(&cfg.Dispatch.SweepSchedule, "sweep-schedule", cfg.Dispatch.SweepSchedule, "cron schedule of the offer expiry sweep")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if p, err := strconv.Atoi(c.DB.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid POSTGRES_PORT: %q", c.DB.Port)
	}
	if c.Dispatch.OfferTTL <= 0 {
		return fmt.Errorf("invalid DISPATCH_OFFER_TTL: %s", c.Dispatch.OfferTTL)
	}
	if c.Dispatch.Fanout <= 0 {
		return fmt.Errorf("invalid DISPATCH_FANOUT: %d", c.Dispatch.Fanout)
	}
	if len(c.Dispatch.RadiiKm) == 0 {
		return fmt.Errorf("DISPATCH_RADII_KM is empty")
	}
	for i, r := range c.Dispatch.RadiiKm {
		if r <= 0 || (i > 0 && r <= c.Dispatch.RadiiKm[i-1]) {
			return fmt.Errorf("DISPATCH_RADII_KM must be positive and increasing: %v", c.Dispatch.RadiiKm)
		}
	}
	if c.Dispatch.MaxEscalations < 0 || c.Dispatch.MaxEscalations > len(c.Dispatch.RadiiKm)-1 {
		return fmt.Errorf("invalid DISPATCH_MAX_ESCALATIONS: %d", c.Dispatch.MaxEscalations)
	}
	if c.Retry.MaxAttempts <= 0 {
		return fmt.Errorf("invalid RETRY_MAX_ATTEMPTS: %d", c.Retry.MaxAttempts)
	}
	return nil
}

// envReader reads typed environment variables and keeps the first parse error.
// Unset or empty variables leave the default in place.
type envReader struct{ err error }

func (e *envReader) lookup(key string) (string, bool) {
	if e.err != nil {
		return "", false
	}
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func (e *envReader) fail(key, v string, err error) {
	e.err = fmt.Errorf("invalid %s=%q: %w", key, v, err)
}

func (e *envReader) str(key string, dst *string) {
	if v, ok := e.lookup(key); ok {
		*dst = v
	}
}

func (e *envReader) int(key string, dst *int) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v, err)
		return
	}
	*dst = n
}

func (e *envReader) float(key string, dst *float64) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(key, v, err)
		return
	}
	*dst = f
}

func (e *envReader) bool(key string, dst *bool) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, v, err)
		return
	}
	*dst = b
}

func (e *envReader) duration(key string, dst *time.Duration) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, v, err)
		return
	}
	*dst = d
}

func (e *envReader) list(key string, dst *[]string) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	*dst = out
}

func (e *envReader) floats(key string, dst *[]float64) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	var out []float64
	for _, part := range strings.Split(v, ",") {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		out = append(out, f)
	}
	*dst = out
}
