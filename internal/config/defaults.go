package config

import "time"

const defaultPort = 8080

const defaultLogLevel = "info"

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "test_db",
}

var defaultKafka = Kafka{
	Brokers:            []string{"localhost:9092"},
	GroupID:            "service-dispatch",
	OrdersTopic:        "orders",
	NotificationsTopic: "dispatch-notifications",
}

var defaultDispatch = Dispatch{
	OfferTTL:          2 * time.Minute,
	Fanout:            3,
	RadiiKm:           []float64{5, 10, 20},
	LocationFreshness: 5 * time.Minute,
	MaxEscalations:    1,
	SweepSchedule:     "@every 10s",
	OperationTimeout:  3 * time.Second,
	SettleGrace:       30 * time.Second,
}

var defaultRetry = Retry{
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    200 * time.Millisecond,
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       5,
	Burst:      10,
	TTL:        10 * time.Minute,
	MaxBuckets: 100000,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultRedis returns the default Redis settings: no address, in-memory offers.
func DefaultRedis() Redis {
	return Redis{}
}

// DefaultKafka returns the default Kafka settings.
func DefaultKafka() Kafka {
	k := defaultKafka
	k.Brokers = append([]string(nil), defaultKafka.Brokers...)
	return k
}

// DefaultDispatch returns the default engine settings.
func DefaultDispatch() Dispatch {
	d := defaultDispatch
	d.RadiiKm = append([]float64(nil), defaultDispatch.RadiiKm...)
	return d
}

// DefaultRetry returns the default store retry settings.
func DefaultRetry() Retry {
	return defaultRetry
}

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}
