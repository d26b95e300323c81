package config

import "time"

// Config holds application configuration.
type Config struct {
	Enabled            bool          `env:"PRICE_TRUTH_ENABLED" envDefault:"true"`
	TTLHours           int           `env:"PRICE_TRUTH_TTL_HOURS" envDefault:"6"`
	TolerancePct       float64       `env:"CONSENSUS_TOLERANCE_PCT" envDefault:"3.0"`
	FetchTimeout       time.Duration `env:"FETCH_TIMEOUT" envDefault:"10s"`
	MaxParallelFetches int           `env:"MAX_PARALLEL_FETCHES" envDefault:"3"`
	RefreshSchedule    string        `env:"REFRESH_SCHEDULE" envDefault:"@every 1h"`
	HTTPTimeout        time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`

	// DatabaseURL selects the Postgres store. RedisURL takes precedence when set.
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`

	RabbitMQ RabbitMQ
}

// RabbitMQ holds RabbitMQ configuration.
type RabbitMQ struct {
	URL        string `env:"RABBITMQ_URL"`
	Exchange   string `env:"RABBITMQ_EXCHANGE" envDefault:"price-truth-ex"`
	Queue      string `env:"RABBITMQ_QUEUE" envDefault:"price-truth.commands"`
	RoutingKey string `env:"RABBITMQ_ROUTING_KEY" envDefault:"price-truth.lookup"`
}
