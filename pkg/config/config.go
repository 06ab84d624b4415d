package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port             string        `envconfig:"PORT" default:"8080"`
	ProjectID        string        `envconfig:"GOOGLE_PROJECT_ID" required:"true"`
	CredentialsFile  string        `envconfig:"GOOGLE_CREDENTIALS_FILE" default:""`
	OrdersCollection string        `envconfig:"ORDERS_COLLECTION" default:"orders"`
	KafkaBrokers     string        `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaTopic       string        `envconfig:"KAFKA_TOPIC" default:"order-events"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
	NewOrderWindow   time.Duration `envconfig:"NEW_ORDER_WINDOW" default:"30s"`
	AllowedOrigins   []string      `envconfig:"ALLOWED_ORIGINS" default:"*"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
