package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL" validate:"required"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn error"`

	PIM      PIM
	Sync     Sync
	RabbitMQ RabbitMQ
}

// PIM holds PIM API configuration.
type PIM struct {
	APIURL            string        `env:"PIM_API_URL" validate:"required,url"`
	Login             string        `env:"PIM_API_LOGIN" validate:"required"`
	Password          string        `env:"PIM_API_PASSWORD" validate:"required"`
	ImageURL          string        `env:"PIM_IMAGE_URL" validate:"omitempty,url"`
	HTTPTimeout       time.Duration `env:"PIM_HTTP_TIMEOUT" envDefault:"30s" validate:"gt=0"`
	ConnectTimeout    time.Duration `env:"PIM_CONNECT_TIMEOUT" envDefault:"10s" validate:"gt=0"`
	DownloadTimeout   time.Duration `env:"PIM_DOWNLOAD_TIMEOUT" envDefault:"60s" validate:"gt=0"`
	TokenLifetime     time.Duration `env:"PIM_TOKEN_LIFETIME" envDefault:"1h" validate:"gtfield=TokenMargin"`
	TokenMargin       time.Duration `env:"PIM_TOKEN_MARGIN" envDefault:"5m" validate:"gte=0"`
	RequestsPerSecond float64       `env:"PIM_REQUESTS_PER_SECOND" envDefault:"10" validate:"gte=0"`
	UserAgent         string        `env:"PIM_USER_AGENT" envDefault:"pim-sync/1.0.0"`
	CatalogUID        string        `env:"PIM_CATALOG_UID" validate:"required"`
	ManufacturerUID   string        `env:"PIM_MANUFACTURER_UID"`
}

// Sync holds synchronization configuration.
type Sync struct {
	Enabled      bool          `env:"SYNC_ENABLED" envDefault:"true"`
	Interval     time.Duration `env:"SYNC_INTERVAL" envDefault:"30m" validate:"gte=0"`
	DeltaDays    uint          `env:"SYNC_DELTA_DAYS" envDefault:"1" validate:"gte=1"`
	FullSchedule string        `env:"SYNC_FULL_SCHEDULE" envDefault:"0 3 * * *" validate:"omitempty,cronspec"`
	LogRetention time.Duration `env:"SYNC_LOG_RETENTION" envDefault:"720h" validate:"gt=0"`
	StaleAfter   time.Duration `env:"SYNC_STALE_AFTER" envDefault:"6h" validate:"gte=0"`
	TmpDir       string        `env:"SYNC_TMP_DIR"`
	StagingDir   string        `env:"SYNC_STAGING_DIR" envDefault:"var/import/pim" validate:"required"`
	MediaDir     string        `env:"MEDIA_DIR" envDefault:"var/media" validate:"required"`
}

// RabbitMQ holds RabbitMQ configuration. Commands consumer is disabled without URL.
type RabbitMQ struct {
	URL        string `env:"RABBITMQ_URL" validate:"omitempty,url"`
	Exchange   string `env:"RABBITMQ_EXCHANGE" envDefault:"pim-sync-ex"`
	Queue      string `env:"RABBITMQ_QUEUE" envDefault:"pim-sync.commands"`
	RoutingKey string `env:"RABBITMQ_ROUTING_KEY" envDefault:"pim-sync.sync"`
}

// Load loads .env file if present, then parses and validates configuration from environment.
func Load() (*Config, error) {
	// variables already set in environment take precedence over .env
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("can't parse env variables: %w", err)
	}

	if err := newValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func newValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("cronspec", func(fl validator.FieldLevel) bool {
		_, err := cron.ParseStandard(fl.Field().String())
		return err == nil
	})

	return validate
}
