// Package config loads service settings from the environment, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server     Server     `envconfig:"SERVER"`
	App        App        `envconfig:"APP"`
	Reconciler Reconciler `envconfig:"RECONCILER"`
	Kafka      Kafka      `envconfig:"KAFKA"`
	Metrics    Metrics    `envconfig:"METRICS"`
	Cache      Cache      `envconfig:"CACHE"`
	JWT        JWT        `envconfig:"JWT"`
	DB         DB         `envconfig:"DB"`
	External   External   `envconfig:"EXTERNAL"`
}

type Server struct {
	Env      string `envconfig:"ENV"       default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"      default:"8080"`
	Shutdown struct {
		CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"10"`
		GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"5"`
	} `envconfig:"SHUTDOWN"`
}

type App struct {
	Name        string      `envconfig:"NAME"     default:"frontdesk"`
	Timezone    string      `envconfig:"TIMEZONE" default:"UTC"`
	CORS        CORS        `envconfig:"CORS"`
	RateLimiter RateLimiter `envconfig:"RATE_LIMITER"`
	// APIKey authenticates the automation bot on the webhook endpoints.
	APIKey string `envconfig:"API_KEY"`
}

type CORS struct {
	Enable           bool     `envconfig:"ENABLE"`
	AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
	AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
	AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
	AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
	MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
}

type RateLimiter struct {
	Enable        bool `envconfig:"ENABLE"`
	MaxRequests   int  `envconfig:"MAX_REQUESTS"   default:"100"`
	WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
}

type Reconciler struct {
	Enable   bool   `envconfig:"ENABLE"   default:"true"`
	Schedule string `envconfig:"SCHEDULE" default:"*/5 * * * *"`
}

// Kafka is optional. With no brokers the room status events and the bot order queue are off.
type Kafka struct {
	Brokers       []string `envconfig:"BROKERS"`
	ConsumerGroup string   `envconfig:"CONSUMER_GROUP" default:"frontdesk"`
	SASL          struct {
		Username string `envconfig:"USERNAME"`
		Password string `envconfig:"PASSWORD"`
	} `envconfig:"SASL"`
	Topics struct {
		RoomStatus string `envconfig:"ROOM_STATUS" default:"frontdesk.room-status"`
		BotOrders  string `envconfig:"BOT_ORDERS"  default:"frontdesk.bot-orders"`
	} `envconfig:"TOPICS"`
}

type Metrics struct {
	Enable bool   `envconfig:"ENABLE" default:"true"`
	Path   string `envconfig:"PATH"   default:"/metrics"`
}

type Cache struct {
	Redis struct {
		Primary struct {
			Host     string `envconfig:"HOST"`
			Port     string `envconfig:"PORT"     default:"6379"`
			Password string `envconfig:"PASSWORD"`
			DB       int    `envconfig:"DB"`
		} `envconfig:"PRIMARY"`
	} `envconfig:"REDIS"`
	TTL int `envconfig:"TTL" default:"300"`
}

type JWT struct {
	AccessSecret     string `envconfig:"ACCESS_SECRET"`
	RefreshSecret    string `envconfig:"REFRESH_SECRET"`
	AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"15"`
	RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
}

type DB struct {
	Postgres struct {
		MaxRetry       int              `envconfig:"MAX_RETRY"       default:"3"`
		RetryWaitTime  int              `envconfig:"RETRY_WAIT_TIME" default:"2"`
		MigrationTable string           `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
		AutoMigrate    bool             `envconfig:"AUTO_MIGRATE"`
		Prefix         string           `envconfig:"PREFIX"`
		Read           PostgresEndpoint `envconfig:"READ"`
		Write          PostgresEndpoint `envconfig:"WRITE"`
	} `envconfig:"POSTGRES"`
}

type PostgresEndpoint struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"     default:"5432"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE"`
}

type External struct {
	Otel struct {
		Endpoint string `envconfig:"ENDPOINT"`
	} `envconfig:"OTEL"`
	S3 struct {
		APIEndpoint     string `envconfig:"API_ENDPOINT"`
		PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
		AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
		SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
		BucketName      string `envconfig:"BUCKET_NAME"`
	} `envconfig:"S3"`
}

var (
	conf    Config
	loadErr error
	once    sync.Once
)

// Init loads the configuration once. A missing .env file is not an error.
func Init() error {
	once.Do(func() {
		loadErr = load(&conf, ".env")
	})

	return loadErr
}

func load(cfg *Config, envFile string) error {
	switch err := godotenv.Load(envFile); {
	case err == nil:
		log.Debug().Str("file", envFile).Msg("Loaded environment file")
	case errors.Is(err, fs.ErrNotExist):
		log.Debug().Str("file", envFile).Msg("No environment file, using process environment")
	default:
		return fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("failed to process environment variables: %w", err)
	}

	return nil
}

// Get returns the loaded configuration, loading it on first use.
func Get() *Config {
	if err := Init(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	return &conf
}
