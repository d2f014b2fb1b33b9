package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"frontdesk/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
)

// Connection splits reads and writes. Analytics and list queries go to Read,
// every mutation goes to Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type endpoint struct {
	name     string
	username string
	password string
	host     string
	port     string
	dbName   string
	sslMode  string
	timezone string
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	return &Connection{
		Read: connect(endpoint{
			name:     "read",
			username: pg.Read.Username,
			password: pg.Read.Password,
			host:     pg.Read.Host,
			port:     pg.Read.Port,
			dbName:   dbName(cfg, pg.Read.Name),
			sslMode:  pg.Read.SSLMode,
			timezone: pg.Read.Timezone,
		}, pg.MaxRetry, pg.RetryWaitTime),
		Write: connect(endpoint{
			name:     "write",
			username: pg.Write.Username,
			password: pg.Write.Password,
			host:     pg.Write.Host,
			port:     pg.Write.Port,
			dbName:   dbName(cfg, pg.Write.Name),
			sslMode:  pg.Write.SSLMode,
			timezone: pg.Write.Timezone,
		}, pg.MaxRetry, pg.RetryWaitTime),
	}
}

func dbName(cfg *config.Config, baseName string) string {
	return cfg.DB.Postgres.Prefix + baseName
}

// DSN renders the lib/pq connection URL. Timezone defaults to UTC so timestamps
// round-trip unchanged regardless of the server setting.
func (e endpoint) DSN() string {
	query := url.Values{}

	if e.sslMode != "" {
		query.Set("sslmode", e.sslMode)
	}

	timezone := e.timezone
	if timezone == "" {
		timezone = "UTC"
	}

	query.Set("timezone", timezone)

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.username, e.password),
		Host:     net.JoinHostPort(e.host, e.port),
		Path:     "/" + e.dbName,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func connect(e endpoint, maxRetry, waitTime int) *sqlx.DB {
	logger := log.With().Str("name", e.name).Str("host", e.host).Str("port", e.port).Str("dbName", e.dbName).Logger()

	for retry := range max(maxRetry, 1) {
		sqlDB, err := sqlx.Connect("postgres", e.DSN())
		if err == nil {
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)
			sqlDB.SetConnMaxLifetime(postgresConnMaxLifetime)

			logger.Info().Msg("Connected to database")

			return sqlDB
		}

		logger.Error().Err(err).Int("attempt", retry+1).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	logger.Error().Msg("Giving up connecting to database")

	return nil
}

// Ping checks both connections.
func (c *Connection) Ping(ctx context.Context) error {
	if c.Read == nil || c.Write == nil {
		return errors.New("database connection not established")
	}

	if err := c.Read.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping read database: %w", err)
	}

	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping write database: %w", err)
	}

	return nil
}

func (c *Connection) Close() error {
	var errs []error

	for _, db := range []*sqlx.DB{c.Read, c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
