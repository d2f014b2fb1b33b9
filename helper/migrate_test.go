package helper

import (
	"net/url"
	"testing"

	"frontdesk/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	for _, s := range []string{"up", "down", "step-up", "drop"} {
		action, err := ParseAction(s)
		require.NoError(t, err)
		assert.Equal(t, Action(s), action)
	}

	_, err := ParseAction("sideways")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestConnectionString(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "test_"
	cfg.DB.Postgres.MigrationTable = "schema_migrations_frontdesk"
	cfg.DB.Postgres.Write.Username = "front"
	cfg.DB.Postgres.Write.Password = "secret"
	cfg.DB.Postgres.Write.Host = "localhost"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Name = "frontdesk"
	cfg.DB.Postgres.Write.SSLMode = "disable"

	parsed, err := url.Parse(connectionString(cfg))
	require.NoError(t, err)

	assert.Equal(t, "localhost:5432", parsed.Host)
	assert.Equal(t, "/test_frontdesk", parsed.Path)
	assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
	assert.Equal(t, "schema_migrations_frontdesk", parsed.Query().Get("x-migrations-table"))
}
