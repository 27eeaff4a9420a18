package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "shopdesk-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "shopdesk.db", cfg.Database.Path)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "INV", cfg.Invoice.Prefix)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults pass", func(t *testing.T) {
		assert.NoError(t, valid().validate())
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		cfg := valid()
		cfg.Database.Driver = "mysql"
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects idle conns above open conns", func(t *testing.T) {
		cfg := valid()
		cfg.Database.MaxIdleConns = 100
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects short invoice prefix", func(t *testing.T) {
		cfg := valid()
		cfg.Invoice.Prefix = "A"
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects lowercase invoice prefix", func(t *testing.T) {
		cfg := valid()
		cfg.Invoice.Prefix = "agt"
		assert.Error(t, cfg.validate())
	})

	t.Run("accepts AGT prefix", func(t *testing.T) {
		cfg := valid()
		cfg.Invoice.Prefix = "AGT"
		assert.NoError(t, cfg.validate())
	})

	t.Run("production postgres requires password and ssl", func(t *testing.T) {
		cfg := valid()
		cfg.App.Env = "production"
		cfg.Database.Driver = "postgres"
		assert.Error(t, cfg.validate())

		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		assert.NoError(t, cfg.validate())
	})

	t.Run("production rejects wildcard CORS origin", func(t *testing.T) {
		cfg := valid()
		cfg.App.Env = "production"
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
		assert.Error(t, cfg.validate())
	})
}

func TestDSN(t *testing.T) {
	t.Run("sqlite uses the file path", func(t *testing.T) {
		d := DatabaseConfig{Driver: "sqlite", Path: "/var/lib/shopdesk/shop.db"}
		assert.Equal(t, "/var/lib/shopdesk/shop.db", d.DSN())
	})

	t.Run("postgres escapes credentials", func(t *testing.T) {
		d := DatabaseConfig{
			Driver:   "postgres",
			Host:     "localhost",
			Port:     5432,
			User:     "shop",
			Password: "p@ss/word",
			DBName:   "shopdesk",
			SSLMode:  "disable",
		}
		dsn := d.DSN()
		require.Contains(t, dsn, "postgres://")
		assert.Contains(t, dsn, "p%40ss%2Fword")
		assert.Contains(t, dsn, "sslmode=disable")
	})
}
