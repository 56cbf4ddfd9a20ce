package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"FCC_APP_NAME":                os.Getenv("FCC_APP_NAME"),
		"FCC_APP_ENV":                 os.Getenv("FCC_APP_ENV"),
		"FCC_APP_PORT":                os.Getenv("FCC_APP_PORT"),
		"FCC_DATABASE_HOST":           os.Getenv("FCC_DATABASE_HOST"),
		"FCC_DATABASE_PORT":           os.Getenv("FCC_DATABASE_PORT"),
		"FCC_DATABASE_USER":           os.Getenv("FCC_DATABASE_USER"),
		"FCC_DATABASE_PASSWORD":       os.Getenv("FCC_DATABASE_PASSWORD"),
		"FCC_DATABASE_DBNAME":         os.Getenv("FCC_DATABASE_DBNAME"),
		"FCC_DATABASE_SSLMODE":        os.Getenv("FCC_DATABASE_SSLMODE"),
		"FCC_DATABASE_MAX_OPEN_CONNS": os.Getenv("FCC_DATABASE_MAX_OPEN_CONNS"),
		"FCC_DATABASE_MAX_IDLE_CONNS": os.Getenv("FCC_DATABASE_MAX_IDLE_CONNS"),
		"FCC_JWT_SECRET":              os.Getenv("FCC_JWT_SECRET"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "fcc-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "fcc", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	})

	t.Run("loads values from environment variables with FCC prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("FCC_APP_NAME", "test-app")
		os.Setenv("FCC_APP_PORT", "9000")
		os.Setenv("FCC_DATABASE_HOST", "testdb.local")
		os.Setenv("FCC_DATABASE_PORT", "5433")
		os.Setenv("FCC_DATABASE_USER", "testuser")
		os.Setenv("FCC_DATABASE_PASSWORD", "testpass")
		os.Setenv("FCC_DATABASE_DBNAME", "testdb")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("FCC_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("FCC_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("requires strong jwt secret in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("FCC_APP_ENV", "production")
		os.Setenv("FCC_JWT_SECRET", "short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.example.com",
		Port:     5432,
		User:     "fcc",
		Password: "p@ss:word/with#special",
		DBName:   "ledger",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()

	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.example.com:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss:word/with#special@db.example.com")
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", cfg.Addr())
}
