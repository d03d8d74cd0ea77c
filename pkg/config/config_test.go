package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestLoadDefaults(t *testing.T) {
	conf, err := Load("seller")
	require.NoError(t, err)

	assert.Equal(t, "seller", conf.ServiceName)
	assert.Equal(t, "localhost", conf.DB.Host)
	assert.Equal(t, "5432", conf.DB.Port)
	assert.Equal(t, "seller", conf.DB.DBName)
	assert.Equal(t, "8080", conf.Server.Port)
	assert.Equal(t, "development", conf.Server.Env)
	assert.Equal(t, 24, conf.JWT.ExpirationHours)
	assert.Equal(t, "info", conf.Log.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_IDLE_CONNS", "3")
	t.Setenv("DB_CONN_MAX_LIFETIME", "30m")
	t.Setenv("DB_LOG_LEVEL", "silent")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_EXPIRATION_HOURS", "2")

	conf, err := Load("seller")
	require.NoError(t, err)

	assert.Equal(t, "db.internal", conf.DB.Host)
	assert.Equal(t, 3, conf.DB.MaxIdleConns)
	assert.Equal(t, 30*time.Minute, conf.DB.ConnMaxLifetime)
	assert.Equal(t, logger.Silent, conf.DB.LogLevel)
	assert.Equal(t, "9090", conf.Server.Port)
	assert.Equal(t, 2, conf.JWT.ExpirationHours)
}

func TestGetDSN(t *testing.T) {
	conf := DBConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Password: "secret",
		DBName:   "seller",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=seller sslmode=disable",
		conf.GetDSN())
}
