package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/pkg/config"
)

func TestLoad_ValoresDesdeEntorno(t *testing.T) {
	t.Setenv("RECORD_SOURCE", "API")
	t.Setenv("STOREFRONT_API_URL", "https://shop.example.com/api/")
	t.Setenv("STOREFRONT_PAGE_SIZE", "250")
	t.Setenv("STOREFRONT_TIMEOUT_SECONDS", "5")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.SourceAPI, cfg.Source.Kind)
	assert.Equal(t, "https://shop.example.com/api", cfg.Storefront.BaseURL)
	assert.Equal(t, 250, cfg.Storefront.PageSize)
	assert.Equal(t, 4, cfg.Storefront.MaxConcurrency)
	assert.Equal(t, 5*time.Second, cfg.Storefront.Timeout())
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

func TestLoad_APIRequiereURL(t *testing.T) {
	t.Setenv("RECORD_SOURCE", "api")
	t.Setenv("STOREFRONT_API_URL", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_OrigenDesconocido(t *testing.T) {
	t.Setenv("RECORD_SOURCE", "mongo")

	_, err := config.Load()
	assert.ErrorContains(t, err, "RECORD_SOURCE")
}

func TestDBConfig_DSNEscapaContrasena(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "catalogo", SSLMode: "disable"}

	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/catalogo?sslmode=disable", db.ConnectionString())

	db.DatabaseURL = "postgres://u@h/d"
	assert.Equal(t, "postgres://u@h/d", db.ConnectionString())
}
