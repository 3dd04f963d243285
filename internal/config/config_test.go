package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Host: "localhost", User: "app", DBName: "kindred"},
		JWT:      JWTConfig{Secret: "0123456789abcdef0123456789abcdef", SessionTTLDays: 7},
		Google:   GoogleConfig{ClientID: "client-id.apps.googleusercontent.com"},
		Storage: StorageConfig{
			Bucket:        "photos",
			Region:        "us-east-1",
			PublicBaseURL: "https://cdn.example.com",
		},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing db host", func(c *Config) { c.Database.Host = "" }},
		{"missing db user", func(c *Config) { c.Database.User = "" }},
		{"missing db name", func(c *Config) { c.Database.DBName = "" }},
		{"missing jwt secret", func(c *Config) { c.JWT.Secret = "" }},
		{"short jwt secret", func(c *Config) { c.JWT.Secret = "tooshort" }},
		{"missing google client id", func(c *Config) { c.Google.ClientID = "" }},
		{"missing bucket", func(c *Config) { c.Storage.Bucket = "" }},
		{"missing region", func(c *Config) { c.Storage.Region = "" }},
		{"missing public base url", func(c *Config) { c.Storage.PublicBaseURL = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGetDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5432, User: "app", Password: "pw", DBName: "kindred", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=app password=pw dbname=kindred sslmode=disable",
		cfg.GetDSN())
}

func TestDurations(t *testing.T) {
	assert.Equal(t, 15*time.Minute, (&RedisConfig{CacheTTLMin: 15}).CacheTTL())
	assert.Equal(t, 7*24*time.Hour, (&JWTConfig{SessionTTLDays: 7}).SessionTTL())
}
