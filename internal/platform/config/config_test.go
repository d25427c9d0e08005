// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/fitlog/internal/platform/config"
)

const validSecret = "0123456789abcdef0123456789abcdef"

/*
TestLoad_Defaults verifies env parsing and defaults for a memory-backed setup.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", validSecret)
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("CLIENT_ORIGINS", "https://a.test, ,https://b.test")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 720*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.True(t, cfg.IsDevelopment())
	assert.True(t, cfg.UsesMemoryStorage())
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.AllowedOrigins())
}

/*
TestLoad_MissingSecret ensures the signing secret is mandatory.
*/
func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORAGE_DRIVER", "memory")

	_, err := config.Load()
	assert.Error(t, err)
}

/*
TestConfig_Validate covers the cross-field rules.
*/
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{"memory_ok", config.Config{StorageDriver: "memory", JWTSecret: validSecret, TokenTTL: time.Hour}, false},
		{"postgres_ok", config.Config{StorageDriver: "postgres", DatabaseURL: "postgres://localhost/fitlog", JWTSecret: validSecret, TokenTTL: time.Hour}, false},
		{"postgres_without_dsn", config.Config{StorageDriver: "postgres", JWTSecret: validSecret, TokenTTL: time.Hour}, true},
		{"unknown_driver", config.Config{StorageDriver: "mongo", JWTSecret: validSecret, TokenTTL: time.Hour}, true},
		{"short_secret", config.Config{StorageDriver: "memory", JWTSecret: "short", TokenTTL: time.Hour}, true},
		{"zero_ttl", config.Config{StorageDriver: "memory", JWTSecret: validSecret}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
