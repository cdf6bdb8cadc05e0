package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:3000", cfg.Server.Addr)
	require.Equal(t, "data/campus.db", cfg.Database.Path)
	require.Equal(t, "uploads", cfg.Upload.Dir)
	require.Equal(t, 48, cfg.Auth.TokenTTLHours)
	require.Empty(t, cfg.Auth.JWTSecret)
	require.Empty(t, cfg.Storage.Bucket)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CAMPUS_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("CAMPUS_AUTH_JWTSECRET", "s3cret")
	t.Setenv("CAMPUS_AUTH_TOKENTTLHOURS", "12")
	t.Setenv("CAMPUS_STORAGE_BUCKET", "campus-bucket")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	require.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	require.Equal(t, 12, cfg.Auth.TokenTTLHours)
	require.Equal(t, "campus-bucket", cfg.Storage.Bucket)
}
