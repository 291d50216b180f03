package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/staff-directory/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	c := config.NewFromViper(viper.New())

	require.Equal(t, ":3000", c.GetPort())
	require.Equal(t, "DEV", c.GetEnv())
	require.Equal(t, 24*time.Hour, c.GetSessionTTL())
	require.False(t, c.GetSessionCookieSecure())
	require.Equal(t, config.DriverSQLite, c.GetDBDriver())
	require.Equal(t, "contacts.db", c.GetDBDSN())
	require.Equal(t, "admin", c.GetSystemAdminUser())
	require.Equal(t, "admin123", c.GetSystemAdminPassword())
	require.True(t, c.GetSeedSampleContacts())
	require.True(t, c.GetAllowedOrigins().IsAllowedOrigin("*"))
}

func TestConfig_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("PORT", "8081")
	v.Set("ENV", "prod")
	v.Set("SESSION_TTL", "90m")
	v.Set("SESSION_COOKIE_SECURE", true)
	v.Set("DB_DRIVER", "Postgres")
	v.Set("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	c := config.NewFromViper(v)

	require.Equal(t, ":8081", c.GetPort())
	require.Equal(t, "PROD", c.GetEnv())
	require.Equal(t, 90*time.Minute, c.GetSessionTTL())
	require.True(t, c.GetSessionCookieSecure())
	require.Equal(t, config.DriverPostgres, c.GetDBDriver())

	origins := c.GetAllowedOrigins()
	require.True(t, origins.IsAllowedOrigin("https://a.example.com"))
	require.True(t, origins.IsAllowedOrigin("https://b.example.com"))
	require.False(t, origins.IsAllowedOrigin("*"))
}
