package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	sessionSecretVar       = "SESSION_SECRET"
	sessionTTLVar          = "SESSION_TTL"
	sessionCookieSecureVar = "SESSION_COOKIE_SECURE"

	defaultSessionTTL = 24 * time.Hour
)

type SecurityConfig interface {
	GetSessionSecret() string
	GetSessionTTL() time.Duration
	GetSessionCookieSecure() bool
}

type Security struct {
	v *viper.Viper
}

var _ SecurityConfig = Security{}

// GetSessionSecret returns the cookie signing secret; empty means "generate one per process"
func (s Security) GetSessionSecret() string {
	return s.v.GetString(sessionSecretVar)
}

func (s Security) GetSessionTTL() time.Duration {
	ttl := s.v.GetDuration(sessionTTLVar)
	if ttl <= 0 {
		return defaultSessionTTL
	}
	return ttl
}

// GetSessionCookieSecure is off by default, TLS termination is a deployment concern
func (s Security) GetSessionCookieSecure() bool {
	return s.v.GetBool(sessionCookieSecureVar)
}
