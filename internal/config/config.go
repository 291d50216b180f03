package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config interface {
	EnvConfig
	CorsConfig
	SecurityConfig
	DatabaseConfig
	BootstrapConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Security
	Database
	Bootstrap
}

// New reads configuration from the process environment. Call godotenv.Load
// beforehand to pick up a .env file.
func New() Config {
	return NewFromViper(newViper())
}

// NewFromViper builds a Config over an existing viper instance (tests set values directly).
func NewFromViper(v *viper.Viper) Config {
	setDefaults(v)
	return mainConfig{
		EnvVars:   EnvVars{v: v},
		Cors:      Cors{v: v},
		Security:  Security{v: v},
		Database:  Database{v: v},
		Bootstrap: Bootstrap{v: v},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(portEnvVar, "3000")
	v.SetDefault(appNameVar, "Staff Directory")
	v.SetDefault(envEnvVar, "DEV")

	v.SetDefault(allowedOriginsVar, "*")

	v.SetDefault(sessionTTLVar, "24h")
	v.SetDefault(sessionCookieSecureVar, false)

	v.SetDefault(dbDriverVar, DriverSQLite)
	v.SetDefault(dbDSNVar, "contacts.db")

	v.SetDefault(adminUsernameVar, "admin")
	v.SetDefault(adminPasswordVar, "admin123")
	v.SetDefault(seedContactsVar, true)
}
