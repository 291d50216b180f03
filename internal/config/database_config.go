package config

import (
	"strings"

	"github.com/spf13/viper"
)

const (
	dbDriverVar = "DB_DRIVER"
	dbDSNVar    = "DB_DSN"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

type DatabaseConfig interface {
	GetDBDriver() string
	GetDBDSN() string
}

type Database struct {
	v *viper.Viper
}

var _ DatabaseConfig = Database{}

func (d Database) GetDBDriver() string {
	return strings.ToLower(strings.TrimSpace(d.v.GetString(dbDriverVar)))
}

func (d Database) GetDBDSN() string {
	return d.v.GetString(dbDSNVar)
}
