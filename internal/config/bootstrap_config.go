package config

import "github.com/spf13/viper"

const (
	adminUsernameVar = "ADMIN_USERNAME"
	adminPasswordVar = "ADMIN_PASSWORD"
	seedContactsVar  = "SEED_SAMPLE_CONTACTS"
)

type BootstrapConfig interface {
	GetSystemAdminUser() string
	GetSystemAdminPassword() string
	GetSeedSampleContacts() bool
}

type Bootstrap struct {
	v *viper.Viper
}

var _ BootstrapConfig = Bootstrap{}

func (b Bootstrap) GetSystemAdminUser() string {
	return b.v.GetString(adminUsernameVar)
}

func (b Bootstrap) GetSystemAdminPassword() string {
	return b.v.GetString(adminPasswordVar)
}

func (b Bootstrap) GetSeedSampleContacts() bool {
	return b.v.GetBool(seedContactsVar)
}
