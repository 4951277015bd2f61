package config

import "time"

type Config interface {
	EnvConfig
	APIConfig
	TokenStoreConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFolder() string
	GetLogLevel() string
	GetEnv() string
}

type APIConfig interface {
	GetAPIBaseURL() string
	GetAPITimeout() time.Duration
	GetDefaultPageSize() int
	GetPickerPageSize() int
}

type TokenStoreConfig interface {
	GetTokenStore() string
	GetTokenStorePath() string
	GetTokenStorePassphrase() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	GetRedisPrefix() string
	GetTokenRotation() bool
}

type mainConfig struct {
	EnvVars
	API
	TokenStore
}

func New() Config {
	loadDotEnv()
	return mainConfig{}
}
