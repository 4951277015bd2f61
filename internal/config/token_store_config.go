package config

import "path/filepath"

const (
	tokenStoreVar           = "TOKEN_STORE"
	tokenStorePassphraseVar = "TOKEN_STORE_PASSPHRASE"
	tokenRotationVar        = "TOKEN_ROTATION"

	TokenStoreFile   = "file"
	TokenStoreMemory = "memory"
	TokenStoreRedis  = "redis"
	TokenStoreNone   = "none"
)

type TokenStore struct{}

var _ TokenStoreConfig = TokenStore{}

func (TokenStore) GetTokenStore() string {
	return GetEnv(tokenStoreVar, TokenStoreFile)
}

func (TokenStore) GetTokenStorePath() string {
	return GetEnv("TOKEN_STORE_PATH", filepath.Join(EnvVars{}.GetDataFolder(), "tokens.json"))
}

// GetTokenStorePassphrase enables sealing of the token file when not empty.
func (TokenStore) GetTokenStorePassphrase() string {
	return GetEnv(tokenStorePassphraseVar, "")
}

func (TokenStore) GetRedisAddr() string {
	return GetEnv("TOKEN_STORE_REDIS_ADDR", "localhost:6379")
}

func (TokenStore) GetRedisPassword() string {
	return GetEnv("TOKEN_STORE_REDIS_PASSWORD", "")
}

func (TokenStore) GetRedisDB() int {
	return getIntEnv("TOKEN_STORE_REDIS_DB", 0)
}

func (TokenStore) GetRedisPrefix() string {
	return GetEnv("TOKEN_STORE_REDIS_PREFIX", "")
}

// GetTokenRotation reports whether a refresh token returned by the refresh
// endpoint replaces the stored one. Off by default.
func (TokenStore) GetTokenRotation() bool {
	return getBoolEnv(tokenRotationVar, false)
}
