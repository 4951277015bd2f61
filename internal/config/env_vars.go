package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	portEnvVar     = "PORT"
	appNameVar     = "APP_NAME"
	folderEnvVar   = "FOLDER"
	logLevelEnvVar = "LOG_LEVEL"
	dotEnvFile     = ".env"
)

var dotEnvOnce sync.Once

// loadDotEnv reads .env into the process environment once. Values already
// present in the environment win.
func loadDotEnv() {
	dotEnvOnce.Do(func() {
		if err := godotenv.Load(dotEnvFile); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Msg("could not load .env file")
		}
	})
}

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Wave Console")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, "./data")
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelEnvVar, "info")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntEnv(envVar string, defaultValue int) int {
	v := os.Getenv(envVar)
	if v == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("var", envVar).Str("value", v).Int("default", defaultValue).Msg("invalid integer, using default")
		return defaultValue
	}
	return i
}

func getBoolEnv(envVar string, defaultValue bool) bool {
	v := os.Getenv(envVar)
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Str("var", envVar).Str("value", v).Bool("default", defaultValue).Msg("invalid boolean, using default")
		return defaultValue
	}
	return b
}

func parseDurationOrDefault(envVar string, def time.Duration) time.Duration {
	if v := os.Getenv(envVar); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Warn().Str("var", envVar).Str("value", v).Dur("default", def).Msg("invalid duration, using default")
	}
	return def
}
