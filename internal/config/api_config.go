package config

import (
	"strings"
	"time"
)

const (
	apiBaseURLVar = "API_BASE_URL"
	apiTimeoutVar = "API_TIMEOUT"

	defaultAPITimeout = 15 * time.Second
)

type API struct{}

var _ APIConfig = API{}

// GetAPIBaseURL returns the REST backend root without a trailing slash.
func (API) GetAPIBaseURL() string {
	return strings.TrimRight(GetEnv(apiBaseURLVar, "http://localhost:8000"), "/")
}

// GetAPITimeout bounds every request made to the backend. Zero disables it.
func (API) GetAPITimeout() time.Duration {
	return parseDurationOrDefault(apiTimeoutVar, defaultAPITimeout)
}

func (API) GetDefaultPageSize() int {
	return getIntEnv("PAGE_SIZE", 20)
}

// GetPickerPageSize is the number of customers/items offered in the estimate form pickers.
func (API) GetPickerPageSize() int {
	return 100
}
