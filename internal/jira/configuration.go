package jira

import (
	"strings"
	"time"
)

const (
	configurationBaseURLKeyConstant        = "base_url"
	configurationUsernameKeyConstant       = "username"
	configurationPasswordKeyConstant       = "password"
	configurationRequestTimeoutKeyConstant = "request_timeout"
	configurationKeySeparatorConstant      = "."
)

// Configuration describes the tracker connection.
// Username and Password are optional; when Username is empty the user is prompted.
type Configuration struct {
	BaseURL        string        `mapstructure:"base_url"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// DefaultConfiguration returns the baseline tracker configuration.
func DefaultConfiguration() Configuration {
	return Configuration{
		BaseURL:        DefaultBaseURL,
		RequestTimeout: DefaultRequestTimeout,
	}
}

// DefaultConfigurationValues exposes the defaults as viper keys under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultConfiguration()
	trimmedPrefix := strings.TrimSpace(prefix)
	qualify := func(key string) string {
		if len(trimmedPrefix) == 0 {
			return key
		}
		return trimmedPrefix + configurationKeySeparatorConstant + key
	}

	return map[string]any{
		qualify(configurationBaseURLKeyConstant):        defaults.BaseURL,
		qualify(configurationUsernameKeyConstant):       defaults.Username,
		qualify(configurationPasswordKeyConstant):       defaults.Password,
		qualify(configurationRequestTimeoutKeyConstant): defaults.RequestTimeout.String(),
	}
}

// Sanitize trims values and restores defaults for empty ones.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration
	sanitized.BaseURL = strings.TrimSpace(configuration.BaseURL)
	if len(sanitized.BaseURL) == 0 {
		sanitized.BaseURL = DefaultBaseURL
	}
	sanitized.Username = strings.TrimSpace(configuration.Username)
	if sanitized.RequestTimeout <= 0 {
		sanitized.RequestTimeout = DefaultRequestTimeout
	}
	return sanitized
}

// ConfiguredCredentials returns the credentials from configuration and whether a username was supplied.
func (configuration Configuration) ConfiguredCredentials() (Credentials, bool) {
	if len(configuration.Username) == 0 {
		return Credentials{}, false
	}
	return Credentials{Username: configuration.Username, Password: configuration.Password}, true
}
