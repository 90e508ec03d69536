// Package config resolves named configuration values for the Factiva client
// packages. Values come from an explicit Provider rather than ambient process
// state, so tests and embedders can substitute their own store.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Well-known configuration keys consumed by this library.
const (
	KeyUserKey  = "FACTIVA_USERKEY"
	KeyAPIHost  = "FACTIVA_API_HOST"
	KeyLogLevel = "FACTIVA_LOG_LEVEL"

	KeyProxyUse          = "PROXY_USE"
	KeyProxyProtocol     = "PROXY_PROTOCOL"
	KeyProxyHost         = "PROXY_HOST"
	KeyProxyPort         = "PROXY_PORT"
	KeyProxyAuthUsername = "PROXY_AUTH_USERNAME"
	KeyProxyAuthPassword = "PROXY_AUTH_PASSWORD"
)

// Provider resolves a configuration key to a value. The boolean reports
// whether the key is present with a non-empty value.
type Provider interface {
	Get(key string) (string, bool)
}

// EnvProvider resolves keys from process environment variables.
type EnvProvider struct{}

// NewEnvProvider loads .env files and returns an environment-backed provider.
// Files are loaded in precedence order: .env, then .env.<environment>, then
// .env.local; all are optional. The environment name is taken from the
// ENVIRONMENT or ENV variable.
func NewEnvProvider() (*EnvProvider, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = os.Getenv("ENV")
	}
	if env != "" {
		envFile := fmt.Sprintf(".env.%s", env)
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Overload(envFile); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
			}
		}
	}

	if _, err := os.Stat(".env.local"); err == nil {
		if err := godotenv.Overload(".env.local"); err != nil {
			return nil, fmt.Errorf("failed to load .env.local: %w", err)
		}
	}

	return &EnvProvider{}, nil
}

// Get implements Provider.
func (*EnvProvider) Get(key string) (string, bool) {
	value := os.Getenv(key)
	return value, value != ""
}

// MapProvider resolves keys from a fixed map. Intended for tests and for
// embedders that manage configuration themselves.
type MapProvider map[string]string

// Get implements Provider.
func (m MapProvider) Get(key string) (string, bool) {
	value, ok := m[key]
	return value, ok && value != ""
}

// LoadVariable returns the value for key or a *MissingConfigurationError when
// the key is absent or empty. The provider is consulted fresh on every call.
func LoadVariable(p Provider, key string) (string, error) {
	value, ok := p.Get(key)
	if !ok {
		return "", &MissingConfigurationError{Key: key}
	}
	return value, nil
}

// LoadVariableDefault returns the value for key, falling back to defaultValue
// when the key is absent or empty. It never fails.
func LoadVariableDefault(p Provider, key, defaultValue string) string {
	value, ok := p.Get(key)
	if !ok {
		return defaultValue
	}
	return value
}

// GetInt returns the value for key as an integer, or defaultValue when the key
// is absent or does not parse.
func GetInt(p Provider, key string, defaultValue int) int {
	value, ok := p.Get(key)
	if !ok {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intVal
}

// GetBool returns the value for key as a boolean, or defaultValue when the key
// is absent or does not parse. Accepts the strconv.ParseBool forms.
func GetBool(p Provider, key string, defaultValue bool) bool {
	value, ok := p.Get(key)
	if !ok {
		return defaultValue
	}
	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolVal
}

// GetDuration returns the value for key as a time.Duration, or defaultValue
// when the key is absent or does not parse.
func GetDuration(p Provider, key string, defaultValue time.Duration) time.Duration {
	value, ok := p.Get(key)
	if !ok {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
