package config

import "fmt"

// MissingConfigurationError reports a required configuration key that is
// absent or empty.
type MissingConfigurationError struct {
	Key string
}

func (e *MissingConfigurationError) Error() string {
	return fmt.Sprintf("missing configuration value for key %s", e.Key)
}
