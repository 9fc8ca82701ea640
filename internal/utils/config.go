// Package utils contains configuration and state helpers.
package utils

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// RequireConfigString returns the value of a mandatory string config key.
func RequireConfigString(key string) (value string, err error) {
	value = viper.GetString(key)
	if value == "" {
		err = fmt.Errorf("config key '%s' could not be found", key)
	}
	return
}

// ConfigDuration returns the value of a duration config key, or fallback if
// the key is unset or unparsable.
func ConfigDuration(key string, fallback time.Duration) time.Duration {
	if !viper.IsSet(key) {
		return fallback
	}
	d, err := time.ParseDuration(viper.GetString(key))
	if err != nil {
		return fallback
	}
	return d
}
