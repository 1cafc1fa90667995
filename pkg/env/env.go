// Package env reads process environment variables that sit outside the
// envconfig-managed Config, such as bootstrap-time logger switches.
package env

import "os"

// Get returns the variable's value, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
