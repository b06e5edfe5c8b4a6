package internal

import (
	"os"
	"strings"
	"time"
)

// Env reads a variable, falling back to def when unset or blank.
func Env(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

// EnvDuration parses a variable as a time.Duration ("5s", "1m30s").
// Unset or malformed values yield def.
func EnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
