package internal

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// MustEnv returns the value of a required environment variable and panics
// when it is blank, so a misconfigured function fails at cold start.
func MustEnv(name string) string {
	v := os.Getenv(name)
	if IsBlank(v) {
		panic(fmt.Sprintf("%s is empty", name))
	}
	return v
}

func EnvOr(name, fallback string) string {
	v := os.Getenv(name)
	if IsBlank(v) {
		return fallback
	}
	return v
}

// DurationEnvOr parses values like "300s" or "5m". Unparseable values fall
// back to the default.
func DurationEnvOr(name string, fallback time.Duration) time.Duration {
	v := os.Getenv(name)
	if IsBlank(v) {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func IntEnvOr(name string, fallback int) int {
	v := os.Getenv(name)
	if IsBlank(v) {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
