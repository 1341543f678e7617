package utils

import (
	"os"
	"strings"
)

// Environment returns the agent's ENVIRONMENT, "development" when unset.
func Environment() string {
	env := strings.ToLower(strings.TrimSpace(os.Getenv("ENVIRONMENT")))
	if env == "" {
		return "development"
	}
	return env
}

// IsDev reports whether the agent runs in development, where a local .env
// file is loaded before reading the environment.
func IsDev() bool {
	switch Environment() {
	case "development", "dev", "local":
		return true
	}
	return false
}
