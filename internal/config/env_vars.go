package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	portEnvVar  = "BACKEND_PORT"
	appNameVar  = "APP_NAME"
	debugEnvVar = "DEBUG_MODE"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "5000")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Auth Gateway")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

// GetDebugMode reports whether verbose debug logging is enabled.
func (EnvVars) GetDebugMode() bool {
	switch strings.ToLower(os.Getenv(debugEnvVar)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
