package config

import (
	"os"
	"strings"
)

// Env holds process configuration for both binaries. Flags may override
// individual fields on top of the environment.
type Env struct {
	// Client side.
	APIBaseURL  string
	SessionFile string
	ExportDir   string

	// Server side.
	AppAddr   string
	GinMode   string
	DBDSN     string
	JWTSecret string
}

func LoadEnv() Env {
	apiBaseURL := getenv("TRAINBOOK_API_URL")
	if apiBaseURL == "" {
		apiBaseURL = "http://127.0.0.1:8000"
	}

	exportDir := getenv("TRAINBOOK_EXPORT_DIR")
	if exportDir == "" {
		exportDir = "."
	}

	appAddr := getenv("APP_ADDR")
	if appAddr == "" {
		appAddr = ":8000"
	}

	secret := getenv("TRAINBOOK_JWT_SECRET")
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	return Env{
		APIBaseURL:  apiBaseURL,
		SessionFile: getenv("TRAINBOOK_SESSION_FILE"),
		ExportDir:   exportDir,
		AppAddr:     appAddr,
		GinMode:     getenv("GIN_MODE"),
		DBDSN:       getenv("TRAINBOOK_DB_DSN"),
		JWTSecret:   secret,
	}
}

func getenv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
