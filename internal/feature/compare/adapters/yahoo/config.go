// Package yahoo provides a client for the Yahoo Finance chart API.
package yahoo

import (
	"os"
	"time"
)

// Config holds configuration for the Yahoo Finance API client.
type Config struct {
	BaseURL string        // Base URL for the API (e.g., "https://query1.finance.yahoo.com")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Yahoo Finance configuration from environment variables.
// The chart endpoint is public, so no API key is required.
func LoadConfig() Config {
	base := os.Getenv("YAHOO_BASE_URL")
	if base == "" {
		base = "https://query1.finance.yahoo.com"
	}
	return Config{
		BaseURL: base,
		Timeout: 10 * time.Second,
	}
}
