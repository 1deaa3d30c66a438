package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Fetch modes for listing pages.
const (
	FetchModeHTTP    = "http"
	FetchModeBrowser = "browser"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	FetchMode      string
	FetchTimeout   time.Duration
	UserAgent      string
	Accept         string
	AcceptLanguage string
	ChromeBin      string

	CatalogPath string

	HTTPAddr           string
	CompareConcurrency int

	LogLevel  string
	LogPretty bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		FetchMode:    getEnv("FETCH_MODE", FetchModeHTTP),
		FetchTimeout: getEnvDuration("FETCH_TIMEOUT", 10*time.Second),
		UserAgent: getEnv("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		Accept:         getEnv("ACCEPT", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"),
		AcceptLanguage: getEnv("ACCEPT_LANGUAGE", "nb-NO,nb;q=0.9,no-NO;q=0.8,no;q=0.6,en-US;q=0.5,en;q=0.4"),
		ChromeBin:      getEnv("CHROME_BIN", ""),

		CatalogPath: getEnv("CATALOG_PATH", ""),

		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		CompareConcurrency: getEnvInt("COMPARE_CONCURRENCY", 4),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvBool("LOG_PRETTY", true),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("10s") or a plain number of seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	if d, err := time.ParseDuration(val); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(val); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}
