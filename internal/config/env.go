package config

import (
	"os"
	"strconv"
	"strings"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	// Geo provider (distance matrix + geocoding).
	GeoAPIKey  string
	GeoBaseURL string

	// Reservation policy.
	SlotMinutes int
	Timezone    string

	JWTSecret string
}

func LoadEnv() Env {
	return Env{
		AppAddr:     getenv("APP_ADDR", ":8080"),
		GinMode:     getenv("GIN_MODE", ""),
		DBUser:      getenv("DB_USER", "root"),
		DBPass:      getenv("DB_PASS", ""),
		DBHost:      getenv("DB_HOST", "127.0.0.1:3306"),
		DBName:      getenv("DB_NAME", "rehabus"),
		GeoAPIKey:   getenv("GEO_API_KEY", ""),
		GeoBaseURL:  getenv("GEO_BASE_URL", "https://maps.googleapis.com"),
		SlotMinutes: getenvInt("SLOT_MINUTES", 120),
		Timezone:    getenv("TIMEZONE", "Asia/Taipei"),
		JWTSecret:   getenv("JWT_SECRET", "super-secret-key-change-me"),
	}
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
