package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs from the environment.
type Config struct {
	Port            string
	DBPath          string
	ModelPath       string
	LedgerPath      string
	JWTSecret       string
	AdminPassword   string
	OfficerPassword string
}

// FromEnv loads configuration from the environment, reading a .env file
// first if one is present. Defaults keep a fresh checkout runnable.
func FromEnv() *Config {
	// Best effort; a missing .env file is normal outside local dev.
	_ = godotenv.Load()

	return &Config{
		Port:            getenv("PORT", "8080"),
		DBPath:          getenv("DB_PATH", "loan_risk.db"),
		ModelPath:       getenv("MODEL_PATH", "risk_model.json"),
		LedgerPath:      getenv("LEDGER_PATH", "testdata/loan_ledger.csv"),
		JWTSecret:       getenv("JWT_SECRET", "loan-risk-secret-key-123"),
		AdminPassword:   getenv("ADMIN_PASSWORD", "admin123"),
		OfficerPassword: getenv("OFFICER_PASSWORD", "officer123"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
