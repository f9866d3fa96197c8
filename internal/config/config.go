package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type APIConfig struct {
	Addr        string
	DataDir     string
	DatabaseURL string
	BalanceFile string
}

type CLIConfig struct {
	APIBaseURL string
}

func LoadAPIFromEnv() APIConfig {
	_ = godotenv.Load()

	addr := strings.TrimSpace(os.Getenv("PORT"))
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("IMMO_API_ADDR", ":8080")
	}

	return APIConfig{
		Addr:        addr,
		DataDir:     envDefault("IMMO_DATA_DIR", "data"),
		DatabaseURL: strings.TrimSpace(os.Getenv("IMMO_DATABASE_URL")),
		BalanceFile: strings.TrimSpace(os.Getenv("IMMO_BALANCE_FILE")),
	}
}

func LoadCLIFromEnv() CLIConfig {
	_ = godotenv.Load()
	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("IMMO_API_BASE_URL", "http://localhost:8080"), "/"),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
