package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          int
	DatabaseURL   string
	RegistryURL   string
	RegistryToken string
	WilayahURL    string
	VerifBaseURL  string
	TemplateDir   string
	JWTSecret     string
	CacheSize     int
	LogLevel      string
}

func LoadConfig() Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	cacheSize, _ := strconv.Atoi(getEnv("CACHE_SIZE", "1000"))

	return Config{
		Port:          port,
		DatabaseURL:   getEnv("DATABASE_URL", "labelgen.db"),
		RegistryURL:   getEnv("REGISTRY_URL", "https://api.silverium.id"),
		RegistryToken: getEnv("REGISTRY_TOKEN", ""),
		WilayahURL:    getEnv("WILAYAH_URL", "https://wilayah.id/api"),
		VerifBaseURL:  getEnv("VERIF_BASE_URL", "https://silverium.id"),
		TemplateDir:   getEnv("TEMPLATE_DIR", "templates"),
		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		CacheSize:     cacheSize,
		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
