package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Env        string
	Port       string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	OpenAIBaseURL  string
	OpenAIAPIKey   string
	OpenAIModel    string
	EmbeddingModel string
	OpenAITimeout  int // seconds

	DefaultResultLimit    int
	DefaultRetrievalLimit int

	RecommendRatePerSec int
}

func Load() *Config {
	return &Config{
		Env:        getEnv("ENV", "development"),
		Port:       getEnv("PORT", "9020"),
		DBHost:     getEnv("DB_HOST", "catalog-db"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "catalog_user"),
		DBPassword: getSecret("DB_PASSWORD", "DB_PASSWORD_FILE", "catalog_password"),
		DBName:     getEnv("DB_NAME", "catalog_db"),

		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIAPIKey:   getSecret("OPENAI_API_KEY", "OPENAI_API_KEY_FILE", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL_NAME", "gpt-4o-mini"),
		EmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL_NAME", "text-embedding-ada-002"),
		OpenAITimeout:  getEnvInt("OPENAI_TIMEOUT_SECONDS", 120),

		DefaultResultLimit:    getEnvInt("RECOMMEND_DEFAULT_LIMIT", 5),
		DefaultRetrievalLimit: getEnvInt("RECOMMEND_DEFAULT_RETRIEVAL_LIMIT", 10),

		RecommendRatePerSec: getEnvInt("RECOMMEND_RATE_PER_SEC", 10),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getSecret resolves a value from the environment or, failing that, from
// a file path named by fileEnvKey (docker/k8s secret mounts).
func getSecret(envKey, fileEnvKey, fallback string) string {
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}

	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		content, err := os.ReadFile(filePath)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
