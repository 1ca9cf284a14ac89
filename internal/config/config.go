package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// RedisConfig holds connection settings for the session store backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MinIOConfig holds object storage settings for transcript archives.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// GeminiConfig holds settings for the LLM backend.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// InterviewConfig tunes the session engine.
type InterviewConfig struct {
	// SessionTTL is the idle expiry for live sessions; every persisted update
	// resets it.
	SessionTTL time.Duration
	// TokenBudget caps the estimated token size of LLM message lists built from
	// session history.
	TokenBudget int
	// Per-phase question quotas.
	IntroQuestions      int
	TechnicalQuestions  int
	BehavioralQuestions int
	CodingQuestions     int
	WrapUpQuestions     int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost   string
	Port      string
	Database  DatabaseConfig
	Redis     RedisConfig
	MinIO     MinIOConfig
	Gemini    GeminiConfig
	Interview InterviewConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Interview: InterviewConfig{
			SessionTTL:          time.Duration(getEnvInt("SESSION_TTL_SEC", 1800)) * time.Second,
			TokenBudget:         getEnvInt("CONVERSATION_TOKEN_BUDGET", 8000),
			IntroQuestions:      getEnvInt("INTERVIEW_INTRO_QUESTIONS", 1),
			TechnicalQuestions:  getEnvInt("INTERVIEW_TECHNICAL_QUESTIONS", 4),
			BehavioralQuestions: getEnvInt("INTERVIEW_BEHAVIORAL_QUESTIONS", 3),
			CodingQuestions:     getEnvInt("INTERVIEW_CODING_QUESTIONS", 2),
			WrapUpQuestions:     getEnvInt("INTERVIEW_WRAPUP_QUESTIONS", 1),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
