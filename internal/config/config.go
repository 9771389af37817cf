package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Gemini   GeminiConfig
	Upload   UploadConfig
	Analysis AnalysisConfig
	Report   ReportConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	AllowOrigins string
}

type GeminiConfig struct {
	APIKey          string
	Model           string
	Temperature     float32
	MaxOutputTokens int32
}

type UploadConfig struct {
	MaxFileSize int64
	ContentType string
}

type AnalysisConfig struct {
	MaxResumeChars  int
	MaxJobDescChars int
	Retry           RetryConfig
}

// RetryConfig bounds the inference call: MaxAttempts total tries with
// exponential backoff starting at InitialDelay, each attempt capped by
// PerCallTimeout, the whole sequence capped by TotalTimeout.
type RetryConfig struct {
	MaxAttempts    int
	InitialDelay   time.Duration
	PerCallTimeout time.Duration
	TotalTimeout   time.Duration
}

type ReportConfig struct {
	ChromePath string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "3000"),
			Env:          getEnv("ENV", "development"),
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
		Gemini: GeminiConfig{
			APIKey:          getEnv("GEMINI_API_KEY", ""),
			Model:           getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			Temperature:     getEnvAsFloat32("GEMINI_TEMPERATURE", 0.7),
			MaxOutputTokens: int32(getEnvAsInt("GEMINI_MAX_OUTPUT_TOKENS", 2048)),
		},
		Upload: UploadConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
			ContentType: getEnv("UPLOAD_CONTENT_TYPE", "application/pdf"),
		},
		Analysis: AnalysisConfig{
			MaxResumeChars:  getEnvAsInt("MAX_RESUME_CHARS", 15000),
			MaxJobDescChars: getEnvAsInt("MAX_JOB_DESC_CHARS", 5000),
			Retry: RetryConfig{
				MaxAttempts:    getEnvAsInt("RETRY_MAX_ATTEMPTS", 3),
				InitialDelay:   getEnvAsDuration("RETRY_INITIAL_DELAY", "500ms"),
				PerCallTimeout: getEnvAsDuration("INFERENCE_TIMEOUT", "30s"),
				TotalTimeout:   getEnvAsDuration("INFERENCE_TOTAL_TIMEOUT", "90s"),
			},
		},
		Report: ReportConfig{
			ChromePath: getEnv("CHROME_EXEC_PATH", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
