package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	MongoURI     string
	DatabaseName string
	Origin       string
	Timeout      time.Duration

	JWTSecret string
	TokenTTL  time.Duration

	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	DeveloperEmail string

	UploadDir     string
	PublicBaseURL string

	RedisAddr       string
	LoginRateLimit  int
	LoginRateWindow time.Duration
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		if os.IsNotExist(err) {
			// .env file not found, proceed with environment values
		} else {
			panic("Error loading .env file")
		}
	}
	return Config{
		Port:         getEnv("PORT", "8000"),
		MongoURI:     getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DatabaseName: getEnv("DATABASE_NAME", "campushire"),
		Origin:       getEnv("ORIGIN", "http://localhost:3000"),
		Timeout:      10 * time.Second,

		JWTSecret: getEnv("JWT_SECRET", "dev-only-secret"),
		TokenTTL:  24 * time.Hour,

		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getEnvInt("SMTP_PORT", 587),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		DeveloperEmail: getEnv("DEVELOPER_EMAIL", ""),

		UploadDir:     getEnv("UPLOAD_DIR", "uploads/resumes"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8000"),

		RedisAddr:       getEnv("REDIS_ADDR", ""),
		LoginRateLimit:  getEnvInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow: time.Minute,
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
