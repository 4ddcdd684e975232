package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DatabaseDSN string
	RedisAddr   string

	KafkaBroker   string
	KafkaUsername string
	KafkaPassword string
	MailTopic     string
	RequestTopic  string

	AuthSecret    string
	VerifyBaseURL string
	ResetBaseURL  string

	SessionIdleTimeout time.Duration
	SessionMaxAge      time.Duration

	CloudinaryURL string

	AllowedOrigins string

	// mailer worker
	KafkaGroupID string
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	MailFromName string
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: env file not found or could not be loaded:", err)
		}
	}

	return Config{
		ServerPort:  getEnv("SERVER_PORT", ":3000"),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),

		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		KafkaUsername: os.Getenv("KAFKA_USERNAME"),
		KafkaPassword: os.Getenv("KAFKA_PASSWORD"),
		MailTopic:     getEnv("KAFKA_MAIL_TOPIC", "donor.mail"),
		RequestTopic:  getEnv("KAFKA_REQUEST_TOPIC", "donor.requests"),

		AuthSecret:    os.Getenv("AUTH_SECRET"),
		VerifyBaseURL: getEnv("VERIFY_BASE_URL", "http://localhost:3000/api/auth/verify-email"),
		ResetBaseURL:  getEnv("RESET_BASE_URL", "http://localhost:3000/reset-password"),

		SessionIdleTimeout: getEnvSeconds("SESSION_IDLE_TIMEOUT_SECONDS", 1800),
		SessionMaxAge:      getEnvSeconds("SESSION_MAX_AGE_SECONDS", 86400),

		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),

		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:5173"),

		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "donor-workers"),
		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     os.Getenv("MAIL_FROM"),
		MailFromName: getEnv("MAIL_FROM_NAME", "LifeDrop"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvSeconds(key string, fallback int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
		log.Printf("invalid %s=%q, using default", key, v)
	}
	return time.Duration(fallback) * time.Second
}
