package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP
	Port string

	// Database
	DatabaseURL string

	// Redis (candidate cache + realtime change feed)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// LLM Configuration
	LLMProvider string // "openai", "groq", or "none"
	LLMModel    string // "gpt-4o-mini", "gpt-4o", "llama-3.3-70b-versatile"
	LLMAPIKey   string // OpenAI or Groq API key

	// EmailJS (interview invites)
	EmailServiceID  string
	EmailTemplateID string
	EmailUserID     string
	CompanyName     string

	// Uploads
	UploadsDir string

	// Dashboard auth
	DashboardToken string

	// Logging
	LogLevel string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg := &Config{
		// Defaults
		Port:        "8080",
		RedisAddr:   "localhost:6379",
		RedisDB:     0,
		LLMProvider: "openai",
		LLMModel:    "gpt-4o-mini",
		CompanyName: "TalentTrack",
		UploadsDir:  "./uploads",
		LogLevel:    "info",
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.RedisAddr = addr
	}
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		db, err := strconv.Atoi(redisDB)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		cfg.LLMProvider = provider
	}
	if model := os.Getenv("LLM_MODEL"); model != "" {
		cfg.LLMModel = model
	}
	switch cfg.LLMProvider {
	case "openai":
		cfg.LLMAPIKey = os.Getenv("OPENAI_API_KEY")
	case "groq":
		cfg.LLMAPIKey = os.Getenv("GROQ_API_KEY")
	}

	cfg.EmailServiceID = os.Getenv("EMAILJS_SERVICE_ID")
	cfg.EmailTemplateID = os.Getenv("EMAILJS_TEMPLATE_ID")
	cfg.EmailUserID = os.Getenv("EMAILJS_USER_ID")
	if name := os.Getenv("COMPANY_NAME"); name != "" {
		cfg.CompanyName = name
	}

	if dir := os.Getenv("UPLOADS_DIR"); dir != "" {
		cfg.UploadsDir = dir
	}

	cfg.DashboardToken = os.Getenv("DASHBOARD_TOKEN")

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("database URL is empty")
	}

	if c.Port == "" {
		return fmt.Errorf("port is empty")
	}

	switch c.LLMProvider {
	case "openai", "groq", "none":
	default:
		return fmt.Errorf("invalid LLM provider: %s", c.LLMProvider)
	}

	if c.LLMProvider != "none" && c.LLMAPIKey == "" {
		return fmt.Errorf("%s provider requires an API key", c.LLMProvider)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}

// EmailConfigured reports whether the invite email collaborator can be used.
func (c *Config) EmailConfigured() bool {
	return c.EmailServiceID != "" && c.EmailTemplateID != "" && c.EmailUserID != ""
}
