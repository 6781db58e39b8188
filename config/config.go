package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// SiteInfo is the public identity of the site, exposed verbatim by /api/config.
type SiteInfo struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	WhatsApp        string `json:"whatsapp"`
	WhatsAppMessage string `json:"whatsappMessage"`
}

// SiteLinks holds the embedded-app URLs for the company pages.
type SiteLinks struct {
	CoffeeApp    string `json:"coffeeApp"`
	MachinesApp  string `json:"machinesApp"`
	MaterialsApp string `json:"materialsApp"`
}

type Config struct {
	Port        string
	BaseURL     string
	FrontendURL string
	// SMTP Configuration
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string // Verified sender address (may differ from SMTP login)
	// Redis Configuration (optional; limiter falls back to in-memory)
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	ContactRateLimit         int // accepted contact submissions per identity per window
	ContactRateWindowSeconds int
	GlobalHourlyThreshold    int // coarse per-IP ceilings ahead of the contact limiter
	GlobalDailyThreshold     int
	// Site content served to the frontend
	Site  SiteInfo
	Links SiteLinks
}

func LoadConfig() (*Config, error) {
	// Load .env file (effective locally, ignored in production when absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		BaseURL:     strings.TrimRight(getEnv("BASE_URL", "https://himmagroup.com"), "/"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// SMTP Configuration
		SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", "info@himmagroup.com"),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		ContactRateLimit:         getEnvInt("CONTACT_RATE_LIMIT", 5),             // 5 submissions
		ContactRateWindowSeconds: getEnvInt("CONTACT_RATE_WINDOW_SECONDS", 3600), // per hour
		GlobalHourlyThreshold:    getEnvInt("GLOBAL_HOURLY_THRESHOLD", 50),
		GlobalDailyThreshold:     getEnvInt("GLOBAL_DAILY_THRESHOLD", 200),
		Site: SiteInfo{
			Name:            getEnv("SITE_NAME", "Himma Group"),
			Email:           getEnv("CONTACT_EMAIL_TO", "info@himmagroup.com"),
			Phone:           getEnv("SITE_PHONE", "+251 93 598 8288"),
			WhatsApp:        getEnv("SITE_WHATSAPP", "+251 93 598 8288"),
			WhatsAppMessage: getEnv("SITE_WHATSAPP_MESSAGE", "Hello Himma Group, I would like to know more about your services."),
		},
		Links: SiteLinks{
			CoffeeApp:    getEnv("LINK_COFFEE_APP", ""),
			MachinesApp:  getEnv("LINK_MACHINES_APP", ""),
			MaterialsApp: getEnv("LINK_MATERIALS_APP", ""),
		},
	}

	if cfg.SMTPUsername == "" || cfg.SMTPPassword == "" {
		log.Println("WARNING: SMTP credentials missing. Contact emails will be logged instead of sent.")
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
