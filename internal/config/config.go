package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Mode string

const (
	ModeDev  Mode = "dev"
	ModeProd Mode = "prod"
)

const (
	DefaultModel        = "openai/gpt-4.1-mini"
	DefaultMaxBodyBytes = 8 << 20
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	// LLM provider (OpenRouter chat completions)
	OpenRouterAPIKey  string // server-side fallback when the request carries none
	OpenRouterBaseURL string
	DefaultModel      string
	LLMTimeout        time.Duration
	LLMRatePerMinute  int // 0 = unlimited
	AppURL            string
	AppName           string

	MaxBodyBytes int64
	PDFOCRHint   bool

	CORSOrigins []string

	AuditEnabled bool
	DBDriver     string
	DBDSN        string

	AuthHMACSecret string
	AdminUser      string
	AdminPassHash  string // bcrypt
}

// FromEnv reads configuration from the environment, loading a .env file
// from the working directory first when one exists.
func FromEnv() Config {
	_ = godotenv.Load()

	mode := Mode(strings.ToLower(os.Getenv("MODE")))
	if mode == "" {
		mode = ModeDev
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		if port := os.Getenv("PORT"); port != "" {
			addr = ":" + port
		} else {
			addr = ":8080"
		}
	}
	return Config{
		Mode:              mode,
		HTTPAddr:          addr,
		OpenRouterAPIKey:  strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY")),
		OpenRouterBaseURL: strings.TrimRight(envOr("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"), "/"),
		DefaultModel:      envOr("LLM_DEFAULT_MODEL", DefaultModel),
		LLMTimeout:        time.Duration(envInt("LLM_TIMEOUT_SECONDS", 45)) * time.Second,
		LLMRatePerMinute:  envInt("LLM_RATE_PER_MINUTE", 0),
		AppURL:            os.Getenv("APP_URL"),
		AppName:           envOr("APP_NAME", "Editorial Quality Scorer"),
		MaxBodyBytes:      int64(envInt("MAX_BODY_BYTES", DefaultMaxBodyBytes)),
		PDFOCRHint:        envBool("PDF_OCR_HINT", true),
		CORSOrigins:       csvOr("CORS_ORIGINS", "*"),
		AuditEnabled:      envBool("AUDIT_ENABLED", false),
		DBDriver:          envOr("DB_DRIVER", "sqlite"),
		DBDSN:             envOr("DB_DSN", ""),
		AuthHMACSecret:    os.Getenv("AUTH_HMAC_SECRET"),
		AdminUser:         envOr("ADMIN_USER", "admin"),
		AdminPassHash:     os.Getenv("ADMIN_PASS_HASH"),
	}
}

// AuthEnabled reports whether the admin login and protected routes are mounted.
func (c Config) AuthEnabled() bool {
	return c.AuthHMACSecret != "" && c.AdminPassHash != ""
}

func envOr(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch strings.TrimSpace(os.Getenv(k)) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func envInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i < 0 {
		return def
	}
	return i
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
