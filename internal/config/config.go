package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppEnv          string
	Port            string
	DBDSN           string
	JWTSecret       string
	JWTExpiresMin   int
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	UploadDir       string
	UploadURLPrefix string
	MaxBodyBytes    int
	ListingCacheTTL time.Duration
	CORSOrigins     string
	SecureCookies   bool
	GoogleClientID  string
	GoogleSecret    string
	GoogleRedirect  string
}

func Load() Config {
	return Config{
		AppEnv:          get("APP_ENV", "development"),
		Port:            get("PORT", "5000"),
		DBDSN:           must("DB_DSN"),
		JWTSecret:       must("JWT_SECRET"),
		JWTExpiresMin:   getInt("JWT_EXPIRES_MIN", 10080),
		RedisAddr:       get("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   get("REDIS_PASSWORD", ""),
		RedisDB:         getInt("REDIS_DB", 0),
		UploadDir:       get("UPLOAD_DIR", "./uploads"),
		UploadURLPrefix: strings.TrimRight(get("UPLOAD_URL_PREFIX", "/uploads"), "/"),
		MaxBodyBytes:    getInt("MAX_BODY_MB", 16) * 1024 * 1024,
		ListingCacheTTL: time.Duration(getInt("LISTING_CACHE_TTL_SEC", 60)) * time.Second,
		CORSOrigins:     get("CORS_ORIGINS", "http://127.0.0.1:3000, http://localhost:3000"),
		SecureCookies:   get("APP_ENV", "development") == "production",
		GoogleClientID:  get("GOOGLE_CLIENT_ID", ""),
		GoogleSecret:    get("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirect:  get("GOOGLE_REDIRECT_URL", ""),
	}
}

// GoogleEnabled reports whether all Google OAuth settings are present.
func (c Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleSecret != "" && c.GoogleRedirect != ""
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
