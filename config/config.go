package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is built once in main and handed to the components that need it.
type Config struct {
	Mode     string // dev | test | prod
	Port     string
	LogLevel string

	// Either a full MYSQL_URL/DATABASE_URL or discrete DB_* settings.
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPass      string
	DBName      string

	JWTSecret string
	TokenTTL  time.Duration

	CORSOrigins []string
	SeedOnStart bool
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

// Load reads the configuration from environment variables. godotenv is
// loaded by main before this runs, so a .env file works the same way.
func Load() (*Config, error) {
	cfg := &Config{
		Mode:     envOrDefault("MODE", "dev"),
		Port:     envOrDefault("PORT", "8080"),
		LogLevel: envOrDefault("LOG_LEVEL", "info"),

		DatabaseURL: strings.TrimSpace(os.Getenv("MYSQL_URL")),
		DBHost:      envOrDefault("DB_HOST", "127.0.0.1"),
		DBPort:      envOrDefault("DB_PORT", "3306"),
		DBUser:      envOrDefault("DB_USER", "root"),
		DBPass:      os.Getenv("DB_PASS"),
		DBName:      envOrDefault("DB_NAME", "booking_db"),

		JWTSecret: strings.TrimSpace(os.Getenv("JWT_SECRET")),

		CORSOrigins: parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
		SeedOnStart: strings.EqualFold(envOrDefault("SEED_ON_START", "false"), "true"),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	ttlMinutes, err := strconv.Atoi(envOrDefault("TOKEN_TTL_MINUTES", "30"))
	if err != nil || ttlMinutes <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL_MINUTES: %q", os.Getenv("TOKEN_TTL_MINUTES"))
	}
	cfg.TokenTTL = time.Duration(ttlMinutes) * time.Minute

	return cfg, nil
}

func parseCORSOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"http://localhost:3000"}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}

// DSN resolves the MySQL connection string. A mysql:// URL wins over the
// discrete DB_* settings.
func (c *Config) DSN() (string, error) {
	if c.DatabaseURL != "" {
		if strings.HasPrefix(c.DatabaseURL, "mysql://") {
			return mysqlDSNFromURL(c.DatabaseURL)
		}
		return c.DatabaseURL, nil
	}
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName,
	), nil
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}
