package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Session backends understood by SessionConfig.Backend.
const (
	SessionBackendFile   = "file"
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type Config struct {
	// APIBase is the listing API root, e.g. http://localhost:8080.
	// It has no default: the API client refuses to run without it.
	APIBase        string        `yaml:"api_base"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	PortalPort     int           `yaml:"portal_port"`
	WhatsAppNumber string        `yaml:"whatsapp_number"`
	// SecureCookies marks the portal session cookie Secure; enable it
	// behind TLS.
	SecureCookies bool          `yaml:"secure_cookies"`
	LogLevel      string        `yaml:"log_level"`
	Session       SessionConfig `yaml:"session"`
	DevAPI        DevAPIConfig  `yaml:"devapi"`
}

type SessionConfig struct {
	Backend string        `yaml:"backend"`
	File    string        `yaml:"file"`
	TTL     time.Duration `yaml:"ttl"`
	Redis   RedisConfig   `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type DevAPIConfig struct {
	Port       int    `yaml:"port"`
	JWTSecret  string `yaml:"jwt_secret"`
	CORSOrigin string `yaml:"cors_origin"`
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	var file Config
	if path := strings.TrimSpace(os.Getenv("IMOBI_CONFIG")); path != "" {
		loaded, err := LoadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ignoring config file %s: %v\n", path, err)
		} else {
			file = loaded
		}
	}

	sessionConfig := SessionConfig{
		Backend: getEnv("SESSION_BACKEND", orString(file.Session.Backend, SessionBackendFile)),
		File:    getEnv("SESSION_FILE", orString(file.Session.File, defaultSessionFile())),
		TTL:     getEnvDuration("SESSION_TTL", file.Session.TTL),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", orString(file.Session.Redis.Addr, "localhost:6379")),
			Password: getEnv("REDIS_PASSWORD", file.Session.Redis.Password),
			DB:       getEnvInt("REDIS_DB", file.Session.Redis.DB),
		},
	}

	devConfig := DevAPIConfig{
		Port:       getEnvInt("DEVAPI_PORT", orInt(file.DevAPI.Port, 8080)),
		JWTSecret:  getEnv("JWT_SECRET", file.DevAPI.JWTSecret),
		CORSOrigin: getEnv("CORS_ORIGIN", orString(file.DevAPI.CORSOrigin, "http://localhost:3000")),
	}

	return Config{
		APIBase:        strings.TrimSpace(getEnv("API_BASE", file.APIBase)),
		RequestTimeout: getEnvDuration("API_TIMEOUT", file.RequestTimeout),
		PortalPort:     getEnvInt("PORTAL_PORT", orInt(file.PortalPort, 3000)),
		WhatsAppNumber: getEnv("WHATSAPP_NUMBER", orString(file.WhatsAppNumber, "5551999999999")),
		SecureCookies:  getEnvBool("PORTAL_SECURE_COOKIES", file.SecureCookies),
		LogLevel:       getEnv("LOG_LEVEL", orString(file.LogLevel, "info")),
		Session:        sessionConfig,
		DevAPI:         devConfig,
	}
}

// LoadFile reads a YAML config file. Values it sets act as defaults
// that environment variables override.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".imobi-session.json"
	}
	return dir + string(os.PathSeparator) + "imobi" + string(os.PathSeparator) + "session.json"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		value, err := strconv.ParseBool(strings.TrimSpace(valueStr))
		if err != nil {
			return defaultValue
		}
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valueStr, exists := os.LookupEnv(key); exists {
		value, err := time.ParseDuration(strings.TrimSpace(valueStr))
		if err != nil {
			return defaultValue
		}
		return value
	}
	return defaultValue
}

func orString(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func orInt(value, fallback int) int {
	if value != 0 {
		return value
	}
	return fallback
}
