package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        int           `yaml:"port"`
	DatabaseURL string        `yaml:"database_url"`
	CORSOrigins []string      `yaml:"cors_origins"`
	GRPCAddr    string        `yaml:"grpc_addr"`
	JWTSecret   string        `yaml:"jwt_secret"`
	JWTIssuer   string        `yaml:"jwt_issuer"`
	TokenTTL    time.Duration `yaml:"token_ttl"`
	SeedTimeout time.Duration `yaml:"seed_timeout"`
	DB          DBConfig      `yaml:"db"`
	Log         LogConfig     `yaml:"log"`
}

type DBConfig struct {
	MaxOpenConns   int           `yaml:"max_open_conns"`
	MaxIdleTime    time.Duration `yaml:"max_idle_time"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

func Defaults() Config {
	return Config{
		Port:        3001,
		CORSOrigins: []string{"http://localhost:3000", "http://localhost:3002", "http://localhost:5173"},
		JWTSecret:   "dev-secret",
		JWTIssuer:   "attendancehub",
		TokenTTL:    12 * time.Hour,
		SeedTimeout: 30 * time.Second,
		DB: DBConfig{
			MaxOpenConns:   20,
			MaxIdleTime:    30 * time.Second,
			ConnectTimeout: 2 * time.Second,
		},
		Log: LogConfig{Level: "info", Console: true, MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 30},
	}
}

// Load layers configuration: defaults, then configFile (if given), then a
// .env file in the working directory, then the process environment.
func Load(configFile string) (Config, error) {
	c := Defaults()

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", configFile, err)
		}
	}

	// .env never overrides variables already present in the environment.
	_ = godotenv.Load()

	c.DatabaseURL = getenv("DATABASE_URL", c.DatabaseURL)
	c.Port = getenvInt("PORT", c.Port)
	c.CORSOrigins = getenvList("CORS_ORIGINS", c.CORSOrigins)
	c.GRPCAddr = getenv("GRPC_ADDR", c.GRPCAddr)
	c.JWTSecret = getenv("JWT_SECRET", c.JWTSecret)
	c.JWTIssuer = getenv("JWT_ISSUER", c.JWTIssuer)
	c.TokenTTL = getenvDuration("TOKEN_TTL", c.TokenTTL)
	c.SeedTimeout = getenvDuration("SEED_TIMEOUT", c.SeedTimeout)
	c.DB.MaxOpenConns = getenvInt("DB_MAX_OPEN_CONNS", c.DB.MaxOpenConns)
	c.DB.MaxIdleTime = getenvDuration("DB_MAX_IDLE_TIME", c.DB.MaxIdleTime)
	c.DB.ConnectTimeout = getenvDuration("DB_CONNECT_TIMEOUT", c.DB.ConnectTimeout)
	c.Log.Level = getenv("LOG_LEVEL", c.Log.Level)
	c.Log.File = getenv("LOG_FILE", c.Log.File)

	return c, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func getenvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	if val := os.Getenv(key + "_SECONDS"); val != "" {
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
