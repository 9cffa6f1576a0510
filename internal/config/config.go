package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Skills   SkillsConfig
	ATS      ATSConfig
	Upload   UploadConfig
	Log      LogConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret string
}

type SkillsConfig struct {
	// VocabularyFile is optional; the built-in vocabulary is used when empty.
	VocabularyFile string
	MatchMode      string
}

type ATSConfig struct {
	Scorer     string
	FixedScore float64
	Seed       int64
}

type UploadConfig struct {
	MaxBytes int64
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

const (
	ATSScorerRandom = "random"
	ATSScorerFixed  = "fixed"

	defaultUploadMaxBytes = 10 << 20
)

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads configuration from the environment, after applying a .env file
// from the working directory when one exists.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	optInt := func(key string, def int64) int64 {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optFloat := func(key string, def float64) float64 {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optBool := func(key string) bool {
		raw := opt(key)
		if raw == "" {
			return false
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return false
		}
		return v
	}
	optSeconds := func(key string) time.Duration {
		return time.Duration(optInt(key, 0)) * time.Second
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST"),
		DBPort:                opt("DB_PORT"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            opt("DB_PASSWORD"),
		DBSSLMode:             optDefault("DB_SSL_MODE", "disable"),
		ConnectTimeout:        optSeconds("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optSeconds("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   optSeconds("DB_POOL_MAX_CONN_IDLE_TIME"),
		PoolHealthCheckPeriod: optSeconds("DB_POOL_HEALTH_CHECK_PERIOD"),
	}

	cfg.Redis = RedisConfig{
		Host:     optDefault("REDIS_HOST", "localhost"),
		Port:     optDefault("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		DB:       int(optInt("REDIS_DB", 0)),
		TTL:      optSeconds("REDIS_TTL"),
	}

	cfg.JWT = JWTConfig{
		AccessSecret: req("JWT_ACCESS_SECRET"),
	}

	cfg.Skills = SkillsConfig{
		VocabularyFile: opt("SKILL_VOCABULARY_FILE"),
		MatchMode:      optDefault("SKILL_MATCH_MODE", "substring"),
	}

	cfg.ATS = ATSConfig{
		Scorer:     strings.ToLower(optDefault("ATS_SCORER", ATSScorerRandom)),
		FixedScore: optFloat("ATS_FIXED_SCORE", 75),
		Seed:       optInt("ATS_SEED", 0),
	}
	if cfg.ATS.Scorer != ATSScorerRandom && cfg.ATS.Scorer != ATSScorerFixed {
		invalid = append(invalid, "ATS_SCORER")
	}

	cfg.Upload = UploadConfig{
		MaxBytes: optInt("UPLOAD_MAX_BYTES", defaultUploadMaxBytes),
	}
	if cfg.Upload.MaxBytes <= 0 {
		invalid = append(invalid, "UPLOAD_MAX_BYTES")
	}

	cfg.Log = LogConfig{
		JSON:  optBool("LOG_JSON"),
		Debug: optBool("LOG_DEBUG"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}
