package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	Env      string
	Port     string
	RateFile string
	JWT        JWTConfig
	Argon2     Argon2Config
	LoginLimit LoginLimitConfig
}

type JWTConfig struct {
	SecretKey string
	Expiry    time.Duration
}

// LoginLimitConfig bounds failed logins per email. MaxAttempts <= 0 turns
// the limit off.
type LoginLimitConfig struct {
	MaxAttempts int
	Window      time.Duration
}

type Argon2Config struct {
	Time       uint32
	Memory     uint32
	Threads    uint8
	KeyLength  uint32
	SaltLength int
}

var envBindings = map[string]string{
	"app.env":     "APP_ENV",
	"server.port": "PORT",
	"rates.file":  "RATES_FILE",

	"database.driver":            "DATABASE_DRIVER",
	"database.dsn":               "DATABASE_DSN",
	"database.host":              "DATABASE_HOST",
	"database.port":              "DATABASE_PORT",
	"database.user":              "DATABASE_USER",
	"database.password":          "DATABASE_PASSWORD",
	"database.name":              "DATABASE_NAME",
	"database.ssl_mode":          "DATABASE_SSL_MODE",
	"database.max_open_conns":    "DATABASE_MAX_OPEN_CONNS",
	"database.max_idle_conns":    "DATABASE_MAX_IDLE_CONNS",
	"database.conn_max_lifetime": "DATABASE_CONN_MAX_LIFETIME",

	"redis.host":     "REDIS_HOST",
	"redis.port":     "REDIS_PORT",
	"redis.password": "REDIS_PASSWORD",
	"redis.db":       "REDIS_DB",

	"jwt.secret_key":   "JWT_SECRET_KEY",
	"jwt.expiry_hours": "JWT_EXPIRY_HOURS",

	"argon2.time":        "ARGON2_TIME",
	"argon2.memory":      "ARGON2_MEMORY",
	"argon2.threads":     "ARGON2_THREADS",
	"argon2.key_length":  "ARGON2_KEY_LENGTH",
	"argon2.salt_length": "ARGON2_SALT_LENGTH",

	"auth.max_login_attempts":   "AUTH_MAX_LOGIN_ATTEMPTS",
	"auth.login_window_minutes": "AUTH_LOGIN_WINDOW_MINUTES",
}

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault("app.env", "production")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("rates.file", "")

	viper.SetDefault("jwt.secret_key", "")
	viper.SetDefault("jwt.expiry_hours", 1)

	viper.SetDefault("argon2.time", 1)
	viper.SetDefault("argon2.memory", 64*1024)
	viper.SetDefault("argon2.threads", 4)
	viper.SetDefault("argon2.key_length", 32)
	viper.SetDefault("argon2.salt_length", 16)

	viper.SetDefault("auth.max_login_attempts", 5)
	viper.SetDefault("auth.login_window_minutes", 15)
}

// Load reads an optional .env file, binds environment variables and returns
// the application settings. Database and Redis settings are read by the
// database package.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	viper.AutomaticEnv()
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, err
		}
	}
	SetDefaults()

	cfg := Current()
	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("JWT_SECRET_KEY must be set")
	}

	zap.L().Debug("Configuration loaded", zap.String("env", cfg.Env), zap.String("port", cfg.Port))
	return cfg, nil
}

// Current builds the settings from the values viper holds now.
func Current() *AppConfig {
	return &AppConfig{
		Env:      viper.GetString("app.env"),
		Port:     viper.GetString("server.port"),
		RateFile: viper.GetString("rates.file"),
		JWT: JWTConfig{
			SecretKey: viper.GetString("jwt.secret_key"),
			Expiry:    time.Duration(viper.GetInt("jwt.expiry_hours")) * time.Hour,
		},
		Argon2: Argon2Config{
			Time:       uint32(viper.GetInt("argon2.time")),
			Memory:     uint32(viper.GetInt("argon2.memory")),
			Threads:    uint8(viper.GetInt("argon2.threads")),
			KeyLength:  uint32(viper.GetInt("argon2.key_length")),
			SaltLength: viper.GetInt("argon2.salt_length"),
		},
		LoginLimit: LoginLimitConfig{
			MaxAttempts: viper.GetInt("auth.max_login_attempts"),
			Window:      time.Duration(viper.GetInt("auth.login_window_minutes")) * time.Minute,
		},
	}
}

func (c *AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}
