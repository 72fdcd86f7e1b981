package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kevinblo/fwords-backend/pkg/validator"
)

// Config holds every runtime setting of the service.
type Config struct {
	Env       string       `mapstructure:"env" validate:"oneof=development production staging"`
	HTTP      HTTPConfig   `mapstructure:"http" validate:"required"`
	DB        DBConfig     `mapstructure:"db" validate:"required"`
	Auth      AuthConfig   `mapstructure:"auth" validate:"required"`
	Mail      MailConfig   `mapstructure:"mail"`
	Scheduler SchedConfig  `mapstructure:"scheduler"`
}

type HTTPConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port" validate:"required"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"min=1"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"min=1"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"min=1"`
}

type DBConfig struct {
	// Type selects the backing store: "postgres" or "sqlite".
	Type     string `mapstructure:"type" validate:"oneof=postgres sqlite"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
	// Path is the SQLite database file location.
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	JWTSecret          string        `mapstructure:"jwt_secret" validate:"required"`
	AccessTTL          time.Duration `mapstructure:"access_ttl" validate:"min=1"`
	ActivationTokenTTL time.Duration `mapstructure:"activation_token_ttl" validate:"min=1"`
}

type MailConfig struct {
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort string `mapstructure:"smtp_port"`
	From     string `mapstructure:"from"`
	BaseURL  string `mapstructure:"base_url"`
}

type SchedConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Init loads configuration from an optional .env file, an optional
// configs/<CONFIG_NAME>.yaml file and the environment, then validates it.
func Init() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	setDefaults(v)

	configName := os.Getenv("CONFIG_NAME")
	if configName == "" {
		configName = "default"
	}
	v.AddConfigPath("configs")
	v.SetConfigName(configName)

	bindings := map[string]string{
		"env":                       "APP_ENV",
		"http.host":                 "HTTP_HOST",
		"http.port":                 "HTTP_PORT",
		"db.type":                   "DB_TYPE",
		"db.host":                   "DB_HOST",
		"db.port":                   "DB_PORT",
		"db.user":                   "DB_USER",
		"db.password":               "DB_PASSWORD",
		"db.name":                   "DB_NAME",
		"db.ssl_mode":               "DB_SSL_MODE",
		"db.path":                   "DB_PATH",
		"auth.jwt_secret":           "JWT_SECRET",
		"mail.smtp_host":            "SMTP_HOST",
		"mail.smtp_port":            "SMTP_PORT",
		"mail.from":                 "MAIL_FROM",
		"mail.base_url":             "BASE_URL",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.ValidateStruct(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", "8000")
	v.SetDefault("http.read_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.shutdown_timeout", 5*time.Second)
	v.SetDefault("db.type", "sqlite")
	v.SetDefault("db.path", "data/fwords.db")
	v.SetDefault("db.ssl_mode", "disable")
	v.SetDefault("auth.access_ttl", 24*time.Hour)
	v.SetDefault("auth.activation_token_ttl", 24*time.Hour)
	v.SetDefault("scheduler.enabled", true)
}
