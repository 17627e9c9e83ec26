// Package config carrega a configuração da aplicação a partir de variáveis de
// ambiente e de um arquivo .env opcional.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL ou DB_HOST é obrigatório com DB_DRIVER=postgres")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET_KEY é obrigatório fora do ambiente de desenvolvimento")
	ErrInvalidDriver      = errors.New("DB_DRIVER deve ser memory ou postgres")
	ErrInvalidCommission  = errors.New("CARD_COMMISSION_RATE deve estar entre 0 e 1")
	ErrInvalidLogFormat   = errors.New("LOG_FORMAT deve ser json ou text")
	ErrInvalidMaxConns    = errors.New("DB_MAX_CONNECTIONS deve ser maior que zero")
)

// Driver identifica a implementação de persistência
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverPostgres Driver = "postgres"
)

// Config contém a configuração de execução da aplicação
type Config struct {
	Env      string
	HTTPPort string

	LogLevel  string
	LogFormat string

	Database DatabaseConfig

	JWTSecret     string
	JWTExpiration time.Duration

	CORSAllowedOrigins []string

	CardCommissionRate decimal.Decimal

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig contém as configurações do banco de dados
type DatabaseConfig struct {
	Driver          Driver
	URL             string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int32
	MinConnections  int32
	MaxConnLifetime time.Duration
	MigrationsPath  string
}

// ConnectionString retorna a URL de conexão; DATABASE_URL tem precedência
// sobre as variáveis DB_* individuais
func (d DatabaseConfig) ConnectionString() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// IsDevelopment indica se a aplicação roda em ambiente de desenvolvimento
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load lê as variáveis de ambiente e o .env, se existir
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:       getEnv("APP_ENV", "development"),
		HTTPPort:  getEnv("HTTP_PORT", "8080"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "json")),
		Database: DatabaseConfig{
			Driver:          Driver(strings.ToLower(getEnv("DB_DRIVER", string(DriverPostgres)))),
			URL:             os.Getenv("DATABASE_URL"),
			Host:            os.Getenv("DB_HOST"),
			Port:            getInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "erp_vendas"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxConnections:  int32(getInt("DB_MAX_CONNECTIONS", 10)),
			MinConnections:  int32(getInt("DB_MIN_CONNECTIONS", 1)),
			MaxConnLifetime: getDuration("DB_MAX_LIFETIME", time.Hour),
			MigrationsPath:  getEnv("MIGRATIONS_PATH", "migrations"),
		},
		JWTSecret:          os.Getenv("JWT_SECRET_KEY"),
		JWTExpiration:      time.Duration(getInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		ReadTimeout:        getDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:       getDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:        getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:    getDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	rate, err := decimal.NewFromString(getEnv("CARD_COMMISSION_RATE", "0"))
	if err != nil {
		return cfg, fmt.Errorf("CARD_COMMISSION_RATE inválido: %w", err)
	}
	cfg.CardCommissionRate = rate

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Database.URL == "" && c.Database.Host == "" {
			return ErrMissingDatabaseURL
		}
		if c.Database.MaxConnections <= 0 {
			return ErrInvalidMaxConns
		}
	default:
		return ErrInvalidDriver
	}

	if c.CardCommissionRate.IsNegative() || c.CardCommissionRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return ErrInvalidCommission
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return ErrInvalidLogFormat
	}

	if c.JWTSecret == "" {
		if !c.IsDevelopment() {
			return ErrMissingJWTSecret
		}
		c.JWTSecret = "dev-secret-key"
	}
	return nil
}

func getEnv(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func getInt(key string, fallback int) int {
	val, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return val
}

func getList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		// aceita segundos sem sufixo
		if secs, convErr := strconv.Atoi(val); convErr == nil {
			return time.Duration(secs) * time.Second
		}
		return fallback
	}
	return d
}
