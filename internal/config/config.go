package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	S3        S3Config
	Log       LogConfig
	Parser    ParserConfig
	CORS      CORSConfig
	Email     EmailConfig
	Numbering NumberingConfig
	Business  BusinessConfig
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// NumberingConfig controls document number reservation.
type NumberingConfig struct {
	MaxRetries int `mapstructure:"max_retries"`
}

// BusinessConfig is the fallback letterhead used on rendered PDFs when the
// tenant has not filled in its own business profile.
type BusinessConfig struct {
	Name    string `mapstructure:"name"`
	Address string `mapstructure:"address"`
	Phone   string `mapstructure:"phone"`
	Email   string `mapstructure:"email"`
	// Highlights are the numbered selling points printed on the optional
	// info page that precedes a quotation. Configured as a "|"-separated list.
	Highlights []string `mapstructure:"highlights"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ParserProviderConfig holds settings for a single LLM provider.
type ParserProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	Endpoint     string `mapstructure:"endpoint"`
	MaxRetries   int    `mapstructure:"max_retries"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ParserConfig holds the LLM settings used to draft quotations from free text.
type ParserConfig struct {
	Primary   ParserProviderConfig `mapstructure:"primary"`
	Secondary ParserProviderConfig `mapstructure:"secondary"`
}

// PrimaryConfig returns the primary provider config.
func (p *ParserConfig) PrimaryConfig() *ParserProviderConfig {
	return &p.Primary
}

// SecondaryConfig returns the secondary parser provider config, or nil if not configured.
func (p *ParserConfig) SecondaryConfig() *ParserProviderConfig {
	if p.Secondary.Provider != "" {
		return &p.Secondary
	}
	return nil
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// S3Config holds settings for the bucket that archives rendered documents.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the QUOTELY_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("QUOTELY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "quotely")
	v.SetDefault("db.password", "quotely_secret")
	v.SetDefault("db.name", "quotely_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "24h")
	v.SetDefault("jwt.issuer", "quotely")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "quotely-documents")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 86400)

	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:5173,http://127.0.0.1:5173,http://localhost:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "noreply@quotely.app")
	v.SetDefault("email.from_name", "Quotely")

	v.SetDefault("numbering.max_retries", 3)

	v.SetDefault("business.name", "")
	v.SetDefault("business.address", "")
	v.SetDefault("business.phone", "")
	v.SetDefault("business.email", "")
	v.SetDefault("business.highlights", "Fast and proper service|Experienced technicians|Quality products|24x7 customer support|1 year free service for complaints (T&C apply)")

	// Parser defaults. The primary provider speaks the OpenAI chat-completions
	// format and points at Groq unless overridden.
	v.SetDefault("parser.primary.provider", "openai")
	v.SetDefault("parser.primary.api_key", "")
	v.SetDefault("parser.primary.default_model", "llama-3.3-70b-versatile")
	v.SetDefault("parser.primary.endpoint", "https://api.groq.com/openai/v1/chat/completions")
	v.SetDefault("parser.primary.max_retries", 2)
	v.SetDefault("parser.primary.timeout_secs", 60)
	v.SetDefault("parser.secondary.provider", "")
	v.SetDefault("parser.secondary.api_key", "")
	v.SetDefault("parser.secondary.default_model", "")
	v.SetDefault("parser.secondary.endpoint", "")
	v.SetDefault("parser.secondary.max_retries", 2)
	v.SetDefault("parser.secondary.timeout_secs", 60)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "QUOTELY_SERVER_PORT",
		"server.read_timeout":            "QUOTELY_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "QUOTELY_SERVER_WRITE_TIMEOUT",
		"server.environment":             "QUOTELY_SERVER_ENVIRONMENT",
		"db.host":                        "QUOTELY_DB_HOST",
		"db.port":                        "QUOTELY_DB_PORT",
		"db.user":                        "QUOTELY_DB_USER",
		"db.password":                    "QUOTELY_DB_PASSWORD",
		"db.name":                        "QUOTELY_DB_NAME",
		"db.sslmode":                     "QUOTELY_DB_SSLMODE",
		"db.max_open":                    "QUOTELY_DB_MAX_OPEN",
		"db.max_idle":                    "QUOTELY_DB_MAX_IDLE",
		"jwt.secret":                     "QUOTELY_JWT_SECRET",
		"jwt.access_expiry":              "QUOTELY_JWT_ACCESS_EXPIRY",
		"jwt.issuer":                     "QUOTELY_JWT_ISSUER",
		"s3.region":                      "QUOTELY_S3_REGION",
		"s3.bucket":                      "QUOTELY_S3_BUCKET",
		"s3.endpoint":                    "QUOTELY_S3_ENDPOINT",
		"s3.access_key":                  "QUOTELY_S3_ACCESS_KEY",
		"s3.secret_key":                  "QUOTELY_S3_SECRET_KEY",
		"s3.presign_expiry":              "QUOTELY_S3_PRESIGN_EXPIRY",
		"log.level":                      "QUOTELY_LOG_LEVEL",
		"log.format":                     "QUOTELY_LOG_FORMAT",
		"cors.allowed_origins":           "QUOTELY_CORS_ALLOWED_ORIGINS",
		"email.provider":                 "QUOTELY_EMAIL_PROVIDER",
		"email.region":                   "QUOTELY_EMAIL_REGION",
		"email.from_address":             "QUOTELY_EMAIL_FROM_ADDRESS",
		"email.from_name":                "QUOTELY_EMAIL_FROM_NAME",
		"numbering.max_retries":          "QUOTELY_NUMBERING_MAX_RETRIES",
		"business.name":                  "QUOTELY_BUSINESS_NAME",
		"business.address":               "QUOTELY_BUSINESS_ADDRESS",
		"business.phone":                 "QUOTELY_BUSINESS_PHONE",
		"business.email":                 "QUOTELY_BUSINESS_EMAIL",
		"business.highlights":            "QUOTELY_BUSINESS_HIGHLIGHTS",
		"parser.primary.provider":        "QUOTELY_PARSER_PRIMARY_PROVIDER",
		"parser.primary.api_key":         "QUOTELY_PARSER_PRIMARY_API_KEY",
		"parser.primary.default_model":   "QUOTELY_PARSER_PRIMARY_DEFAULT_MODEL",
		"parser.primary.endpoint":        "QUOTELY_PARSER_PRIMARY_ENDPOINT",
		"parser.primary.max_retries":     "QUOTELY_PARSER_PRIMARY_MAX_RETRIES",
		"parser.primary.timeout_secs":    "QUOTELY_PARSER_PRIMARY_TIMEOUT_SECS",
		"parser.secondary.provider":      "QUOTELY_PARSER_SECONDARY_PROVIDER",
		"parser.secondary.api_key":       "QUOTELY_PARSER_SECONDARY_API_KEY",
		"parser.secondary.default_model": "QUOTELY_PARSER_SECONDARY_DEFAULT_MODEL",
		"parser.secondary.endpoint":      "QUOTELY_PARSER_SECONDARY_ENDPOINT",
		"parser.secondary.max_retries":   "QUOTELY_PARSER_SECONDARY_MAX_RETRIES",
		"parser.secondary.timeout_secs":  "QUOTELY_PARSER_SECONDARY_TIMEOUT_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if QUOTELY_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("QUOTELY_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitCSV(v.GetString("cors.allowed_origins")),
	}
	cfg.Parser = ParserConfig{
		Primary:   providerConfig(v, "parser.primary"),
		Secondary: providerConfig(v, "parser.secondary"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Numbering = NumberingConfig{
		MaxRetries: v.GetInt("numbering.max_retries"),
	}
	cfg.Business = BusinessConfig{
		Name:       v.GetString("business.name"),
		Address:    v.GetString("business.address"),
		Phone:      v.GetString("business.phone"),
		Email:      v.GetString("business.email"),
		Highlights: splitList(v.GetString("business.highlights"), "|"),
	}

	if cfg.Numbering.MaxRetries < 1 {
		return nil, fmt.Errorf("numbering.max_retries must be at least 1, got %d", cfg.Numbering.MaxRetries)
	}

	return cfg, nil
}

func providerConfig(v *viper.Viper, prefix string) ParserProviderConfig {
	return ParserProviderConfig{
		Provider:     v.GetString(prefix + ".provider"),
		APIKey:       v.GetString(prefix + ".api_key"),
		DefaultModel: v.GetString(prefix + ".default_model"),
		Endpoint:     v.GetString(prefix + ".endpoint"),
		MaxRetries:   v.GetInt(prefix + ".max_retries"),
		TimeoutSecs:  v.GetInt(prefix + ".timeout_secs"),
	}
}

// splitCSV parses a comma-separated list, dropping empty entries.
func splitCSV(raw string) []string {
	return splitList(raw, ",")
}

func splitList(raw, sep string) []string {
	var out []string
	for _, o := range strings.Split(raw, sep) {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
