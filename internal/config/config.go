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
	Server ServerConfig
	DB     DBConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Import ImportConfig
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

// S3Config holds AWS S3 settings for uploaded spreadsheets and error reports.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ImportConfig holds import pipeline settings.
type ImportConfig struct {
	BatchSize    int `mapstructure:"batch_size"`
	BatchPauseMS int `mapstructure:"batch_pause_ms"`
	PreviewRows  int `mapstructure:"preview_rows"`
}

// BatchPause returns the inter-batch pause as a duration.
func (i *ImportConfig) BatchPause() time.Duration {
	return time.Duration(i.BatchPauseMS) * time.Millisecond
}

// Load reads configuration from environment variables with the FOLHARH_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FOLHARH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "folharh")
	v.SetDefault("db.password", "folharh_secret")
	v.SetDefault("db.name", "folharh_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "sa-east-1")
	v.SetDefault("s3.bucket", "folharh-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 10)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Import defaults
	v.SetDefault("import.batch_size", 10)
	v.SetDefault("import.batch_pause_ms", 100)
	v.SetDefault("import.preview_rows", 50)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":           "FOLHARH_SERVER_PORT",
		"server.read_timeout":   "FOLHARH_SERVER_READ_TIMEOUT",
		"server.write_timeout":  "FOLHARH_SERVER_WRITE_TIMEOUT",
		"server.environment":    "FOLHARH_SERVER_ENVIRONMENT",
		"db.host":               "FOLHARH_DB_HOST",
		"db.port":               "FOLHARH_DB_PORT",
		"db.user":               "FOLHARH_DB_USER",
		"db.password":           "FOLHARH_DB_PASSWORD",
		"db.name":               "FOLHARH_DB_NAME",
		"db.sslmode":            "FOLHARH_DB_SSLMODE",
		"db.max_open":           "FOLHARH_DB_MAX_OPEN",
		"db.max_idle":           "FOLHARH_DB_MAX_IDLE",
		"s3.region":             "FOLHARH_S3_REGION",
		"s3.bucket":             "FOLHARH_S3_BUCKET",
		"s3.endpoint":           "FOLHARH_S3_ENDPOINT",
		"s3.access_key":         "FOLHARH_S3_ACCESS_KEY",
		"s3.secret_key":         "FOLHARH_S3_SECRET_KEY",
		"s3.max_file_size_mb":   "FOLHARH_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":     "FOLHARH_S3_PRESIGN_EXPIRY",
		"log.level":             "FOLHARH_LOG_LEVEL",
		"log.format":            "FOLHARH_LOG_FORMAT",
		"cors.allowed_origins":  "FOLHARH_CORS_ALLOWED_ORIGINS",
		"import.batch_size":     "FOLHARH_IMPORT_BATCH_SIZE",
		"import.batch_pause_ms": "FOLHARH_IMPORT_BATCH_PAUSE_MS",
		"import.preview_rows":   "FOLHARH_IMPORT_PREVIEW_ROWS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if FOLHARH_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("FOLHARH_SERVER_PORT") == "" {
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
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}
	cfg.Import = ImportConfig{
		BatchSize:    v.GetInt("import.batch_size"),
		BatchPauseMS: v.GetInt("import.batch_pause_ms"),
		PreviewRows:  v.GetInt("import.preview_rows"),
	}
	if cfg.Import.BatchSize <= 0 {
		return nil, fmt.Errorf("config: import.batch_size must be positive, got %d", cfg.Import.BatchSize)
	}

	return cfg, nil
}
