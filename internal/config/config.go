package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageJSON     = "json"
	StoragePostgres = "postgres"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Storage      StorageConfig
	Files        FilesConfig
	Logging      LoggingConfig
	GeminiAPIKey string
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	AccessSecret      string
	AccessExpiryHours int
}

type StorageConfig struct {
	Type string
	Path string
}

type FilesConfig struct {
	UploadsDir string
	PublicDir  string
}

type LoggingConfig struct {
	Level  string
	Format string
	// File enables hourly rotated log files at this path prefix.
	File string
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = v.ReadInConfig()

	return load(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 3000)
	v.SetDefault("ENV", "development")
	v.SetDefault("STORAGE_TYPE", StorageJSON)
	v.SetDefault("STORAGE_PATH", "database.json")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("JWT_ACCESS_EXPIRY_HOURS", 168)
	v.SetDefault("UPLOADS_DIR", "uploads")
	v.SetDefault("PUBLIC_DIR", "public")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	config := &Config{
		Server: ServerConfig{
			Host:         v.GetString("SERVER_HOST"),
			Port:         v.GetInt("SERVER_PORT"),
			Env:          v.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			AccessSecret:      v.GetString("JWT_ACCESS_SECRET"),
			AccessExpiryHours: v.GetInt("JWT_ACCESS_EXPIRY_HOURS"),
		},
		Storage: StorageConfig{
			Type: v.GetString("STORAGE_TYPE"),
			Path: v.GetString("STORAGE_PATH"),
		},
		Files: FilesConfig{
			UploadsDir: v.GetString("UPLOADS_DIR"),
			PublicDir:  v.GetString("PUBLIC_DIR"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
			File:   v.GetString("LOG_FILE"),
		},
		GeminiAPIKey: v.GetString("GEMINI_API_KEY"),
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d is out of range", c.Server.Port)
	}
	switch c.Storage.Type {
	case StorageJSON:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage path is required")
		}
	case StoragePostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name is required")
		}
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT access secret is required")
	}
	if len(c.JWT.AccessSecret) < 16 {
		return fmt.Errorf("JWT access secret must be at least 16 characters")
	}
	if c.JWT.AccessExpiryHours <= 0 {
		return fmt.Errorf("JWT access expiry must be positive")
	}
	return nil
}

// TokenTTL returns the access token lifetime
func (c *JWTConfig) TokenTTL() time.Duration {
	return time.Duration(c.AccessExpiryHours) * time.Hour
}

// IsProduction reports whether gin should run in release mode
func (c *ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

// Enabled reports whether a session registry is configured
func (c *RedisConfig) Enabled() bool {
	return c.Host != ""
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
