package config

import (
	"errors"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	AI       AIConfig       `mapstructure:"ai"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Mode    string `mapstructure:"mode"` // gin mode: debug, release, test
}

// Database drivers
const (
	DriverMemory = "memory"
	DriverMongo  = "mongo"
)

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"`
}

// CatalogConfig points at the seed data and names the gym owning private packs.
type CatalogConfig struct {
	SeedFile string `mapstructure:"seed_file"`
	GymID    string `mapstructure:"gym_id"`
	GymName  string `mapstructure:"gym_name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// Enabled reports whether technique videos can be stored.
func (c S3Config) Enabled() bool {
	return c.BucketName != ""
}

// DefaultJWTSecret is the placeholder signing key used when none is configured.
const DefaultJWTSecret = "change-me"

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// UsesDefaultSecret reports whether tokens are signed with DefaultJWTSecret.
func (c JWTConfig) UsesDefaultSecret() bool {
	return c.Secret == DefaultJWTSecret
}

// Variation generators
const (
	ProviderStatic = "static"
	ProviderGemini = "gemini"
)

// AIConfig selects the combo variation generator.
type AIConfig struct {
	Provider   string `mapstructure:"provider"`
	APIKey     string `mapstructure:"api_key"`
	Model      string `mapstructure:"model"`
	Variations int    `mapstructure:"variations"`
}

// LoadConfig reads configuration from file or environment variables.
// A .env file in path, when present, is loaded into the environment first.
func LoadConfig(path string) (config Config, err error) {
	if err := godotenv.Load(filepath.Join(path, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("WARN: Failed to load .env file: %v", err)
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", DriverMemory)
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "gymdesk")
	v.SetDefault("catalog.seed_file", "")
	v.SetDefault("catalog.gym_id", "gym_001")
	v.SetDefault("catalog.gym_name", "Combat Bible Gym")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("jwt.secret", DefaultJWTSecret)
	v.SetDefault("jwt.expiration", "12h")
	v.SetDefault("ai.provider", ProviderStatic)
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "gemini-2.5-flash")
	v.SetDefault("ai.variations", 3)

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	// Duration strings ("12h") decode straight into time.Duration.
	if err = v.Unmarshal(&config); err != nil {
		return
	}
	return config, config.validate()
}

func (c Config) validate() error {
	switch c.Database.Driver {
	case DriverMemory, DriverMongo:
	default:
		return errors.New("database.driver must be memory or mongo")
	}
	switch c.AI.Provider {
	case ProviderStatic, ProviderGemini:
	default:
		return errors.New("ai.provider must be static or gemini")
	}
	if c.AI.Provider == ProviderGemini && c.AI.APIKey == "" {
		return errors.New("ai.api_key is required for the gemini provider")
	}
	if c.AI.Variations < 1 {
		return errors.New("ai.variations must be positive")
	}
	return nil
}
