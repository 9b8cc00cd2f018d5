package config

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Uploads   UploadsConfig   `mapstructure:"uploads"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	NameSync  NameSyncConfig  `mapstructure:"namesync"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Expire int64  `mapstructure:"expire"` // hours
}

type UploadsConfig struct {
	CloudinaryURL string `mapstructure:"cloudinary_url"`
}

type RateLimitConfig struct {
	// Public endpoints allow this many requests per second per IP.
	PublicPerSecond float64 `mapstructure:"public_per_second"`
	PublicBurst     int     `mapstructure:"public_burst"`
	// Forum members may submit one post per this many seconds.
	PostCooldownSeconds int64 `mapstructure:"post_cooldown_seconds"`
}

type NameSyncConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Spec    string `mapstructure:"spec"` // cron spec, e.g. @hourly
}

var Global Config

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt secret must be set")
	}
	if c.Mongo.URI == "" {
		return errors.New("mongo uri must be set")
	}
	return nil
}

// Load reads .env, the optional yaml config file and environment variables
// into Global. Fatal on invalid configuration.
func Load() {
	// .env holds local secrets; missing file is fine.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("mongo.uri", "mongodb://127.0.0.1:27017")
	viper.SetDefault("mongo.database", "societyhub")
	viper.SetDefault("jwt.expire", 24)
	viper.SetDefault("ratelimit.public_per_second", 5)
	viper.SetDefault("ratelimit.public_burst", 10)
	viper.SetDefault("ratelimit.post_cooldown_seconds", 3600)
	viper.SetDefault("namesync.enabled", true)
	viper.SetDefault("namesync.spec", "@hourly")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: config file not found, using defaults and env vars: %v", err)
	}

	viper.AutomaticEnv()

	if err := viper.Unmarshal(&Global); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}

	// Env vars win over file values for the deployment-critical settings.
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		Global.Mongo.URI = uri
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		Global.JWT.Secret = secret
	}
	if cld := os.Getenv("CLOUDINARY_URL"); cld != "" {
		Global.Uploads.CloudinaryURL = cld
	}
	if port := os.Getenv("PORT"); port != "" {
		Global.Server.Port = port
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		Global.Server.Mode = mode
	}

	if err := Global.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}
}
