package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Upload UploadConfig
	Admin  AdminConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=client_portal"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type UploadConfig struct {
	// Dir is the uploads directory, injected rather than derived from the
	// working directory so tests can use a scratch location.
	Dir string `env:"UPLOAD_DIR, default=./uploads"`
	// BodyLimit bounds request bodies (echo syntax, e.g. "32M"). Uploads
	// are read fully into memory, so this is the memory bound too.
	BodyLimit     string        `env:"UPLOAD_BODY_LIMIT,     default=32M"`
	SweepInterval time.Duration `env:"UPLOAD_SWEEP_INTERVAL, default=1h"`
	SweepGrace    time.Duration `env:"UPLOAD_SWEEP_GRACE,    default=24h"`
}

// AdminConfig seeds the administrator account at startup. Registration
// only ever produces clients, so this is the sole way an admin exists.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL"`
	Name     string `env:"ADMIN_NAME, default=Administrator"`
	Password string `env:"ADMIN_PASSWORD"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
