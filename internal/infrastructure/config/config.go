package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// ErrorLogPath is the append-only sink the critical error reporter
	// writes to.
	ErrorLogPath string `env:"ERROR_LOG_PATH, default=error.log"`

	Mongo MongoConfig
	Redis RedisConfig
	SMTP  SMTPConfig
	Jobs  JobsConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=taskboard"`
}

// RedisConfig is shared by the realtime pub/sub channel and the email
// queue broker.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST, default=smtp.gmail.com"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"PROJECT_EMAIL"`
	Password string `env:"PROJECT_EMAIL_PASSWORD"`
	From     string `env:"MAIL_FROM"`
}

type JobsConfig struct {
	// DueDateCron fires the daily due-date sweep (5-field cron spec).
	DueDateCron string `env:"DUE_DATE_CRON, default=0 9 * * *"`
	// ResourceCron fires the resource-pressure sweep.
	ResourceCron string `env:"RESOURCE_CRON, default=*/5 * * * *"`
	// EmailWorkers is the concurrency of the email queue consumer.
	EmailWorkers int `env:"EMAIL_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
