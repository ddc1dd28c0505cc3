package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr            string        `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type Database struct {
	Host            string        `yaml:"host" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"port" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"user" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"password" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"name" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"sslmode" env:"PG_SSLMODE" env-default:"disable"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"PG_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"PG_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"PG_CONN_MAX_LIFETIME" env-default:"30m"`
}

type Redis struct {
	Addr     string `yaml:"address" env:"REDIS_ADDR" env-default:""`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// Gate configures the API-key middleware. Both checks can be toggled
// independently per the routes they guard.
type Gate struct {
	ValidateAPIKey bool  `yaml:"validate_api_key" env:"GATE_VALIDATE_API_KEY" env-default:"false"`
	ValidateRate   bool  `yaml:"validate_rate_limits" env:"GATE_VALIDATE_RATE_LIMITS" env-default:"false"`
	MaxRequests    int64 `yaml:"max_requests_per_key" env:"GATE_MAX_REQUESTS_PER_KEY" env-default:"100"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
}

type Config struct {
	Env        string      `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer HTTPServer  `yaml:"http_server"`
	Database   Database    `yaml:"database"`
	Redis      Redis       `yaml:"redis"`
	Gate       Gate        `yaml:"gate"`
	Cache      CacheConfig `yaml:"cache"`
	APIVersion int         `yaml:"api_version" env:"API_VERSION" env-default:"1"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flagPath := flag.String("config", "", "path to the config file")
		flag.Parse()

		configPath = *flagPath

		if configPath == "" {
			log.Fatal("Config path is not set")
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}
