package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type CacheBackend string

const (
	CacheBackendLRU   CacheBackend = "lru"
	CacheBackendRedis CacheBackend = "redis"
)

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"Europe/Warsaw"`
		LogLevel string      `env:"APP_LOG_LEVEL" envDefault:"INFO"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	BookingAPI struct {
		URL     string        `env:"BOOKING_API_URL" envDefault:"http://localhost:5000"`
		Timeout time.Duration `env:"BOOKING_API_TIMEOUT" envDefault:"30s"`
	}

	Booking struct {
		ResetDelay time.Duration `env:"BOOKING_RESET_DELAY" envDefault:"5s"`
	}

	Session struct {
		EventsPerSecond float64  `env:"SESSION_EVENTS_PER_SECOND" envDefault:"20"`
		EventsBurst     int      `env:"SESSION_EVENTS_BURST" envDefault:"40"`
		AllowedOrigins  []string `env:"SESSION_ALLOWED_ORIGINS" envSeparator:","`
	}

	Auth struct {
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"booking_metrics:booking_metrics"`
		BasicClients       []ConfigBasicClient
	}

	RabbitMQ struct {
		Enabled  bool   `env:"RABBITMQ_ENABLED"`
		URL      string `env:"RABBITMQ_URL"`
		Exchange string `env:"RABBITMQ_EXCHANGE" envDefault:"clinic"`
		Queue    string `env:"RABBITMQ_QUEUE" envDefault:"booking_controller"`
		Bind     string `env:"RABBITMQ_BIND" envDefault:"*.*.termin.*.*,*.*.lekarz.*.*,*.*._all_.*.*"`
	}

	Cache struct {
		Enabled bool          `env:"CACHE_ENABLED"`
		Backend CacheBackend  `env:"CACHE_BACKEND" envDefault:"lru"`
		Size    int           `env:"CACHE_DOCTORS_SIZE" envDefault:"500"`
		TTL     time.Duration `env:"CACHE_DOCTORS_TTL" envDefault:"10m"`
	}

	Redis struct {
		Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
		Password string `env:"REDIS_PASSWORD"`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Metrics struct {
		Enabled bool `env:"METRICS_ENABLED" envDefault:"true"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Приведение окружения к нижнему регистру для унификации
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))
	cfg.Cache.Backend = CacheBackend(strings.ToLower(string(cfg.Cache.Backend)))
	cfg.BookingAPI.URL = strings.TrimRight(cfg.BookingAPI.URL, "/")

	// Разделение клиентов basic auth
	cfg.Auth.BasicClients = parseBasicClients(cfg.Auth.BasicClientsString)

	// Если RabbitMQ не включен, то кэш тоже не включаем: инвалидировать его будет некому
	if !cfg.RabbitMQ.Enabled {
		cfg.Cache.Enabled = false
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.BookingAPI.URL == "" {
		return fmt.Errorf("config: BOOKING_API_URL is required")
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("config: RABBITMQ_URL is required when RABBITMQ_ENABLED")
	}
	if c.Cache.Enabled && c.Cache.Backend != CacheBackendLRU && c.Cache.Backend != CacheBackendRedis {
		return fmt.Errorf("config: unknown CACHE_BACKEND %q", c.Cache.Backend)
	}
	if c.Session.EventsPerSecond <= 0 || c.Session.EventsBurst <= 0 {
		return fmt.Errorf("config: session rate limit must be positive")
	}
	return nil
}

func parseBasicClients(str string) []ConfigBasicClient {
	clients := []ConfigBasicClient{}
	for _, pair := range strings.Split(str, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
		if len(parts) == 2 && parts[0] != "" {
			clients = append(clients, ConfigBasicClient{
				Username: parts[0],
				Password: parts[1],
			})
		}
	}
	return clients
}

// RabbitMQBindings — ключи привязки очереди к exchange.
func (c *Config) RabbitMQBindings() []string {
	var keys []string
	for _, key := range strings.Split(c.RabbitMQ.Bind, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
