// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"APP_ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	HTTPServer              `yaml:"http_server"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitMQ                `yaml:"rabbitmq"`
	Auth                    `yaml:"auth"`
	Stripe                  `yaml:"stripe"`
	OpenAI                  `yaml:"openai"`
	SMTP                    `yaml:"smtp"`
	Streak                  `yaml:"streak"`
	RateLimit               `yaml:"rate_limit"`
	Scheduler               `yaml:"scheduler"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	RedisAddress     string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	RedisPassword    string        `yaml:"password" env:"REDIS_PASSWORD"`
	RedisUser        string        `yaml:"user"`
	RedisDB          int           `yaml:"db"`
	RedisMaxRetries  int           `yaml:"max_retries"`
	RedisDialTimeout time.Duration `yaml:"dial_timeout"`
	RedisTimeout     time.Duration `yaml:"timeoutredis"`
}

// RabbitMQ структура для подключения к брокеру уведомлений
type RabbitMQ struct {
	RabbitMQURL        string        `yaml:"url" env:"RABBITMQ_URL"`
	RabbitMQMaxRetries int           `yaml:"max_retries" env-default:"5"`
	RabbitMQRetryDelay time.Duration `yaml:"retry_delay" env-default:"3s"`
}

// Auth настройки проверки токенов внешнего провайдера идентификации.
// Если задан JWKSURL, токены проверяются по публичным ключам провайдера,
// иначе используется общий секрет HMAC.
type Auth struct {
	JWTSecretKey string `yaml:"jwt_secret_key" env:"AUTH_JWT_SECRET"`
	JWKSURL      string `yaml:"jwks_url" env:"AUTH_JWKS_URL"`
	Issuer       string `yaml:"issuer" env:"AUTH_ISSUER"`
	Audience     string `yaml:"audience" env:"AUTH_AUDIENCE"`
}

// Stripe настройки биллинга
type Stripe struct {
	StripeSecretKey     string `yaml:"secret_key" env:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `yaml:"webhook_secret" env:"STRIPE_WEBHOOK_SECRET"`
	StripePriceID       string `yaml:"price_id" env:"STRIPE_PRICE_ID"`
}

// OpenAI настройки AI-коуча. Пустой ключ включает заготовленные ответы.
type OpenAI struct {
	OpenAIKey   string `yaml:"api_key" env:"OPENAI_API_KEY"`
	OpenAIModel string `yaml:"model" env-default:"gpt-3.5-turbo"`
}

// SMTP настройки почтового транспорта для воркера рассылки
type SMTP struct {
	SMTPHost string `yaml:"host" env:"SMTP_HOST"`
	SMTPPort string `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	SMTPUser string `yaml:"user" env:"SMTP_USER"`
	SMTPPass string `yaml:"password" env:"SMTP_PASSWORD"`
}

// Streak параметры подсчета серий
type Streak struct {
	DailyGoal int    `yaml:"daily_goal" env-default:"4"`
	TimeZone  string `yaml:"time_zone" env-default:"UTC"`
}

// RateLimit ограничение частоты запросов к AI-коучу на одного пользователя
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"1"`
	Burst int     `yaml:"burst" env-default:"3"`
}

// Scheduler настройки планировщика напоминаний
type Scheduler struct {
	Interval time.Duration `yaml:"interval" env-default:"1h"`
}

// Location возвращает часовой пояс, в котором считаются календарные дни серий.
func (s Streak) Location() *time.Location {
	loc, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// MustLoad функция для загрузки конфига, путь берется из переменной CONFIG_PATH
func MustLoad() *Config {
	// .env необязателен, переменные окружения могут прийти из оркестратора
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Redis:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"RabbitMQ:\n"+
			"  MaxRetries: %d\n"+
			"Streak:\n"+
			"  DailyGoal: %d\n"+
			"  TimeZone: %s\n"+
			"Billing enabled: %t\n"+
			"OpenAI enabled: %t\n",
		c.Env,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.RedisAddress,
		c.RedisDB,
		c.RabbitMQMaxRetries,
		c.DailyGoal,
		c.TimeZone,
		c.StripeSecretKey != "",
		c.OpenAIKey != "",
	)
}
