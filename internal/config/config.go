// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env"`
	StorageConnectionString string `yaml:"storage_connection_string"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	RabbitMQ                `yaml:"rabbitmq"`
	FCM                     `yaml:"fcm"`
	Gemini                  `yaml:"gemini"`
	Reminder                `yaml:"reminder"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// JWTToken структура для работы с парой jwt-токенов
type JWTToken struct {
	AccessSecretKey  string        `yaml:"access_secret_key"`
	RefreshSecretKey string        `yaml:"refresh_secret_key"`
	AccessTokenTTL   time.Duration `yaml:"access_token_ttl" env-default:"900s"`
}

// RabbitMQ структура для настройки подключения к брокеру очередей
type RabbitMQ struct {
	RabbitMQURL        string        `yaml:"url"`
	RabbitMQMaxRetries int           `yaml:"max_retries" env-default:"10"`
	RabbitMQRetryDelay time.Duration `yaml:"retry_delay" env-default:"3s"`
}

// FCM структура для настройки клиента push-уведомлений
type FCM struct {
	FCMServerKey string `yaml:"server_key" env:"FCM_SERVER_KEY"`
}

// Gemini структура для настройки клиента генеративного API
type Gemini struct {
	GeminiAPIKey  string `yaml:"api_key" env:"GEMINI_API_KEY"`
	GeminiModel   string `yaml:"model" env-default:"gemini-2.0-flash"`
	GeminiBaseURL string `yaml:"base_url" env-default:"https://generativelanguage.googleapis.com/v1beta"`
}

// Reminder структура для настройки ежедневного сканера напоминаний
type Reminder struct {
	ReminderHour int `yaml:"hour" env-default:"9"`
}

// MustLoad функция для загрузки конфига, путь берётся из CONFIG_PATH
func MustLoad() *Config {
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
