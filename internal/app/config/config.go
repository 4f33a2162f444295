package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int
	JWT         JWTConfig
	Redis       RedisConfig
	Minio       MinioConfig
	SMTP        SMTPConfig
}

type JWTConfig struct {
	Token         string
	ExpiresIn     time.Duration
	SigningMethod jwt.SigningMethod
}

type RedisConfig struct {
	Host        string
	Password    string
	Port        int
	User        string
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	// Адреса бухгалтерии — получатели по умолчанию для уведомлений о платежах
	AccountsTeam []string
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

const (
	envRedisHost = "REDIS_HOST"
	envRedisPort = "REDIS_PORT"
	envRedisUser = "REDIS_USER"
	envRedisPass = "REDIS_PASSWORD"

	envMinioEndpoint  = "MINIO_ENDPOINT"
	envMinioAccessKey = "MINIO_ACCESS_KEY"
	envMinioSecretKey = "MINIO_SECRET_KEY"
	envMinioBucket    = "MINIO_BUCKET"

	envJWTSecret = "JWT_SECRET"

	envSMTPHost     = "SMTP_HOST"
	envSMTPPort     = "SMTP_PORT"
	envSMTPUser     = "SMTP_USER"
	envSMTPPass     = "SMTP_PASSWORD"
	envSMTPFrom     = "SMTP_FROM"
	envAccountsTeam = "ACCOUNTS_TEAM_EMAILS"
)

func NewConfig() (*Config, error) {
	var err error

	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")
	viper.WatchConfig()

	err = viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = viper.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	// инициализация JWT конфигурации
	jwtSecret := os.Getenv(envJWTSecret)
	if jwtSecret == "" {
		jwtSecret = "test"
	}
	cfg.JWT = JWTConfig{
		Token:         jwtSecret,
		ExpiresIn:     time.Hour,
		SigningMethod: jwt.SigningMethodHS256,
	}

	// инициализация Redis конфигурации из env
	cfg.Redis.Host = os.Getenv(envRedisHost)
	cfg.Redis.Port, err = strconv.Atoi(os.Getenv(envRedisPort))
	if err != nil {
		return nil, fmt.Errorf("redis port must be int value: %w", err)
	}
	cfg.Redis.Password = os.Getenv(envRedisPass)
	cfg.Redis.User = os.Getenv(envRedisUser)
	cfg.Redis.DialTimeout = 10 * time.Second
	cfg.Redis.ReadTimeout = 10 * time.Second

	// инициализация MinIO конфигурации из env
	cfg.Minio.Endpoint = os.Getenv(envMinioEndpoint)
	cfg.Minio.AccessKey = os.Getenv(envMinioAccessKey)
	cfg.Minio.SecretKey = os.Getenv(envMinioSecretKey)
	cfg.Minio.Bucket = os.Getenv(envMinioBucket)
	if cfg.Minio.Bucket == "" {
		cfg.Minio.Bucket = "instrument-documents"
	}

	// инициализация SMTP конфигурации из env, без SMTP_HOST письма
	// только логируются
	cfg.SMTP.Host = os.Getenv(envSMTPHost)
	if cfg.SMTP.Host != "" {
		cfg.SMTP.Port, err = strconv.Atoi(os.Getenv(envSMTPPort))
		if err != nil {
			return nil, fmt.Errorf("smtp port must be int value: %w", err)
		}
	}
	cfg.SMTP.User = os.Getenv(envSMTPUser)
	cfg.SMTP.Password = os.Getenv(envSMTPPass)
	cfg.SMTP.From = os.Getenv(envSMTPFrom)
	if raw := os.Getenv(envAccountsTeam); raw != "" {
		cfg.SMTP.AccountsTeam = strings.Split(raw, ",")
	}

	log.Info("config parsed")

	return cfg, nil
}
