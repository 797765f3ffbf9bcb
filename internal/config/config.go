package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	JWT      JWTConfig
	Executor ExecutorConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DBConfig struct {
	Host    string
	Port    int
	User    string
	Pass    string
	Name    string
	SSLMode string
	DSN     string
}

type JWTConfig struct {
	SecretKey            string
	AccessTokenExpiresIn time.Duration
}

// ExecutorConfig bounds the single outbound HTTP call a test run makes.
type ExecutorConfig struct {
	RequestTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	dbPort, err := strconv.Atoi(os.Getenv("DB_PORT"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %v", err)
	}

	dBConfig := DBConfig{
		Host:    os.Getenv("DB_HOST"),
		Port:    dbPort,
		User:    os.Getenv("DB_USER"),
		Pass:    os.Getenv("DB_PASS"),
		Name:    os.Getenv("DB_NAME"),
		SSLMode: os.Getenv("DB_SSLMODE"),
	}
	dBConfig.DSN = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dBConfig.Host, dBConfig.Port, dBConfig.User, dBConfig.Pass, dBConfig.Name, dBConfig.SSLMode,
	)

	serverConfig := ServerConfig{
		Port:         os.Getenv("SERVER_PORT"),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	jwtConfig := JWTConfig{
		SecretKey:            os.Getenv("JWT_SECRET"),
		AccessTokenExpiresIn: 24 * time.Hour,
	}
	if jwtConfig.SecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	if v := os.Getenv("JWT_EXPIRES_IN_MINUTES"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRES_IN_MINUTES: %v", err)
		}
		jwtConfig.AccessTokenExpiresIn = time.Duration(minutes) * time.Minute
	}

	executorConfig := ExecutorConfig{
		RequestTimeout: 30 * time.Second,
	}
	if v := os.Getenv("EXECUTOR_TIMEOUT_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return nil, fmt.Errorf("invalid EXECUTOR_TIMEOUT_MS: %q", v)
		}
		executorConfig.RequestTimeout = time.Duration(ms) * time.Millisecond
	}

	return &Config{
		Server:   serverConfig,
		DB:       dBConfig,
		JWT:      jwtConfig,
		Executor: executorConfig,
	}, nil
}
