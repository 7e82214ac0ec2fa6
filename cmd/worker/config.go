package main

import (
	"strconv"

	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/shared/utils"
)

// Config holds all configuration for the worker
type Config struct {
	Environment   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SMTPHost      string
	SMTPPort      string
	SMTPFrom      string
}

// loadConfig loads configuration from environment variables
func loadConfig() *Config {
	redisDB, _ := strconv.Atoi(utils.GetEnvVariable("REDIS_DB", "0"))

	cfg := &Config{
		Environment:   utils.GetEnvVariable("APP_ENV", "development"),
		RedisAddr:     utils.GetEnvVariable("REDIS_HOST", "localhost:6379"),
		RedisPassword: utils.GetEnvVariable("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
		SMTPHost:      utils.GetEnvVariable("SMTP_HOST", "localhost"),
		SMTPPort:      utils.GetEnvVariable("SMTP_PORT", "1025"),
		SMTPFrom:      utils.GetEnvVariable("SMTP_FROM", "noreply@bookcatalog.dev"),
	}

	log.Info().
		Str("redis", cfg.RedisAddr).
		Str("smtp", cfg.SMTPHost+":"+cfg.SMTPPort).
		Msg("worker config loaded")

	return cfg
}
