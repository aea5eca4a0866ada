package config

import (
	"errors"
	"os"

	"github.com/KOFI-GYIMAH/github-repos/pkg/logger"
	"github.com/joho/godotenv"
)

type Config struct {
	GitHubUsername string
	GitHubToken    string
	GitHubAPIURL   string
	DBURL          string
	MigrationsURL  string
	RabbitMQURL    string
	ServerPort     string
	Debug          bool
}

// * LoadConfiguration reads the .env file, if any, then the environment and
// * returns a pointer to a Config. GitHub credentials are required; the
// * journal database and broker are optional.
func LoadConfiguration() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		GitHubUsername: os.Getenv("GITHUB_USERNAME"),
		GitHubToken:    os.Getenv("GITHUB_TOKEN"),
		GitHubAPIURL:   os.Getenv("GITHUB_API_URL"),
		DBURL:          os.Getenv("DB_URL"),
		MigrationsURL:  os.Getenv("MIGRATIONS_URL"),
		RabbitMQURL:    os.Getenv("RABBITMQ_URL"),
		ServerPort:     os.Getenv("SERVER_PORT"),
		Debug:          os.Getenv("DEBUG") == "true",
	}

	if cfg.GitHubUsername == "" {
		return nil, errors.New("GITHUB_USERNAME is required")
	}

	if cfg.GitHubToken == "" {
		return nil, errors.New("GITHUB_TOKEN is required")
	}

	if cfg.MigrationsURL == "" {
		cfg.MigrationsURL = "file://migrations"
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = ":8081"
	}

	logger.Info("✅ env content loaded successfully 🎉")
	return cfg, nil
}
