package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultRunAddress      = "localhost:8080"
	defaultShutdownTimeout = 5 * time.Second
	dotEnvFile             = ".env"
)

type Config struct {
	RunAddress string `env:"RUN_ADDRESS"`
	// SeedFile файл с начальными счетами и пользователями (.yaml, .toml, .json).
	SeedFile string `env:"SEED_FILE"`
	// KnownUsers дополняет список пользователей из SeedFile.
	KnownUsers      []string      `env:"KNOWN_USERS"      envSeparator:","`
	LogLevel        string        `env:"LOG_LEVEL"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// LoadConfig собирает конфигурацию из флагов args и переменных окружения. Переменные окружения имеют
// приоритет над флагами. Если в рабочей директории есть .env, он подгружается в окружение без перезаписи
// уже заданных переменных.
func LoadConfig(args []string) (*Config, error) {
	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, err
	}

	var flagsConfig, envConfig Config

	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	if flagsErr := loadFlags(&flagsConfig, args); flagsErr != nil {
		return nil, flagsErr
	}

	conf := mergeConfig(&envConfig, &flagsConfig)
	if conf.ShutdownTimeout <= 0 {
		return nil, errors.New("shutdown timeout must be positive")
	}
	return conf, nil
}

func MustLoadConfig() *Config {
	config, err := LoadConfig(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return config
}

func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %s", path, err.Error())
	}
	return nil
}

func loadFlags(flagConfig *Config, args []string) error {
	flagSet := flag.NewFlagSet("ledger", flag.ContinueOnError)

	var knownUsers string
	flagSet.StringVar(&flagConfig.RunAddress, "a", defaultRunAddress, "Run address in format host:port")
	flagSet.StringVar(&flagConfig.SeedFile, "s", "", "Seed file with accounts and known usernames")
	flagSet.StringVar(&knownUsers, "u", "", "Comma separated list of known usernames")
	flagSet.StringVar(&flagConfig.LogLevel, "l", "", "Log level (debug, info, warn, error)")
	flagSet.DurationVar(&flagConfig.ShutdownTimeout, "t", defaultShutdownTimeout, "Graceful shutdown timeout")

	if err := flagSet.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	flagConfig.KnownUsers = splitList(knownUsers)
	return nil
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	conf := &Config{
		RunAddress:      defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress),
		SeedFile:        defaultIfBlank(envConfig.SeedFile, flagsConfig.SeedFile),
		KnownUsers:      envConfig.KnownUsers,
		LogLevel:        defaultIfBlank(envConfig.LogLevel, flagsConfig.LogLevel),
		ShutdownTimeout: envConfig.ShutdownTimeout,
	}
	if len(conf.KnownUsers) == 0 {
		conf.KnownUsers = flagsConfig.KnownUsers
	}
	if conf.ShutdownTimeout == 0 {
		conf.ShutdownTimeout = flagsConfig.ShutdownTimeout
	}
	return conf
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
