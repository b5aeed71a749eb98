// Package config loads the application configuration from defaults,
// environment variables, and command-line flags (in increasing priority),
// and validates the resulting values.
package config

import (
	"flag"
	"log"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the service.
type Config struct {
	RunAddr                   string        `env:"SERVER_ADDRESS" validate:"hostname_port"`
	LogLevel                  string        `env:"LOG_LEVEL" validate:"loglevel"`
	DatabaseDSN               string        `env:"DATABASE_DSN"`
	DBConnectionTimeout       time.Duration `env:"DB_CONNECTION_TIMEOUT"`
	MigrationsDir             string        `env:"MIGRATIONS_DIR"`
	EnableVerboseErrorLogging bool          `env:"ENABLE_GLOBAL_ERROR_LOGGING"`
}

var defaultConfig = Config{
	RunAddr:             ":5000",
	LogLevel:            "info",
	DatabaseDSN:         "",
	DBConnectionTimeout: 10 * time.Second,
	MigrationsDir:       "cmd/courseapi/migrations",
}

func applyDefaults(values *Config, defaults Config) {
	if values.RunAddr == "" {
		values.RunAddr = defaults.RunAddr
	}
	if values.LogLevel == "" {
		values.LogLevel = defaults.LogLevel
	}
	if values.DatabaseDSN == "" {
		values.DatabaseDSN = defaults.DatabaseDSN
	}
	if values.DBConnectionTimeout == 0 {
		values.DBConnectionTimeout = defaults.DBConnectionTimeout
	}
	if values.MigrationsDir == "" {
		values.MigrationsDir = defaults.MigrationsDir
	}
}

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	value := fieldLevel.Field().String()

	allowedLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
	}

	return allowedLogLevels[value]
}

func (c *Config) validate() error {
	validate := validator.New()

	err := validate.RegisterValidation("loglevel", validateLogLevel)
	if err != nil {
		return err
	}

	return validate.Struct(c)
}

// InitOption configures the behavior of New.
type InitOption func(*initOptions)

type initOptions struct {
	disableFlagsParsing bool
}

// WithDisableFlagsParsing disables command-line flag parsing.
// Tests use it to avoid touching the global flag set.
func WithDisableFlagsParsing(disableFlagsParsing bool) InitOption {
	return func(options *initOptions) {
		options.disableFlagsParsing = disableFlagsParsing
	}
}

// New builds a Config from defaults, the environment (optionally seeded from
// a .env file), and command-line flags. Flags win over environment values,
// which win over defaults.
func New(optionsProto ...InitOption) (*Config, error) {
	options := &initOptions{
		disableFlagsParsing: false,
	}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("Unable to load .env file: %v", err)
	}

	values := &Config{}

	var valuesFromEnv Config
	if err := env.Parse(&valuesFromEnv); err != nil {
		return nil, err
	}
	*values = valuesFromEnv

	applyDefaults(values, defaultConfig)

	if !options.disableFlagsParsing {
		flag.StringVar(&values.RunAddr, "a", values.RunAddr, "address and port to run server")
		flag.StringVar(&values.LogLevel, "l", values.LogLevel, "logger level")
		flag.StringVar(&values.DatabaseDSN, "d", values.DatabaseDSN, "a string with the database connection details")
		flag.DurationVar(&values.DBConnectionTimeout, "t", values.DBConnectionTimeout, "database connection timeout")
		flag.StringVar(&values.MigrationsDir, "m", values.MigrationsDir, "directory with goose migration files")
		flag.BoolVar(
			&values.EnableVerboseErrorLogging,
			"v",
			values.EnableVerboseErrorLogging,
			"log the details of unhandled handler errors",
		)
		flag.Parse()
	}

	if err := values.validate(); err != nil {
		return nil, err
	}

	return values, nil
}
