package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the service.
type Config struct {
	Port            int           `env:"PORT" validate:"min=1,max=65535"`
	LogLevel        string        `env:"LOG_LEVEL" validate:"loglevel"`
	SeedFile        string        `env:"SEED_FILE" validate:"omitempty,seedfile"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
}

var defaultConfig = Config{
	Port:            3000,
	LogLevel:        "info",
	SeedFile:        "",
	ShutdownTimeout: 10 * time.Second,
}

// RunAddr is the address the HTTP server listens on.
func (c *Config) RunAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func validateSeedFile(fieldLevel validator.FieldLevel) bool {
	info, err := os.Stat(fieldLevel.Field().String())

	return err == nil && !info.IsDir()
}

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	switch fieldLevel.Field().String() {
	case "debug", "info", "warn", "error", "fatal":
		return true
	}

	return false
}

func (c *Config) validate() error {
	validate := validator.New()

	err := validate.RegisterValidation("loglevel", validateLogLevel)
	if err != nil {
		return err
	}

	err = validate.RegisterValidation("seedfile", validateSeedFile)
	if err != nil {
		return err
	}

	return validate.Struct(c)
}

type InitOption func(*initOptions)

type initOptions struct {
	disableFlagsParsing bool
	args                []string
}

// WithDisableFlagsParsing skips command-line flags entirely.
func WithDisableFlagsParsing(disableFlagsParsing bool) InitOption {
	return func(options *initOptions) {
		options.disableFlagsParsing = disableFlagsParsing
	}
}

// WithArgs parses args instead of os.Args[1:].
func WithArgs(args []string) InitOption {
	return func(options *initOptions) {
		options.args = args
	}
}

func applyEnv(values *Config) error {
	var valuesFromEnv Config
	err := env.Parse(&valuesFromEnv)
	if err != nil {
		return err
	}

	if valuesFromEnv.Port != 0 {
		values.Port = valuesFromEnv.Port
	}

	if valuesFromEnv.LogLevel != "" {
		values.LogLevel = valuesFromEnv.LogLevel
	}

	if valuesFromEnv.SeedFile != "" {
		values.SeedFile = valuesFromEnv.SeedFile
	}

	if valuesFromEnv.ShutdownTimeout != 0 {
		values.ShutdownTimeout = valuesFromEnv.ShutdownTimeout
	}

	return nil
}

func applyFlags(values *Config, args []string) error {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.IntVar(&values.Port, "p", values.Port, "port to run server on")
	flags.StringVar(&values.LogLevel, "l", values.LogLevel, "logger level")
	flags.StringVar(&values.SeedFile, "s", values.SeedFile, "JSON file with the initial users and books")
	flags.DurationVar(&values.ShutdownTimeout, "t", values.ShutdownTimeout, "graceful shutdown timeout")

	return flags.Parse(args)
}

// New builds the configuration from defaults, then the environment (a
// .env file included), then command-line flags, each overriding the
// previous one.
func New(optionsProto ...InitOption) (*Config, error) {
	options := &initOptions{
		disableFlagsParsing: false,
		args:                os.Args[1:],
	}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Unable to load .env file: %v", err)
	}

	values := defaultConfig

	err = applyEnv(&values)
	if err != nil {
		return nil, err
	}

	if !options.disableFlagsParsing {
		err = applyFlags(&values, options.args)
		if err != nil {
			return nil, err
		}
	}

	err = values.validate()
	if err != nil {
		return nil, err
	}

	return &values, nil
}
