package config

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"
)

type Flagger interface {
	String(name string) string
	Int(name string) int
	Bool(name string) bool
}

type Output string

const (
	OutputJSON   Output = "json"
	OutputSource Output = "source"
	OutputTree   Output = "tree"
)

type Config struct {
	Concurrency int
	LogLevel    zerolog.Level
	Output      Output
	Trace       bool
}

func Read(flags Flagger, getEnv func(string) string) (*Config, error) {
	// flags win over envs
	output := flags.String("output")
	if output == "" {
		output = getEnv("WATCHEXPR_OUTPUT")
	}
	if output == "" {
		output = string(OutputTree)
	}

	if !slices.Contains([]Output{OutputJSON, OutputSource, OutputTree}, Output(output)) {
		return nil, fmt.Errorf("flag --output must be one of json, source, tree; got %q", output)
	}

	level := flags.String("log-level")
	if level == "" {
		level = getEnv("WATCHEXPR_LOG_LEVEL")
	}
	if level == "" {
		level = zerolog.WarnLevel.String()
	}

	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("flag --log-level: %w", err)
	}

	concurrency := flags.Int("concurrency")
	if concurrency < 1 {
		return nil, fmt.Errorf("flag --concurrency must be positive; got %d", concurrency)
	}

	cfg := Config{
		Concurrency: concurrency,
		LogLevel:    logLevel,
		Output:      Output(output),
		Trace:       flags.Bool("trace"),
	}

	return &cfg, nil
}

// Log writes the effective config at debug level.
func Log(logger *zerolog.Logger, cfg *Config) {
	logger.Debug().
		Int("concurrency", cfg.Concurrency).
		Str("log_level", cfg.LogLevel.String()).
		Str("output", string(cfg.Output)).
		Bool("trace", cfg.Trace).
		Msg("running with config")
}
