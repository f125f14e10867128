package config_test

import (
	"testing"

	"github.com/artuross/watchexpr/internal/commands/parse/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFlags struct {
	strings map[string]string
	ints    map[string]int
	bools   map[string]bool
}

func (f fakeFlags) String(name string) string { return f.strings[name] }
func (f fakeFlags) Int(name string) int       { return f.ints[name] }
func (f fakeFlags) Bool(name string) bool     { return f.bools[name] }

func envs(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestRead(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		flags := fakeFlags{ints: map[string]int{"concurrency": 4}}

		cfg, err := config.Read(flags, envs(nil))
		require.NoError(t, err)

		assert.Equal(t, &config.Config{
			Concurrency: 4,
			LogLevel:    zerolog.WarnLevel,
			Output:      config.OutputTree,
		}, cfg)
	})

	t.Run("envs", func(t *testing.T) {
		flags := fakeFlags{ints: map[string]int{"concurrency": 1}}

		cfg, err := config.Read(flags, envs(map[string]string{
			"WATCHEXPR_OUTPUT":    "json",
			"WATCHEXPR_LOG_LEVEL": "debug",
		}))
		require.NoError(t, err)

		assert.Equal(t, config.OutputJSON, cfg.Output)
		assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	})

	t.Run("flags win over envs", func(t *testing.T) {
		flags := fakeFlags{
			strings: map[string]string{"output": "source", "log-level": "trace"},
			ints:    map[string]int{"concurrency": 2},
			bools:   map[string]bool{"trace": true},
		}

		cfg, err := config.Read(flags, envs(map[string]string{"WATCHEXPR_OUTPUT": "json"}))
		require.NoError(t, err)

		assert.Equal(t, &config.Config{
			Concurrency: 2,
			LogLevel:    zerolog.TraceLevel,
			Output:      config.OutputSource,
			Trace:       true,
		}, cfg)
	})

	t.Run("invalid values", func(t *testing.T) {
		testCases := map[string]fakeFlags{
			"output":      {strings: map[string]string{"output": "xml"}, ints: map[string]int{"concurrency": 1}},
			"log level":   {strings: map[string]string{"log-level": "loud"}, ints: map[string]int{"concurrency": 1}},
			"concurrency": {ints: map[string]int{"concurrency": 0}},
		}

		for name, flags := range testCases {
			t.Run(name, func(t *testing.T) {
				_, err := config.Read(flags, envs(nil))
				require.Error(t, err)
			})
		}
	})
}
