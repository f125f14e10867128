package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/artuross/watchexpr/internal/commandinit"
	"github.com/artuross/watchexpr/internal/commands/parse"
	"github.com/artuross/watchexpr/internal/commands/parse/config"
	"github.com/artuross/watchexpr/internal/defaults"
	"github.com/artuross/watchexpr/internal/watchexpr/parser"
	"github.com/peterh/liner"
	cli "github.com/urfave/cli/v2"
)

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "Reads watch expressions interactively and prints their trees.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "output",
				Usage: "Output format: tree, source or json. Defaults to $WATCHEXPR_OUTPUT or tree.",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level. Defaults to $WATCHEXPR_LOG_LEVEL or warn.",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "Export parse spans over OTLP.",
			},
			&cli.StringFlag{
				Name:  "history-file",
				Usage: "File to load and save input history.",
				Value: filepath.Join(os.TempDir(), ".watchexpr_history"),
			},
		},
		Action: run,
	}
}

func run(cliCtx *cli.Context) error {
	ctx := cliCtx.Context

	// single expression at a time
	flags := fixedConcurrency{cliCtx}

	cfg, err := config.Read(flags, os.Getenv)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := parse.NewLogger(cliCtx.App.ErrWriter, cfg.LogLevel).With().Str("command", "repl").Logger()
	ctx = logger.WithContext(ctx)

	config.Log(&logger, cfg)

	tracerProvider, tpShutdown, err := commandinit.NewTracerProvider(ctx, defaults.ServiceName, cfg.Trace)
	if err != nil {
		logger.Error().Err(err).Msg("init OTEL provider")
		return parse.ErrCommandFailed
	}
	defer tpShutdown(ctx)

	out := cliCtx.App.Writer
	session := NewSession(out, cfg.Output, parser.WithTracerProvider(tracerProvider))

	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)

	historyFile := cliCtx.String("history-file")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	defer func() {
		f, err := os.Create(historyFile)
		if err != nil {
			logger.Warn().Err(err).Msg("save history")
			return
		}
		defer f.Close()

		_, _ = line.WriteHistory(f)
	}()

	fmt.Fprintln(out, "Type 'exit' or Ctrl+D to quit")

	for {
		input, err := line.Prompt(session.Prompt())
		if err == liner.ErrPromptAborted {
			if session.Pending() {
				fmt.Fprintln(out, "^C (cleared)")
			}

			session.Reset()
			continue
		}
		if err == io.EOF {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		trimmed := strings.TrimSpace(input)
		if !session.Pending() && (trimmed == "exit" || trimmed == "quit") {
			return nil
		}

		if trimmed != "" {
			line.AppendHistory(input)
		}

		if err := session.Handle(ctx, input); err != nil {
			logger.Error().Err(err).Msg("write expression")
		}
	}
}

type fixedConcurrency struct {
	*cli.Context
}

func (f fixedConcurrency) Int(name string) int {
	if name == "concurrency" {
		return 1
	}

	return f.Context.Int(name)
}
