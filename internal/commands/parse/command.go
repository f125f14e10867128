package parse

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/artuross/watchexpr/internal/commandinit"
	"github.com/artuross/watchexpr/internal/commands/parse/config"
	"github.com/artuross/watchexpr/internal/defaults"
	"github.com/artuross/watchexpr/internal/log/semconv"
	"github.com/artuross/watchexpr/internal/watchexpr/ast"
	"github.com/artuross/watchexpr/internal/watchexpr/format"
	"github.com/artuross/watchexpr/internal/watchexpr/parser"
	"github.com/rs/zerolog"
	cli "github.com/urfave/cli/v2"
)

var ErrCommandFailed = errors.New("command failed")

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parses watch expressions and prints their trees.",
		ArgsUsage: "EXPR...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "output",
				Usage: "Output format: tree, source or json. Defaults to $WATCHEXPR_OUTPUT or tree.",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level. Defaults to $WATCHEXPR_LOG_LEVEL or warn.",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "Maximum number of expressions parsed at the same time.",
				Value: 4,
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "Export parse spans over OTLP.",
			},
		},
		Action: run,
	}
}

func run(cliCtx *cli.Context) error {
	ctx := cliCtx.Context

	cfg, err := config.Read(cliCtx, os.Getenv)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := NewLogger(cliCtx.App.ErrWriter, cfg.LogLevel).With().Str("command", "parse").Logger()
	ctx = logger.WithContext(ctx)

	config.Log(&logger, cfg)

	if cliCtx.NArg() == 0 {
		return errors.New("at least one expression is required")
	}

	tracerProvider, tpShutdown, err := commandinit.NewTracerProvider(ctx, defaults.ServiceName, cfg.Trace)
	if err != nil {
		logger.Error().Err(err).Msg("init OTEL provider")
		return ErrCommandFailed
	}
	defer tpShutdown(ctx)

	results := ParseAll(ctx, cliCtx.Args().Slice(), cfg.Concurrency, parser.WithTracerProvider(tracerProvider))

	failed := false
	for _, result := range results {
		if result.Err != nil {
			logger.Error().Err(result.Err).Str(semconv.Expression, result.Expression).Msg("parse expression")
			failed = true

			continue
		}

		if err := Write(cliCtx.App.Writer, result.Expr, cfg.Output); err != nil {
			logger.Error().Err(err).Str(semconv.Expression, result.Expression).Msg("write expression")
			failed = true
		}
	}

	if failed {
		return ErrCommandFailed
	}

	return nil
}

func NewLogger(out io.Writer, level zerolog.Level) zerolog.Logger {
	writer := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = out
	})

	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// Write prints expr to w in the requested output format.
func Write(w io.Writer, expr ast.Expr, output config.Output) error {
	switch output {
	case config.OutputJSON:
		data, err := format.JSON(expr)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(w, "%s\n", data)
		return err

	case config.OutputSource:
		_, err := fmt.Fprintln(w, format.Source(expr))
		return err

	case config.OutputTree:
		_, err := fmt.Fprint(w, format.Tree(expr))
		return err

	default:
		return fmt.Errorf("unsupported output: %s", output)
	}
}
