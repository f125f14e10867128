package parse

import (
	"context"

	"github.com/artuross/watchexpr/internal/log/semconv"
	"github.com/artuross/watchexpr/internal/watchexpr/ast"
	"github.com/artuross/watchexpr/internal/watchexpr/parser"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type Result struct {
	Expression string
	Expr       ast.Expr
	Err        error
}

// ParseAll parses every expression on its own goroutine, at most limit at a
// time. Results keep the order of expressions; a failing expression does not
// stop the others.
func ParseAll(ctx context.Context, expressions []string, limit int, opts ...parser.Option) []Result {
	results := make([]Result, len(expressions))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(limit)

	for index, expression := range expressions {
		group.Go(func() error {
			logger := zerolog.Ctx(ctx).With().
				Str(semconv.ParseID, uuid.NewString()).
				Int(semconv.ArgumentIndex, index).
				Str(semconv.Expression, expression).
				Logger()

			expr, err := parser.ParseString(logger.WithContext(ctx), expression, opts...)
			if err != nil {
				logger.Debug().Err(err).Msg("parse failed")
			}

			results[index] = Result{
				Expression: expression,
				Expr:       expr,
				Err:        err,
			}

			return nil
		})
	}

	// goroutines never return an error
	_ = group.Wait()

	return results
}
