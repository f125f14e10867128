package parser

import (
	"context"
	"fmt"
	"io"

	"github.com/artuross/watchexpr/internal/defaults"
	"github.com/artuross/watchexpr/internal/watchexpr/ast"
	"github.com/artuross/watchexpr/internal/watchexpr/lexer"
	"github.com/artuross/watchexpr/internal/watchexpr/token"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type Lexer interface {
	ReadToken() (*token.Token, error)
}

type Option func(*Parser)

func WithTracerProvider(tracerProvider trace.TracerProvider) Option {
	return func(p *Parser) {
		p.tracer = tracerProvider.Tracer("github.com/artuross/watchexpr/internal/watchexpr/parser")
	}
}

type Parser struct {
	lexer  Lexer
	tracer trace.Tracer
}

func NewParser(lexer Lexer, opts ...Option) *Parser {
	parser := Parser{
		lexer:  lexer,
		tracer: defaults.TraceProvider.Tracer("github.com/artuross/watchexpr/internal/watchexpr/parser"),
	}

	for _, apply := range opts {
		apply(&parser)
	}

	return &parser
}

// Parse reads tokens until the lexer is exhausted and returns the completed
// expression tree.
func (p *Parser) Parse(ctx context.Context) (ast.Expr, error) {
	ctx, span := p.tracer.Start(ctx, "parse")
	defer span.End()

	expr, count, err := p.parse(ctx)
	span.SetAttributes(attribute.Int("watchexpr.token_count", count))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	return expr, nil
}

func (p *Parser) parse(ctx context.Context) (ast.Expr, int, error) {
	builder := NewBuilder(ctx)

	var (
		count int
		last  *token.Token
	)

	for {
		tok, err := p.lexer.ReadToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			if last != nil {
				end := last.Position.End
				return nil, count, fmt.Errorf("read token after %d:%d: %w", end.Line, end.Column, err)
			}

			return nil, count, fmt.Errorf("read token: %w", err)
		}

		if err := builder.Feed(*tok); err != nil {
			return nil, count, err
		}

		count++
		last = tok
	}

	expr, err := builder.Finish()
	if err != nil {
		return nil, count, err
	}

	return expr, count, nil
}

func ParseString(ctx context.Context, input string, opts ...Option) (ast.Expr, error) {
	return NewParser(lexer.NewLexer(input), opts...).Parse(ctx)
}
