package parser

import (
	"context"
	"errors"
	"fmt"

	"github.com/artuross/watchexpr/internal/log/semconv"
	"github.com/artuross/watchexpr/internal/watchexpr/ast"
	"github.com/artuross/watchexpr/internal/watchexpr/token"
	"github.com/rs/zerolog"
)

var (
	ErrEmptyExpression = errors.New("empty expression")
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrUnterminated    = errors.New("unterminated expression")
)

// SyntaxError reports the token at which parsing was abandoned.
type SyntaxError struct {
	Token token.Token
	Err   error
}

func (e *SyntaxError) Error() string {
	start := e.Token.Position.Start

	if e.Token.Content != "" {
		return fmt.Sprintf("%d:%d: %s %q: %s", start.Line, start.Column, e.Token.Kind, e.Token.Content, e.Err)
	}

	return fmt.Sprintf("%d:%d: %s: %s", start.Line, start.Column, e.Token.Kind, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Builder owns the root of an expression tree and feeds it one token at a
// time. When the root rejects a token it is promoted into a member access,
// index access or invocation if the token allows it.
type Builder struct {
	root   ast.Expr
	logger *zerolog.Logger
}

func NewBuilder(ctx context.Context) *Builder {
	return &Builder{
		logger: zerolog.Ctx(ctx),
	}
}

// Root returns the tree built so far. It may be incomplete.
func (b *Builder) Root() ast.Expr {
	return b.root
}

func (b *Builder) Feed(tok token.Token) error {
	if b.root == nil {
		root, err := ast.NewLeaf(tok)
		if err != nil {
			return &SyntaxError{Token: tok, Err: ErrUnexpectedToken}
		}

		b.root = root

		return nil
	}

	accepted, err := b.root.Parse(tok)
	if err != nil {
		return &SyntaxError{Token: tok, Err: err}
	}

	if accepted {
		b.logger.Trace().Str(semconv.TokenKind, string(tok.Kind)).Msg("token accepted")

		return nil
	}

	if !b.root.Completed() || !tok.Kind.IsContinuation() {
		return &SyntaxError{Token: tok, Err: ErrUnexpectedToken}
	}

	promoted, _, err := ast.Promote(b.root, tok.Kind)
	if err != nil {
		return &SyntaxError{Token: tok, Err: err}
	}

	b.logger.Debug().
		Str(semconv.TokenKind, string(tok.Kind)).
		Str(semconv.NodeType, fmt.Sprintf("%T", promoted)).
		Msg("root promoted")

	// the continuation token is consumed by the promotion itself
	b.root = promoted

	return nil
}

// Finish returns the completed tree.
func (b *Builder) Finish() (ast.Expr, error) {
	if b.root == nil {
		return nil, ErrEmptyExpression
	}

	if !b.root.Completed() {
		return nil, ErrUnterminated
	}

	return b.root, nil
}
