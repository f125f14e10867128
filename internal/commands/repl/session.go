package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/artuross/watchexpr/internal/commands/parse"
	"github.com/artuross/watchexpr/internal/commands/parse/config"
	"github.com/artuross/watchexpr/internal/watchexpr/parser"
)

const (
	Prompt             = ">> "
	ContinuationPrompt = ".. "
)

// Session accumulates input lines until they form a complete expression.
type Session struct {
	out    io.Writer
	output config.Output
	opts   []parser.Option
	buffer strings.Builder
}

func NewSession(out io.Writer, output config.Output, opts ...parser.Option) *Session {
	return &Session{
		out:    out,
		output: output,
		opts:   opts,
	}
}

func (s *Session) Prompt() string {
	if s.buffer.Len() > 0 {
		return ContinuationPrompt
	}

	return Prompt
}

// Pending reports whether an unterminated expression is buffered.
func (s *Session) Pending() bool {
	return s.buffer.Len() > 0
}

func (s *Session) Reset() {
	s.buffer.Reset()
}

// Handle processes one input line. Incomplete expressions are kept and
// continued by the next line.
func (s *Session) Handle(ctx context.Context, line string) error {
	if s.buffer.Len() == 0 && strings.TrimSpace(line) == "" {
		return nil
	}

	if s.buffer.Len() > 0 {
		s.buffer.WriteByte('\n')
	}
	s.buffer.WriteString(line)

	input := s.buffer.String()

	expr, err := parser.ParseString(ctx, input, s.opts...)
	if errors.Is(err, parser.ErrUnterminated) {
		return nil
	}

	s.buffer.Reset()

	if err != nil {
		fmt.Fprintf(s.out, "error: %s\n", err)
		return nil
	}

	return parse.Write(s.out, expr, s.output)
}
