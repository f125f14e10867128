package lexer

import (
	"errors"
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/artuross/watchexpr/internal/watchexpr/token"
)

var (
	ErrInvalidCharacter = errors.New("invalid character")
	ErrInvalidEscape    = errors.New("invalid escape sequence")
	ErrRuneInvalid      = errors.New("decode rune: invalid rune")
)

type Lexer struct {
	input    []byte
	point    token.Point
	position int
}

func NewLexer(input string) *Lexer {
	return &Lexer{
		input:    []byte(input),
		point:    token.Point{Line: 1, Column: 1},
		position: 0,
	}
}

// Point returns the position the next token will be read from.
func (l *Lexer) Point() token.Point {
	return l.point
}

func (l *Lexer) ReadToken() (*token.Token, error) {
	if err := l.advanceWhitespace(); err != nil {
		return nil, err
	}

	r, _, err := l.peek()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}

	if _, ok := token.Punctuation(string(r)); ok {
		return l.readPunctuation()
	}

	if isNameOpeningCharacter(r) {
		return l.readName()
	}

	if isStringDelimiter(r) {
		return l.readString()
	}

	return nil, fmt.Errorf("%d:%d: %q: %w", l.point.Line, l.point.Column, r, ErrInvalidCharacter)
}

func (l *Lexer) advanceWhitespace() error {
	for {
		r, _, err := l.peek()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch r {
		case ' ', '\t', '\r':
			_, _ = l.read()

		case '\n':
			_, _ = l.read()

			l.point.Line++
			l.point.Column = 1

		default:
			return nil
		}
	}
}

func (l *Lexer) readName() (*token.Token, error) {
	startPoint := l.point

	r, err := l.read()
	invariant(err != nil, "readName: unexpected read() error when consuming first character")
	invariant(!isNameOpeningCharacter(r), "readName: first character is not valid")

	value := []rune{r}

	for {
		r, _, err := l.peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if !isNameContinuationCharacter(r) {
			break
		}

		_, err = l.read()
		invariant(err != nil, "readName: unexpected read() error after peek()")

		value = append(value, r)
	}

	return l.newToken(token.KindName, string(value), startPoint), nil
}

func (l *Lexer) readPunctuation() (*token.Token, error) {
	startPoint := l.point

	r, err := l.read()
	invariant(err != nil, "readPunctuation: unexpected read() error when consuming first character")

	kind, ok := token.Punctuation(string(r))
	invariant(!ok, "readPunctuation: first character is not valid")

	return l.newToken(kind, "", startPoint), nil
}

func (l *Lexer) readString() (*token.Token, error) {
	startPoint := l.point

	delimiter, err := l.read()
	invariant(err != nil, "readString: unexpected read() error when consuming first character")
	invariant(!isStringDelimiter(delimiter), "readString: first character is not valid")

	value := []rune{}

	for {
		r, err := l.read()
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		if err != nil {
			return nil, err
		}

		if r == delimiter {
			break
		}

		if r == '\n' {
			return nil, io.ErrUnexpectedEOF
		}

		if r == '\\' {
			escaped, err := l.readEscape()
			if err != nil {
				return nil, err
			}

			r = escaped
		}

		value = append(value, r)
	}

	return l.newToken(token.KindStringLiteral, string(value), startPoint), nil
}

func (l *Lexer) readEscape() (rune, error) {
	r, err := l.read()
	if err == io.EOF {
		return 0, io.ErrUnexpectedEOF
	}
	if err != nil {
		return 0, err
	}

	switch r {
	case '\\', '"', '\'':
		return r, nil
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case '0':
		return 0, nil
	default:
		return 0, ErrInvalidEscape
	}
}

func (l *Lexer) newToken(kind token.Kind, content string, start token.Point) *token.Token {
	return &token.Token{
		Kind:    kind,
		Content: content,
		Position: token.Position{
			Start: start,
			End:   l.point,
		},
	}
}

func (l *Lexer) peek() (rune, int, error) {
	if l.position >= len(l.input) {
		return 0, 0, io.EOF
	}

	r, size := utf8.DecodeRune(l.input[l.position:])
	if r == utf8.RuneError && size <= 1 {
		return 0, 0, ErrRuneInvalid
	}

	return r, size, nil
}

func (l *Lexer) read() (rune, error) {
	r, size, err := l.peek()
	if err != nil {
		return 0, err
	}

	l.position += size
	l.point.Column++

	return r, nil
}

func isNameOpeningCharacter(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$' || r == '@'
}

func isNameContinuationCharacter(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$'
}

func isStringDelimiter(r rune) bool {
	return r == '"' || r == '\''
}

func invariant(assertion bool, message string) {
	if assertion {
		panic(message)
	}
}
