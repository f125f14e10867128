package format_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/artuross/watchexpr/internal/watchexpr/ast"
	"github.com/artuross/watchexpr/internal/watchexpr/format"
	"github.com/artuross/watchexpr/internal/watchexpr/lexer"
	"github.com/artuross/watchexpr/internal/watchexpr/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		inputs := []string{
			`a`,
			`"k"`,
			`a.b`,
			`a["k"]`,
			`f(x, y)`,
			`a[b.c]`,
			`a.b[c].d(e.f, g[h])`,
			`a[b.c(d).e]`,
			`f(x)(y)`,
			`m["tab\there"]`,
			`m["nul\0"]`,
			`m["cr\r\nlf"]`,
			`m["quote\"slash\\"]`,
			"m[\"zero\u200bwidth\"]",
			"m[\"bell\a\x01\"]",
		}

		for _, input := range inputs {
			t.Run(input, func(t *testing.T) {
				expr, err := parser.ParseString(context.Background(), input)
				require.NoError(t, err)

				assert.Equal(t, input, format.Source(expr))
			})
		}
	})

	t.Run("single quotes are normalized", func(t *testing.T) {
		expr, err := parser.ParseString(context.Background(), `a['k']`)
		require.NoError(t, err)

		assert.Equal(t, `a["k"]`, format.Source(expr))
	})

	t.Run("output parses back to the same tree", func(t *testing.T) {
		contents := []string{
			"\x00",
			"\u200b",
			"\a\b\f\v\x7f",
			"it's \"quoted\" \\ here",
			"line\nbreak\r\ttab",
			"größe ✓",
		}

		for _, content := range contents {
			t.Run(fmt.Sprintf("%q", content), func(t *testing.T) {
				expr := &ast.IndexAccess{
					Body:   &ast.Name{Content: "a"},
					Index:  &ast.StringLiteral{Content: content},
					Closed: true,
				}

				source := format.Source(expr)
				t.Logf("source: %s", source)

				parsed, err := parser.ParseString(context.Background(), source)
				require.NoError(t, err)

				assert.Equal(t, expr, parsed)
			})
		}
	})

	t.Run("single quoted escapes", func(t *testing.T) {
		expr, err := parser.ParseString(context.Background(), `a['it\'s']`)
		require.NoError(t, err)

		assert.Equal(t, `a["it's"]`, format.Source(expr))
	})

	t.Run("partial trees", func(t *testing.T) {
		inputs := []string{
			`a.`,
			`a[`,
			`a[b`,
			`a[b.`,
			`f(`,
			`f(x`,
			`f(x, `,
			`f(x, g(y`,
		}

		for _, input := range inputs {
			t.Run(input, func(t *testing.T) {
				assert.Equal(t, input, format.Source(partial(t, input)))
			})
		}
	})
}

func TestTree(t *testing.T) {
	expr, err := parser.ParseString(context.Background(), `a.b[c].d(e.f, "g")`)
	require.NoError(t, err)

	expected := `Invocation
  body: MemberAccess d
    body: IndexAccess
      body: MemberAccess b
        body: Name a
      index: Name c
  param 0: MemberAccess f
    body: Name e
  param 1: StringLiteral "g"
`

	assert.Equal(t, expected, format.Tree(expr))

	expected = `Invocation (open)
  body: Name f
  param 0: Name x
  pending: IndexAccess (open)
    body: Name a
    index: <missing>
`

	assert.Equal(t, expected, format.Tree(partial(t, `f(x, a[`)))
}

func TestJSON(t *testing.T) {
	expr, err := parser.ParseString(context.Background(), `a[b](c)`)
	require.NoError(t, err)

	data, err := format.JSON(expr)
	require.NoError(t, err)

	expected := `{
  "kind": "invocation",
  "body": {
    "kind": "index_access",
    "body": {
      "kind": "name",
      "content": "a",
      "completed": true
    },
    "index": {
      "kind": "name",
      "content": "b",
      "completed": true
    },
    "completed": true
  },
  "parameters": [
    {
      "kind": "name",
      "content": "c",
      "completed": true
    }
  ],
  "completed": true
}`

	assert.JSONEq(t, expected, string(data))

	data, err = format.JSON(partial(t, `a.`))
	require.NoError(t, err)

	assert.JSONEq(t, `{"kind": "member_access", "body": {"kind": "name", "content": "a", "completed": true}, "completed": false}`, string(data))
}

func TestUnsupported(t *testing.T) {
	var expr ast.Expr = unsupported{}

	_, err := format.JSON(expr)
	require.Error(t, err)

	assert.Equal(t, "<format_test.unsupported>", format.Source(expr))
}

type unsupported struct {
	ast.Expr
}

// partial feeds input to a builder without requiring the result to be complete.
func partial(t *testing.T, input string) ast.Expr {
	t.Helper()

	lex := lexer.NewLexer(input)
	builder := parser.NewBuilder(context.Background())

	for {
		tok, err := lex.ReadToken()
		if err != nil {
			break
		}

		require.NoError(t, builder.Feed(*tok))
	}

	return builder.Root()
}
