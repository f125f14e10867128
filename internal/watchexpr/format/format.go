package format

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/artuross/watchexpr/internal/watchexpr/ast"
)

type Kind string

const (
	KindName          Kind = "name"
	KindStringLiteral Kind = "string_literal"
	KindMemberAccess  Kind = "member_access"
	KindIndexAccess   Kind = "index_access"
	KindInvocation    Kind = "invocation"
)

// Source renders expr the way it would be typed into a watch window. Partial
// trees render as far as they were parsed, for example "a[b" or "f(x, ".
func Source(expr ast.Expr) string {
	var builder strings.Builder
	writeSource(&builder, expr)

	return builder.String()
}

func writeSource(builder *strings.Builder, expr ast.Expr) {
	switch expr := expr.(type) {
	case *ast.Name:
		builder.WriteString(expr.Content)

	case *ast.StringLiteral:
		writeQuoted(builder, expr.Content)

	case *ast.MemberAccess:
		writeSource(builder, expr.Body)
		builder.WriteByte('.')

		if expr.Member != nil {
			builder.WriteString(expr.Member.Content)
		}

	case *ast.IndexAccess:
		writeSource(builder, expr.Body)
		builder.WriteByte('[')

		if expr.Index != nil {
			writeSource(builder, expr.Index)
		}

		if expr.Closed {
			builder.WriteByte(']')
		}

	case *ast.Invocation:
		writeSource(builder, expr.Body)
		builder.WriteByte('(')

		for index, param := range expr.Parameters {
			if index > 0 {
				builder.WriteString(", ")
			}

			writeSource(builder, param)
		}

		if expr.Current != nil {
			if len(expr.Parameters) > 0 {
				builder.WriteString(", ")
			}

			writeSource(builder, expr.Current)
		} else if !expr.Closed && len(expr.Parameters) > 0 {
			builder.WriteString(", ")
		}

		if expr.Closed {
			builder.WriteByte(')')
		}

	default:
		fmt.Fprintf(builder, "<%T>", expr)
	}
}

// writeQuoted writes content as a double quoted literal using only the
// escapes the lexer reads back: \\ \" \n \t \r \0. Other runes are written
// as they are.
func writeQuoted(builder *strings.Builder, content string) {
	builder.WriteByte('"')

	for _, r := range content {
		switch r {
		case '\\':
			builder.WriteString(`\\`)
		case '"':
			builder.WriteString(`\"`)
		case '\n':
			builder.WriteString(`\n`)
		case '\t':
			builder.WriteString(`\t`)
		case '\r':
			builder.WriteString(`\r`)
		case 0:
			builder.WriteString(`\0`)
		default:
			builder.WriteRune(r)
		}
	}

	builder.WriteByte('"')
}

// Tree renders one node per line, children indented by two spaces.
func Tree(expr ast.Expr) string {
	var builder strings.Builder
	writeTree(&builder, expr, 0, "")

	return builder.String()
}

func writeTree(builder *strings.Builder, expr ast.Expr, depth int, label string) {
	indent := strings.Repeat("  ", depth)

	builder.WriteString(indent)
	if label != "" {
		builder.WriteString(label)
		builder.WriteString(": ")
	}

	switch expr := expr.(type) {
	case nil:
		builder.WriteString("<missing>\n")

	case *ast.Name:
		fmt.Fprintf(builder, "Name %s\n", expr.Content)

	case *ast.StringLiteral:
		builder.WriteString("StringLiteral ")
		writeQuoted(builder, expr.Content)
		builder.WriteByte('\n')

	case *ast.MemberAccess:
		member := "<missing>"
		if expr.Member != nil {
			member = expr.Member.Content
		}

		fmt.Fprintf(builder, "MemberAccess %s\n", member)
		writeTree(builder, expr.Body, depth+1, "body")

	case *ast.IndexAccess:
		builder.WriteString("IndexAccess")
		writeOpen(builder, expr.Closed)
		writeTree(builder, expr.Body, depth+1, "body")
		writeTree(builder, expr.Index, depth+1, "index")

	case *ast.Invocation:
		builder.WriteString("Invocation")
		writeOpen(builder, expr.Closed)
		writeTree(builder, expr.Body, depth+1, "body")

		for index, param := range expr.Parameters {
			writeTree(builder, param, depth+1, fmt.Sprintf("param %d", index))
		}

		if expr.Current != nil {
			writeTree(builder, expr.Current, depth+1, "pending")
		}

	default:
		fmt.Fprintf(builder, "<%T>\n", expr)
	}
}

func writeOpen(builder *strings.Builder, closed bool) {
	if !closed {
		builder.WriteString(" (open)")
	}

	builder.WriteByte('\n')
}

// Node is the JSON shape of an expression tree.
type Node struct {
	Kind       Kind    `json:"kind"`
	Content    *string `json:"content,omitempty"`
	Body       *Node   `json:"body,omitempty"`
	Member     *string `json:"member,omitempty"`
	Index      *Node   `json:"index,omitempty"`
	Parameters []*Node `json:"parameters,omitempty"`
	Pending    *Node   `json:"pending,omitempty"`
	Completed  bool    `json:"completed"`
}

func NewNode(expr ast.Expr) (*Node, error) {
	switch expr := expr.(type) {
	case nil:
		return nil, nil

	case *ast.Name:
		return &Node{Kind: KindName, Content: &expr.Content, Completed: true}, nil

	case *ast.StringLiteral:
		return &Node{Kind: KindStringLiteral, Content: &expr.Content, Completed: true}, nil

	case *ast.MemberAccess:
		body, err := NewNode(expr.Body)
		if err != nil {
			return nil, err
		}

		node := Node{
			Kind:      KindMemberAccess,
			Body:      body,
			Completed: expr.Completed(),
		}

		if expr.Member != nil {
			node.Member = &expr.Member.Content
		}

		return &node, nil

	case *ast.IndexAccess:
		body, err := NewNode(expr.Body)
		if err != nil {
			return nil, err
		}

		index, err := NewNode(expr.Index)
		if err != nil {
			return nil, err
		}

		node := Node{
			Kind:      KindIndexAccess,
			Body:      body,
			Index:     index,
			Completed: expr.Completed(),
		}

		return &node, nil

	case *ast.Invocation:
		body, err := NewNode(expr.Body)
		if err != nil {
			return nil, err
		}

		params := make([]*Node, 0, len(expr.Parameters))
		for _, param := range expr.Parameters {
			node, err := NewNode(param)
			if err != nil {
				return nil, err
			}

			params = append(params, node)
		}

		pending, err := NewNode(expr.Current)
		if err != nil {
			return nil, err
		}

		node := Node{
			Kind:       KindInvocation,
			Body:       body,
			Parameters: params,
			Pending:    pending,
			Completed:  expr.Completed(),
		}

		return &node, nil

	default:
		return nil, fmt.Errorf("unsupported expression type: %T", expr)
	}
}

func JSON(expr ast.Expr) ([]byte, error) {
	node, err := NewNode(expr)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(node, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal expression: %w", err)
	}

	return data, nil
}
