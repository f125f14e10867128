package ast

import (
	"errors"
	"fmt"

	"github.com/artuross/watchexpr/internal/watchexpr/token"
)

var (
	_ Expr = (*Name)(nil)
	_ Expr = (*StringLiteral)(nil)
	_ Expr = (*MemberAccess)(nil)
	_ Expr = (*IndexAccess)(nil)
	_ Expr = (*Invocation)(nil)
)

var (
	ErrNotAddressable = errors.New("expression is not addressable")
	ErrNotLeaf        = errors.New("token does not start an operand")
)

// Expr is a node of a watch expression tree.
//
// Parse offers a single token to the node. It returns true when the token was
// consumed and false when it does not continue the node's grammar; a rejected
// token never modifies the node. A non-nil error is only returned when
// consuming the token would build a composite over a non-addressable operand.
type Expr interface {
	Completed() bool
	Parse(tok token.Token) (bool, error)

	isExpr()
}

type (
	Name struct {
		Content string
	}

	StringLiteral struct {
		Content string
	}
)

func (e *Name) Completed() bool          { return true }
func (e *StringLiteral) Completed() bool { return true }

func (e *Name) Parse(token.Token) (bool, error)          { return false, nil }
func (e *StringLiteral) Parse(token.Token) (bool, error) { return false, nil }

func (e *Name) isExpr()          {}
func (e *StringLiteral) isExpr() {}

// NewLeaf creates the operand a name or string literal token starts.
func NewLeaf(tok token.Token) (Expr, error) {
	switch tok.Kind {
	case token.KindName:
		return &Name{Content: tok.Content}, nil

	case token.KindStringLiteral:
		return &StringLiteral{Content: tok.Content}, nil

	default:
		return nil, fmt.Errorf("%s: %w", tok.Kind, ErrNotLeaf)
	}
}

// Promote wraps a completed operand into the composite started by kind.
// It returns false if kind is not one of ".", "[" or "(".
func Promote(expr Expr, kind token.Kind) (Expr, bool, error) {
	var (
		promoted Expr
		err      error
	)

	switch kind {
	case token.KindMemberAccess:
		promoted, err = NewMemberAccess(expr)

	case token.KindIndexStart:
		promoted, err = NewIndexAccess(expr)

	case token.KindInvocationStart:
		promoted, err = NewInvocation(expr)

	default:
		return nil, false, nil
	}

	if err != nil {
		return nil, true, err
	}

	return promoted, true, nil
}

func checkBody(op string, body Expr) error {
	switch body.(type) {
	case *Name, *MemberAccess, *IndexAccess, *Invocation:
		return nil

	default:
		return fmt.Errorf("%s on %T: %w", op, body, ErrNotAddressable)
	}
}

// promoteOperand replaces a completed operand slot with the composite started
// by kind. The slot is left untouched when the token is rejected or fails.
func promoteOperand(slot *Expr, kind token.Kind) (bool, error) {
	promoted, ok, err := Promote(*slot, kind)
	if !ok {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	*slot = promoted

	return true, nil
}
