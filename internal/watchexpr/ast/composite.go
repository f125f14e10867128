package ast

import (
	"github.com/artuross/watchexpr/internal/watchexpr/token"
)

type (
	// MemberAccess is "Body.Member". Member is nil until the name after the
	// dot has been parsed.
	MemberAccess struct {
		Body   Expr
		Member *Name
	}

	// IndexAccess is "Body[Index]". Index may itself still be growing while
	// Closed is false.
	IndexAccess struct {
		Body   Expr
		Index  Expr
		Closed bool
	}

	// Invocation is "Body(Parameters...)". Current holds the argument being
	// parsed; it is committed to Parameters on "," or ")".
	Invocation struct {
		Body       Expr
		Parameters []Expr
		Current    Expr
		Closed     bool
	}
)

func NewMemberAccess(body Expr) (*MemberAccess, error) {
	if err := checkBody("member access", body); err != nil {
		return nil, err
	}

	return &MemberAccess{Body: body}, nil
}

func NewIndexAccess(body Expr) (*IndexAccess, error) {
	if err := checkBody("index access", body); err != nil {
		return nil, err
	}

	return &IndexAccess{Body: body}, nil
}

func NewInvocation(body Expr) (*Invocation, error) {
	if err := checkBody("invocation", body); err != nil {
		return nil, err
	}

	return &Invocation{Body: body}, nil
}

func (e *MemberAccess) Completed() bool { return e.Member != nil }
func (e *IndexAccess) Completed() bool  { return e.Closed }
func (e *Invocation) Completed() bool   { return e.Closed }

func (e *MemberAccess) isExpr() {}
func (e *IndexAccess) isExpr()  {}
func (e *Invocation) isExpr()   {}

func (e *MemberAccess) Parse(tok token.Token) (bool, error) {
	if e.Member != nil || tok.Kind != token.KindName {
		return false, nil
	}

	e.Member = &Name{Content: tok.Content}

	return true, nil
}

func (e *IndexAccess) Parse(tok token.Token) (bool, error) {
	if e.Closed {
		return false, nil
	}

	if e.Index == nil {
		index, err := NewLeaf(tok)
		if err != nil {
			return false, nil
		}

		e.Index = index

		return true, nil
	}

	// the index expression gets every token until it is complete
	if !e.Index.Completed() {
		return e.Index.Parse(tok)
	}

	if tok.Kind == token.KindIndexEnd {
		e.Closed = true

		return true, nil
	}

	return promoteOperand(&e.Index, tok.Kind)
}

func (e *Invocation) Parse(tok token.Token) (bool, error) {
	if e.Closed {
		return false, nil
	}

	// no direct path for "()": the closing token is rejected here
	if e.Current == nil {
		param, err := NewLeaf(tok)
		if err != nil {
			return false, nil
		}

		e.Current = param

		return true, nil
	}

	if !e.Current.Completed() {
		return e.Current.Parse(tok)
	}

	switch tok.Kind {
	case token.KindInvocationEnd:
		e.Parameters = append(e.Parameters, e.Current)
		e.Current = nil
		e.Closed = true

		return true, nil

	case token.KindComma:
		e.Parameters = append(e.Parameters, e.Current)
		e.Current = nil

		return true, nil
	}

	return promoteOperand(&e.Current, tok.Kind)
}
