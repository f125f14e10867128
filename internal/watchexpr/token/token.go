package token

type Kind string

const (
	KindName            Kind = "NAME"
	KindStringLiteral   Kind = "STRING_LITERAL"
	KindMemberAccess    Kind = "MEMBER_ACCESS"    // "."
	KindIndexStart      Kind = "INDEX_START"      // "["
	KindIndexEnd        Kind = "INDEX_END"        // "]"
	KindInvocationStart Kind = "INVOCATION_START" // "("
	KindInvocationEnd   Kind = "INVOCATION_END"   // ")"
	KindComma           Kind = "COMMA"            // ","
)

var punctuation = map[string]Kind{
	".": KindMemberAccess,
	"[": KindIndexStart,
	"]": KindIndexEnd,
	"(": KindInvocationStart,
	")": KindInvocationEnd,
	",": KindComma,
}

// Punctuation returns the kind for a single punctuation character.
func Punctuation(value string) (Kind, bool) {
	kind, ok := punctuation[value]
	return kind, ok
}

// IsContinuation reports whether a token of this kind can extend an already
// complete operand into a member access, index access or invocation.
func (k Kind) IsContinuation() bool {
	return k == KindMemberAccess || k == KindIndexStart || k == KindInvocationStart
}

type Point struct {
	Line   int
	Column int
}

type Position struct {
	Start Point
	End   Point
}

// Token is a classified lexical unit. Content is only meaningful for names
// (identifier text) and string literals (decoded text).
type Token struct {
	Kind     Kind
	Content  string
	Position Position
}

func New(kind Kind, content string) Token {
	return Token{
		Kind:    kind,
		Content: content,
	}
}
