package semconv

// Parsing
const (
	// Source text of the watch expression being parsed.
	Expression = "expression"

	// Kind of the token a decision was made for.
	TokenKind = "token_kind"

	// Go type of the node produced by a promotion.
	NodeType = "node_type"
)

const (
	// Unique ID of a single parse. Independent parses run concurrently and
	// never share state, this ID keeps their log lines apart.
	ParseID = "parse_id"

	// Zero based position of the expression in the command arguments.
	ArgumentIndex = "argument_index"
)
