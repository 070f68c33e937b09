// Package token defines the lexical tokens shared by the lexer, the parser
// and the token-stream codec.
package token

import "fmt"

// Kind identifies the type of a lexical token.
type Kind int

// The closed set of token kinds.
const (
	String Kind = iota
	Number
	Boolean
	Null
	EOF
	LBracket
	RBracket
	Comma
	Colon
	LBrace
	RBrace
	Semicolon
)

var kindNames = [...]string{
	String:    "STR",
	Number:    "NUM",
	Boolean:   "BOOL",
	Null:      "NULL",
	EOF:       "EOF",
	LBracket:  "LBRACKET",
	RBracket:  "RBRACKET",
	Comma:     "COMMA",
	Colon:     "COLON",
	LBrace:    "LBRACE",
	RBrace:    "RBRACE",
	Semicolon: "SEMICOLON",
}

// String returns the upper-case name used in diagnostics and in the token
// stream format (STR, NUM, BOOL, ...).
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// HasPayload reports whether tokens of kind k are serialized with their type
// name, as in <NUM, 12>.
func (k Kind) HasPayload() bool {
	return k == String || k == Number || k == Boolean
}

// NoPos marks a token that was not read from source text.
const NoPos = -1

// Token is a single lexical token.
type Token struct {
	Kind  Kind
	Value string // the lexeme; string content without its quotes
	Pos   int    // character offset of the token start, or NoPos
}

// New returns a token with no source position.
func New(kind Kind, value string) Token {
	return Token{Kind: kind, Value: value, Pos: NoPos}
}

// String renders t in the token stream format.
func (t Token) String() string {
	if t.Kind.HasPayload() {
		return fmt.Sprintf("<%s, %s>", t.Kind, t.Value)
	}
	return "<" + t.Value + ">"
}

// Punctuation maps the single-character punctuation lexemes to their kinds.
var Punctuation = map[rune]Kind{
	'{': LBrace,
	'}': RBrace,
	'[': LBracket,
	']': RBracket,
	',': Comma,
	':': Colon,
	';': Semicolon,
}
