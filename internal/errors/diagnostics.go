package errors

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/strictjson/internal/token"
)

// LexError reports a character sequence the lexer could not turn into a
// token. Pos is the character offset at which scanning stopped.
type LexError struct {
	Pos        int
	Lexeme     string
	EndOfInput bool // input ran out before the lexeme was complete
	Hint       string
}

func (e *LexError) Error() string {
	if e.EndOfInput {
		msg := fmt.Sprintf("reached end of input while tokenizing lexeme %q at position %d", e.Lexeme, e.Pos)
		if e.Hint != "" {
			msg += " (" + e.Hint + ")"
		}
		return msg
	}
	return fmt.Sprintf("%q is invalid at position %d", e.Lexeme, e.Pos)
}

// UnexpectedTokenError reports that the current token matched none of the
// kinds the active grammar rule accepts. Index is the position of the token
// in the token sequence.
type UnexpectedTokenError struct {
	Expected []token.Kind
	Found    token.Kind
	Value    string
	Index    int
}

func (e *UnexpectedTokenError) Error() string {
	names := make([]string, len(e.Expected))
	for i, k := range e.Expected {
		names[i] = k.String()
	}
	return fmt.Sprintf("expected token(s) %s but found %s (%q) at token %d",
		strings.Join(names, ", "), e.Found, e.Value, e.Index)
}

// SemanticKind numbers the grammar-valid but rule-violating constructs.
type SemanticKind int

const (
	InvalidDecimal       SemanticKind = 1
	EmptyKey             SemanticKind = 2
	InvalidNumber        SemanticKind = 3
	ReservedWordAsKey    SemanticKind = 4
	DuplicateKey         SemanticKind = 5
	ListTypeMismatch     SemanticKind = 6
	ReservedWordAsString SemanticKind = 7
)

var semanticNames = map[SemanticKind]string{
	InvalidDecimal:       "InvalidDecimal",
	EmptyKey:             "EmptyKey",
	InvalidNumber:        "InvalidNumber",
	ReservedWordAsKey:    "ReservedWordAsKey",
	DuplicateKey:         "DuplicateKey",
	ListTypeMismatch:     "ListTypeMismatch",
	ReservedWordAsString: "ReservedWordAsString",
}

var semanticText = map[SemanticKind]string{
	InvalidDecimal:       "invalid decimal number",
	EmptyKey:             "empty key",
	InvalidNumber:        "invalid number",
	ReservedWordAsKey:    "reserved word as key",
	DuplicateKey:         "duplicate key",
	ListTypeMismatch:     "list type mismatch",
	ReservedWordAsString: "reserved word as string",
}

func (k SemanticKind) String() string {
	if s, ok := semanticNames[k]; ok {
		return s
	}
	return fmt.Sprintf("SemanticKind(%d)", int(k))
}

// Code returns a stable snake_case identifier for k, e.g. "duplicate_key".
func (k SemanticKind) Code() string { return strcase.ToSnake(k.String()) }

// Description returns a short human-readable name for k.
func (k SemanticKind) Description() string {
	if s, ok := semanticText[k]; ok {
		return s
	}
	return k.String()
}

// SemanticError reports a violation of one of the numbered semantic rules.
type SemanticError struct {
	Kind   SemanticKind
	Lexeme string
	Index  int
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("error type %d at %q: %s (token %d)", int(e.Kind), e.Lexeme, e.Kind.Description(), e.Index)
}

// Collection names the container an EmptyCollectionError refers to.
type Collection string

const (
	CollectionDictionary Collection = "dictionary"
	CollectionList       Collection = "list"
)

// EmptyCollectionError reports an object or array with no surviving members.
// Index and Found describe the token following the closing delimiter.
type EmptyCollectionError struct {
	Collection Collection
	Index      int
	Found      token.Kind
}

func (e *EmptyCollectionError) Error() string {
	return fmt.Sprintf("empty %s not allowed, found at token %d (%s)", e.Collection, e.Index, e.Found)
}

// StreamFormatError reports a token stream line that could not be decoded.
// LineNumber is 1-based.
type StreamFormatError struct {
	Line       string
	LineNumber int
	Reason     string
}

func (e *StreamFormatError) Error() string {
	msg := fmt.Sprintf("token %q at line %d is not properly formatted", e.Line, e.LineNumber)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}
