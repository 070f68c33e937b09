// Package tokenstream reads and writes the line-oriented token format
//
//	<STR, name>
//	<:>
//	<NUM, 12>
//	<EOF>
//
// String, Number and Boolean tokens carry their type name; every other token
// is written as its lexeme alone. Comma is written "<,>". Values are not
// escaped, so a string containing a newline or '>' does not survive a round
// trip.
package tokenstream

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/mcncl/strictjson/internal/errors"
	"github.com/mcncl/strictjson/internal/token"
)

// maxLineSize bounds a single line of a token stream.
const maxLineSize = 1 << 20

// typeNames maps the names of payload-carrying kinds back to their kinds.
var typeNames = map[string]token.Kind{
	token.String.String():  token.String,
	token.Number.String():  token.Number,
	token.Boolean.String(): token.Boolean,
}

// bareValues maps the single-value lines to their kinds. The comma token is
// split away by the type separator and arrives as an empty value.
var bareValues = map[string]token.Kind{
	":":    token.Colon,
	";":    token.Semicolon,
	"":     token.Comma,
	"{":    token.LBrace,
	"}":    token.RBrace,
	"[":    token.LBracket,
	"]":    token.RBracket,
	"EOF":  token.EOF,
	"null": token.Null,
}

// Encode writes toks to w, one per line.
func Encode(w io.Writer, toks []token.Token) error {
	bw := bufio.NewWriter(w)
	for _, tok := range toks {
		if _, err := bw.WriteString(tok.String() + "\n"); err != nil {
			return fmt.Errorf("writing token stream: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing token stream: %w", err)
	}
	return nil
}

// Decoder reads tokens from a token stream. It satisfies the parser's token
// source interface, so a stream can be parsed without reading it in full.
type Decoder struct {
	sc   *bufio.Scanner
	line int
	done bool
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)
	return &Decoder{sc: sc}
}

// Next returns the next token. After the EOF token it keeps returning EOF
// without reading further. Malformed lines and a stream that ends before
// its EOF line are reported as *errors.StreamFormatError.
func (d *Decoder) Next() (token.Token, error) {
	if d.done {
		return token.New(token.EOF, "EOF"), nil
	}
	if !d.sc.Scan() {
		if err := d.sc.Err(); err != nil {
			return token.Token{}, fmt.Errorf("reading token stream: %w", err)
		}
		return token.Token{}, &errors.StreamFormatError{
			LineNumber: d.line + 1,
			Reason:     "stream ended without <EOF>",
		}
	}
	d.line++

	tok, err := decodeLine(d.sc.Text())
	if err != nil {
		err.LineNumber = d.line
		return token.Token{}, err
	}
	if tok.Kind == token.EOF {
		d.done = true
	}
	return tok, nil
}

// Decode reads a complete token stream. The result ends with the EOF token;
// any lines after it are ignored.
func Decode(r io.Reader) ([]token.Token, error) {
	d := NewDecoder(r)
	var toks []token.Token
	for {
		tok, err := d.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

// DecodeString is Decode for a stream held in memory.
func DecodeString(s string) ([]token.Token, error) {
	return Decode(strings.NewReader(s))
}

func decodeLine(line string) (token.Token, *errors.StreamFormatError) {
	fail := func(reason string) (token.Token, *errors.StreamFormatError) {
		return token.Token{}, &errors.StreamFormatError{Line: line, Reason: reason}
	}

	_, body, ok := strings.Cut(line, "<")
	if !ok {
		return fail("missing '<'")
	}
	body, _, _ = strings.Cut(body, "<")
	body, _, _ = strings.Cut(body, ">")

	typ, value, hasType := strings.Cut(body, ",")
	typ = strings.TrimLeftFunc(typ, unicode.IsSpace)
	value = strings.TrimLeftFunc(value, unicode.IsSpace)

	if !hasType || (typ == "" && value == "") {
		kind, ok := bareValues[typ]
		if !ok {
			return fail(fmt.Sprintf("unrecognized token %q", typ))
		}
		return token.New(kind, canonical(kind, typ)), nil
	}

	kind, ok := typeNames[typ]
	if !ok {
		return fail(fmt.Sprintf("unknown token type %q", typ))
	}
	if kind == token.Boolean && value != "true" && value != "false" {
		return fail(fmt.Sprintf("BOOL value must be true or false, not %q", value))
	}
	return token.New(kind, value), nil
}

// canonical returns the lexeme of a bare token.
func canonical(kind token.Kind, value string) string {
	if kind == token.Comma {
		return ","
	}
	return value
}
