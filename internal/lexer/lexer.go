// Package lexer turns source text into the token sequence consumed by the
// parser.
package lexer

import (
	"strings"
	"unicode"

	"go4.org/mem"

	"github.com/mcncl/strictjson/internal/errors"
	"github.com/mcncl/strictjson/internal/token"
)

const missingQuoteHint = "try adding a closing quotation mark if it is a string"

// Lexer reads tokens from a source string. Each call to Next returns the
// following token; once the input is exhausted Next keeps returning EOF.
type Lexer struct {
	src   mem.RO
	off   int  // byte offset of ch
	pos   int  // character offset of ch
	ch    rune // current character, valid unless eof
	width int  // size in bytes of ch
	eof   bool
}

// New constructs a lexer over input.
func New(input string) *Lexer {
	l := &Lexer{src: mem.S(input)}
	l.load()
	return l
}

// Tokenize lexes all of input. The result always ends with a single EOF
// token. On failure the error is a *errors.LexError.
func Tokenize(input string) ([]token.Token, error) {
	l := New(input)
	var toks []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

// Next skips whitespace and returns the next token.
func (l *Lexer) Next() (token.Token, error) {
	l.skipSpace()
	if l.eof {
		return token.Token{Kind: token.EOF, Value: "EOF", Pos: l.pos}, nil
	}

	if kind, ok := token.Punctuation[l.ch]; ok {
		tok := token.Token{Kind: kind, Value: string(l.ch), Pos: l.pos}
		l.advance()
		return tok, nil
	}

	switch {
	case l.ch == '"':
		return l.scanString()
	case isNumStart(l.ch):
		return l.scanNumber(), nil
	case l.ch == 't' || l.ch == 'f':
		return scanKeyword(l, token.Boolean, boolKeyword)
	case l.ch == 'n':
		return scanKeyword(l, token.Null, nullKeyword)
	}
	return token.Token{}, &errors.LexError{Pos: l.pos, Lexeme: string(l.ch)}
}

func (l *Lexer) scanString() (token.Token, error) {
	start := l.pos
	state := strStart
	var contentOff, contentEnd int
	for !l.eof && state != strEnd {
		next := stepString(state, l.ch)
		if next == strReject {
			break
		}
		switch {
		case state == strStart:
			contentOff = l.off + l.width
		case next == strEnd:
			contentEnd = l.off
		}
		state = next
		l.advance()
	}
	if state != strEnd {
		return token.Token{}, &errors.LexError{
			Pos:        l.pos,
			Lexeme:     l.text(contentOff, l.off),
			EndOfInput: l.eof,
			Hint:       missingQuoteHint,
		}
	}
	return token.Token{Kind: token.String, Value: l.text(contentOff, contentEnd), Pos: start}, nil
}

// scanNumber takes the longest run of digits and "+-.eE". The shape of the
// lexeme is checked by the parser.
func (l *Lexer) scanNumber() token.Token {
	start, off := l.pos, l.off
	for !l.eof && isNumRune(l.ch) {
		l.advance()
	}
	return token.Token{Kind: token.Number, Value: l.text(off, l.off), Pos: start}
}

func scanKeyword[S comparable](l *Lexer, kind token.Kind, kw keyword[S]) (token.Token, error) {
	start, off := l.pos, l.off
	state := kw.start
	for !l.eof && strings.ContainsRune(kw.alphabet, l.ch) {
		state = kw.step(state, l.ch)
		if state == kw.reject {
			break
		}
		l.advance()
	}
	lexeme := l.text(off, l.off)
	if state != kw.accept {
		return token.Token{}, &errors.LexError{Pos: l.pos, Lexeme: lexeme, EndOfInput: l.eof}
	}
	return token.Token{Kind: kind, Value: lexeme, Pos: start}, nil
}

func (l *Lexer) load() {
	if l.off >= l.src.Len() {
		l.eof, l.ch, l.width = true, 0, 0
		return
	}
	l.ch, l.width = mem.DecodeRune(l.src.SliceFrom(l.off))
	if l.width == 0 {
		l.width = 1
	}
}

func (l *Lexer) advance() {
	if l.eof {
		return
	}
	l.off += l.width
	l.pos++
	l.load()
}

func (l *Lexer) skipSpace() {
	for !l.eof && unicode.IsSpace(l.ch) {
		l.advance()
	}
}

// text returns a copy of the source between byte offsets lo and hi.
func (l *Lexer) text(lo, hi int) string {
	if hi <= lo {
		return ""
	}
	return l.src.SliceTo(hi).SliceFrom(lo).StringCopy()
}

func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }
func isNumStart(ch rune) bool { return isDigit(ch) || ch == '-' || ch == '.' || ch == '+' }

// isNumRune takes 'E' as well as 'e', so 1E2 is one number token rather
// than 1 followed by a bad character.
func isNumRune(ch rune) bool { return isNumStart(ch) || ch == 'e' || ch == 'E' }
