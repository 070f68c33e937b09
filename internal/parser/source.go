package parser

import (
	"github.com/mcncl/strictjson/internal/lexer"
	"github.com/mcncl/strictjson/internal/token"
)

// TokenSource supplies tokens to the parser one at a time. Once the final
// EOF token has been returned, further calls must keep returning EOF.
type TokenSource interface {
	Next() (token.Token, error)
}

var _ TokenSource = (*lexer.Lexer)(nil)

// sliceSource replays a fixed token sequence. A sequence that does not end
// in EOF behaves as if it did.
type sliceSource struct {
	toks []token.Token
	next int
}

// Tokens returns a TokenSource reading from toks.
func Tokens(toks []token.Token) TokenSource {
	return &sliceSource{toks: toks}
}

func (s *sliceSource) Next() (token.Token, error) {
	if s.next >= len(s.toks) {
		return token.New(token.EOF, "EOF"), nil
	}
	tok := s.toks[s.next]
	if tok.Kind != token.EOF {
		s.next++
	}
	return tok, nil
}
