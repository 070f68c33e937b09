package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToken_String(t *testing.T) {
	tests := []struct {
		name     string
		tok      Token
		expected string
	}{
		{"string", New(String, "hello world"), "<STR, hello world>"},
		{"number", New(Number, "-1.5e3"), "<NUM, -1.5e3>"},
		{"boolean", New(Boolean, "false"), "<BOOL, false>"},
		{"null", New(Null, "null"), "<null>"},
		{"comma", New(Comma, ","), "<,>"},
		{"colon", New(Colon, ":"), "<:>"},
		{"eof", New(EOF, "EOF"), "<EOF>"},
		{"empty string", New(String, ""), "<STR, >"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.tok.String())
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "STR", String.String())
	assert.Equal(t, "RBRACE", RBrace.String())
	assert.Equal(t, "SEMICOLON", Semicolon.String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}

func TestKind_HasPayload(t *testing.T) {
	assert.True(t, String.HasPayload())
	assert.True(t, Number.HasPayload())
	assert.True(t, Boolean.HasPayload())
	assert.False(t, Null.HasPayload())
	assert.False(t, EOF.HasPayload())
	assert.False(t, Comma.HasPayload())
}

func TestPunctuation(t *testing.T) {
	for ch, kind := range Punctuation {
		assert.False(t, kind.HasPayload(), "punctuation %q", ch)
	}
	assert.Len(t, Punctuation, 7)
	assert.Equal(t, Semicolon, Punctuation[';'])
}
