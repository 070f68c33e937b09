// Package parser builds value trees from token sequences. It validates the
// semantic rules of the grammar as it goes and recovers from a small set of
// common slips (trailing commas, a missing pair value, ';' for ':').
package parser

import (
	stderrors "errors"
	"fmt"
	"math"
	"math/big"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/creachadair/mds/mapset"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/mcncl/strictjson/internal/errors"
	"github.com/mcncl/strictjson/internal/lexer"
	"github.com/mcncl/strictjson/internal/models"
	"github.com/mcncl/strictjson/internal/token"
)

// reservedWords may not be used as keys or as string values.
var reservedWords = mapset.New("true", "false", "null")

const numberRunes = "0123456789+-.eE"

// valueStart lists the token kinds that may begin a value.
var valueStart = []token.Kind{
	token.String, token.Boolean, token.Number, token.Null, token.LBrace, token.LBracket,
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger that receives recovery events at debug level.
func WithLogger(logger log.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Parser is a recursive descent parser with one token of lookahead. A Parser
// reads a single document; create a new one for each input.
type Parser struct {
	src    TokenSource
	cur    token.Token
	index  int // position of cur in the token sequence
	logger log.Logger
}

// New returns a parser reading from src.
func New(src TokenSource, opts ...Option) *Parser {
	p := &Parser{src: src, index: -1, logger: log.NewNopLogger()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads exactly one value from src followed by EOF.
func Parse(src TokenSource, opts ...Option) (models.Value, error) {
	return New(src, opts...).Parse()
}

// ParseString lexes all of text and then parses it, so a lexical error
// anywhere in text is reported ahead of any grammar or semantic error.
// Use Parse with a lexer.Lexer to lex on demand instead.
func ParseString(text string, opts ...Option) (models.Value, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	toks, err := lexer.Tokenize(text)
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks, opts...)
}

// ParseTokens parses an already lexed token sequence.
func ParseTokens(toks []token.Token, opts ...Option) (models.Value, error) {
	return Parse(Tokens(toks), opts...)
}

// MustParse is like ParseString but panics if text does not parse.
func MustParse(text string) models.Value {
	v, err := ParseString(text)
	if err != nil {
		panic(fmt.Sprintf("parser: MustParse: %v", err))
	}
	return v
}

// ParseFile parses the contents of the file at filePath.
func ParseFile(filePath string, opts ...Option) (models.Value, error) {
	text, err := ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return ParseString(text, opts...)
}

// ReadFile returns the contents of filePath, reporting a missing, empty or
// unreadable file as an input error.
func ReadFile(filePath string) (string, error) {
	if strings.TrimSpace(filePath) == "" {
		return "", errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	stat, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return "", errors.NewInputError(fmt.Sprintf("failed to get file stats for '%s'", filePath), err)
	}
	if stat.IsDir() {
		return "", errors.NewInputError(
			fmt.Sprintf("'%s' is a directory", filePath),
			errors.ErrInvalidFilePath,
		)
	}
	if stat.Size() == 0 {
		return "", errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", errors.NewInputError(fmt.Sprintf("failed to read file '%s'", filePath), err)
	}
	return string(data), nil
}

// Parse reads one value followed by EOF.
func (p *Parser) Parse() (models.Value, error) {
	if _, err := p.advance(); err != nil {
		return nil, err
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.EOF); err != nil {
		return nil, err
	}
	return v, nil
}

// advance returns the current token and loads the next one.
func (p *Parser) advance() (token.Token, error) {
	prev := p.cur
	next, err := p.src.Next()
	if err != nil {
		return prev, err
	}
	p.cur = next
	p.index++
	return prev, nil
}

// eat consumes the current token if it has the given kind.
func (p *Parser) eat(kind token.Kind) (token.Token, error) {
	if p.cur.Kind != kind {
		return token.Token{}, p.unexpected(kind)
	}
	return p.advance()
}

func (p *Parser) unexpected(expected ...token.Kind) error {
	return &errors.UnexpectedTokenError{
		Expected: expected,
		Found:    p.cur.Kind,
		Value:    p.cur.Value,
		Index:    p.index,
	}
}

// unexpectedOneOf reports whether err is, or wraps, an unexpected token
// error whose found kind is one of kinds. With no kinds it matches any
// unexpected token error.
func unexpectedOneOf(err error, kinds ...token.Kind) bool {
	var tokErr *errors.UnexpectedTokenError
	if !stderrors.As(err, &tokErr) {
		return false
	}
	return len(kinds) == 0 || slices.Contains(kinds, tokErr.Found)
}

func (p *Parser) semantic(kind errors.SemanticKind, lexeme string, index int) error {
	return &errors.SemanticError{Kind: kind, Lexeme: lexeme, Index: index}
}

func (p *Parser) parseValue() (models.Value, error) {
	switch p.cur.Kind {
	case token.String:
		v, err := p.parseString()
		if err != nil {
			return nil, err
		}
		if reservedWords.Has(string(v)) {
			return nil, p.semantic(errors.ReservedWordAsString, string(v), p.index-1)
		}
		return v, nil

	case token.Boolean:
		tok, err := p.eat(token.Boolean)
		if err != nil {
			return nil, err
		}
		switch tok.Value {
		case "true":
			return models.Bool(true), nil
		case "false":
			return models.Bool(false), nil
		}
		return nil, fmt.Errorf("boolean token with lexeme %q at token %d", tok.Value, p.index-1)

	case token.Number:
		return p.parseNumber()

	case token.Null:
		if _, err := p.eat(token.Null); err != nil {
			return nil, err
		}
		return models.Null{}, nil

	case token.LBrace:
		return p.parseDict()

	case token.LBracket:
		return p.parseList()
	}
	return nil, p.unexpected(valueStart...)
}

func (p *Parser) parseString() (models.String, error) {
	tok, err := p.eat(token.String)
	if err != nil {
		return "", err
	}
	return models.String(tok.Value), nil
}

func (p *Parser) parseDict() (*models.Dictionary, error) {
	if _, err := p.eat(token.LBrace); err != nil {
		return nil, err
	}
	dict := models.NewDictionary()

	for first := true; first || p.cur.Kind == token.Comma; first = false {
		if !first {
			if _, err := p.advance(); err != nil {
				return nil, err
			}
		}
		keyIndex := p.index
		key, v, ok, err := p.parsePair()
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if !dict.Set(key, v) {
			return nil, p.semantic(errors.DuplicateKey, key, keyIndex)
		}
	}

	if _, err := p.eat(token.RBrace); err != nil {
		return nil, err
	}
	if dict.Len() == 0 {
		return nil, &errors.EmptyCollectionError{
			Collection: errors.CollectionDictionary,
			Index:      p.index,
			Found:      p.cur.Kind,
		}
	}
	return dict, nil
}

// parsePair reads one key/value pair. It reports ok == false when the slot
// holds no pair at all, as in "{,}" or a trailing comma.
func (p *Parser) parsePair() (key string, v models.Value, ok bool, err error) {
	keyIndex := p.index
	tok, err := p.eat(token.String)
	if err != nil {
		if unexpectedOneOf(err, token.RBrace, token.Comma) {
			level.Debug(p.logger).Log("msg", "skipping empty pair", "token", keyIndex, "found", p.cur.Kind)
			return "", nil, false, nil
		}
		return "", nil, false, err
	}

	key = tok.Value
	if strings.TrimSpace(key) == "" {
		return "", nil, false, p.semantic(errors.EmptyKey, key, keyIndex)
	}
	if reservedWords.Has(key) {
		return "", nil, false, p.semantic(errors.ReservedWordAsKey, key, keyIndex)
	}

	v, err = p.parsePairValue()
	if err != nil {
		if !unexpectedOneOf(err, token.RBrace) {
			return "", nil, false, err
		}
		level.Debug(p.logger).Log("msg", "missing pair value, using null", "key", key, "token", p.index)
		v = models.Null{}
	}
	return key, v, true, nil
}

func (p *Parser) parsePairValue() (models.Value, error) {
	if _, err := p.eat(token.Colon); err != nil {
		if !unexpectedOneOf(err) {
			return nil, err
		}
		if p.cur.Kind != token.Semicolon {
			return nil, p.unexpected(token.Colon, token.Semicolon)
		}
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		level.Debug(p.logger).Log("msg", "accepted ';' as pair separator", "token", p.index-1)
	}
	return p.parseValue()
}

func (p *Parser) parseList() (models.List, error) {
	if _, err := p.eat(token.LBracket); err != nil {
		return nil, err
	}

	var (
		list models.List
		// A reserved word used as a direct string element is reported
		// only once the element kinds are known to agree.
		pending error
	)
	for first := true; first || p.cur.Kind == token.Comma; first = false {
		if !first {
			if _, err := p.advance(); err != nil {
				return nil, firstErr(pending, err)
			}
		}

		start, startIndex := p.cur, p.index
		v, err := p.parseElement(&pending)
		if err != nil {
			if unexpectedOneOf(err, token.Comma, token.RBracket) {
				level.Debug(p.logger).Log("msg", "skipping empty list slot", "token", startIndex)
				continue
			}
			return nil, firstErr(pending, err)
		}
		if len(list) > 0 && list[0].Kind() != v.Kind() {
			return nil, p.semantic(errors.ListTypeMismatch, start.Value, startIndex)
		}
		list = append(list, v)
	}
	if pending != nil {
		return nil, pending
	}

	if _, err := p.eat(token.RBracket); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, &errors.EmptyCollectionError{
			Collection: errors.CollectionList,
			Index:      p.index,
			Found:      p.cur.Kind,
		}
	}
	return list, nil
}

// parseElement parses one list element. A reserved word string is returned
// as a value and its error is recorded in *pending if none is there yet.
func (p *Parser) parseElement(pending *error) (models.Value, error) {
	if p.cur.Kind != token.String {
		return p.parseValue()
	}
	v, err := p.parseString()
	if err != nil {
		return nil, err
	}
	if reservedWords.Has(string(v)) && *pending == nil {
		*pending = p.semantic(errors.ReservedWordAsString, string(v), p.index-1)
	}
	return v, nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) parseNumber() (models.Value, error) {
	index := p.index
	tok, err := p.eat(token.Number)
	if err != nil {
		return nil, err
	}
	lexeme := tok.Value
	invalid := func(kind errors.SemanticKind) error {
		return p.semantic(kind, lexeme, index)
	}

	if lexeme == "" || strings.ContainsFunc(lexeme, func(r rune) bool { return !strings.ContainsRune(numberRunes, r) }) {
		return nil, invalid(errors.InvalidNumber)
	}
	if lexeme[0] == '.' || lexeme[len(lexeme)-1] == '.' {
		return nil, invalid(errors.InvalidDecimal)
	}
	if lexeme[0] == '+' || (len(lexeme) != 1 && lexeme[0] == '0' && !strings.HasPrefix(lexeme, "0.")) {
		return nil, invalid(errors.InvalidNumber)
	}

	switch {
	case strings.ContainsAny(lexeme, "eE"):
		f, ok := parseFloat(lexeme)
		if !ok {
			return nil, invalid(errors.InvalidNumber)
		}
		if math.IsInf(f, 0) || f != math.Trunc(f) {
			return models.Float(f), nil
		}
		if f >= math.MinInt64 && f < -math.MinInt64 {
			return models.Int(int64(f)), nil
		}
		n, _ := big.NewFloat(f).Int(nil)
		return models.NewBigInt(n), nil

	case strings.Contains(lexeme, "."):
		f, ok := parseFloat(lexeme)
		if !ok {
			return nil, invalid(errors.InvalidNumber)
		}
		return models.Float(f), nil

	default:
		n, err := strconv.ParseInt(lexeme, 10, 64)
		if err == nil {
			return models.Int(n), nil
		}
		if stderrors.Is(err, strconv.ErrRange) {
			if b, ok := new(big.Int).SetString(lexeme, 10); ok {
				return models.NewBigInt(b), nil
			}
		}
		return nil, invalid(errors.InvalidNumber)
	}
}

// parseFloat converts a decimal lexeme. Magnitudes beyond float64 become
// infinities rather than failures.
func parseFloat(lexeme string) (float64, bool) {
	f, err := strconv.ParseFloat(lexeme, 64)
	if err != nil && !stderrors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}
