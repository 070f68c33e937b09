package formatter

import (
	"bytes"
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/strictjson/internal/models"
)

func dict(kv ...any) *models.Dictionary {
	d := models.NewDictionary()
	for i := 0; i < len(kv); i += 2 {
		d.Set(kv[i].(string), kv[i+1].(models.Value))
	}
	return d
}

func bigInt(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad integer " + s)
	}
	return n
}

func TestRender_Scalars(t *testing.T) {
	tests := []struct {
		name     string
		value    models.Value
		expected string
	}{
		{"true", models.Bool(true), "true"},
		{"false", models.Bool(false), "false"},
		{"int", models.Int(-42), "-42"},
		{"big int", models.NewBigInt(bigInt("-99999999999999999999")), "-99999999999999999999"},
		{"float", models.Float(2.5), "2.5"},
		{"string", models.String("hello world"), `"hello world"`},
		{"raw string", models.String(`a\nb`), `"a\nb"`},
		{"null", models.Null{}, "null"},
		{"nil", nil, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Render(tt.value, 0))
			assert.Equal(t, tt.expected, Render(tt.value, 7), "scalars ignore depth")
		})
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{-2.5, "-2.5"},
		{0.1, "0.1"},
		{123.456, "123.456"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{2.5e-7, "2.5e-07"},
		{1e15, "1000000000000000.0"},
		{1e16, "1e+16"},
		{1.5e16, "1.5e+16"},
		{1e100, "1e+100"},
		{math.Copysign(0, -1), "-0.0"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatFloat(tt.in))
		})
	}
}

func TestRender_Collections(t *testing.T) {
	tests := []struct {
		name     string
		value    models.Value
		expected string
	}{
		{
			name:     "single pair",
			value:    dict("a", models.Int(1)),
			expected: "{\n  a: 1\n}",
		},
		{
			name:     "flat list",
			value:    models.List{models.String("x"), models.String("y")},
			expected: "[\n  \"x\"\n  \"y\"\n]",
		},
		{
			name:     "list of lists",
			value:    models.List{models.List{models.Int(1)}},
			expected: "[\n  [\n    1\n  ]\n]",
		},
		{
			name: "nested under keys",
			value: dict(
				"ab", models.List{models.Int(1), models.Int(2)},
				"c", dict("d", models.Bool(true)),
			),
			expected: "{\n" +
				"  ab: [\n" +
				"        1\n" +
				"        2\n" +
				"      ]\n" +
				"  c: {\n" +
				"       d: true\n" +
				"     }\n" +
				"}",
		},
		{
			name:     "key width counts characters",
			value:    dict("é", models.List{models.Int(1)}),
			expected: "{\n  é: [\n       1\n     ]\n}",
		},
		{
			name:     "insertion order",
			value:    dict("z", models.Null{}, "a", models.Float(0.5)),
			expected: "{\n  z: null\n  a: 0.5\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Render(tt.value, 0))
		})
	}
}

func TestRender_Depth(t *testing.T) {
	v := dict("a", models.Int(1))
	assert.Equal(t, "{\n    a: 1\n  }", Render(v, 2))
	assert.Equal(t, "[\n     1\n   ]", Render(models.List{models.Int(1)}, 3))
}

func TestFormatter(t *testing.T) {
	v := dict("a", models.Int(1))

	f := NewFormatter()
	assert.Equal(t, "{\n  a: 1\n}\n", f.Format(v))

	f.Depth = 2
	f.TrailingNewline = false
	assert.Equal(t, "{\n    a: 1\n  }", f.Format(v))

	var buf bytes.Buffer
	require.NoError(t, NewFormatter().Write(&buf, models.List{models.Bool(false)}))
	assert.Equal(t, "[\n  false\n]\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestFormatter_WriteError(t *testing.T) {
	err := NewFormatter().Write(failingWriter{}, models.Null{})
	assert.EqualError(t, err, "disk full")
}
