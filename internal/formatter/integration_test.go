package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/strictjson/internal/parser"
)

func TestIntegration_ParseAndRender(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single pair", `{"a": 1}`, "{\n  a: 1\n}"},
		{"recovered trailing comma", `{"a": 1,}`, "{\n  a: 1\n}"},
		{"exponent to int", `[1e2]`, "[\n  100\n]"},
		{"missing value", `{"k"; }`, "{\n  k: null\n}"},
		{
			name: "document",
			input: `{
				"user": {"name": "Ada", "langs": ["go", "c"]},
				"scores": [1.5, 2.0, 1e-5],
				"active": true
			}`,
			expected: "{\n" +
				"  user: {\n" +
				"          name: \"Ada\"\n" +
				"          langs: [\n" +
				"                   \"go\"\n" +
				"                   \"c\"\n" +
				"                 ]\n" +
				"        }\n" +
				"  scores: [\n" +
				"            1.5\n" +
				"            2.0\n" +
				"            1e-05\n" +
				"          ]\n" +
				"  active: true\n" +
				"}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := parser.ParseString(tt.input)
			require.NoError(t, err)

			first := Render(v, 0)
			assert.Equal(t, tt.expected, first)
			assert.Equal(t, first, Render(v, 0), "rendering is repeatable")
		})
	}
}
