package e2e_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/strictjson/internal/formatter"
	"github.com/mcncl/strictjson/internal/parser"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "../../main.go"}, args...)...)
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// TestEndToEnd_ComplexNestedStructures renders a deeply nested document
// and checks that it matches the in-process pipeline.
func TestEndToEnd_ComplexNestedStructures(t *testing.T) {
	tempDir := t.TempDir()

	content := `{
		"id": 12345,
		"updated_at": null,
		"config": {
			"enabled": true,
			"timeout_seconds": 30,
			"features": ["logging", "metrics", "alerting"],
			"rate_limits": {"per_second": 100, "burst": 1.5e2},
			"environments": {
				"development": {"debug"; true, "log_level": "debug"},
				"production": {"debug": false, "log_level": "info",}
			}
		},
		"users": [
			{"id": 1, "name": "Alice", "roles": ["admin", "user"]},
			{"id": 2, "name": "Bob", "roles": ["user"]}
		],
		"stats": {
			"requests": 1234567,
			"success_rate": 0.9999,
			"response_times": [0.045, 0.067, 0.032, 0.051],
			"tiny": 1e-7
		},
		"active": true
	}`
	file := filepath.Join(tempDir, "complex.txt")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	stdout, stderr, err := runCLI(t, "", file)
	require.NoError(t, err, "CLI command failed: %s", stderr)

	v, err := parser.ParseString(content)
	require.NoError(t, err)
	assert.Equal(t, formatter.NewFormatter().Format(v), stdout)

	assert.Contains(t, stdout, "  id: 12345\n")
	assert.Contains(t, stdout, "  updated_at: null\n")
	assert.Contains(t, stdout, `log_level: "debug"`)
	assert.Contains(t, stdout, "burst: 150\n")
	assert.Contains(t, stdout, "success_rate: 0.9999\n")
	assert.Contains(t, stdout, "tiny: 1e-07\n")
}

// TestEndToEnd_MultipleInputs checks headers, ordering and per-input
// failures across several files.
func TestEndToEnd_MultipleInputs(t *testing.T) {
	tempDir := t.TempDir()
	docs := []struct {
		name    string
		content string
	}{
		{"a.txt", `[1]`},
		{"b.txt", `{"null": 1}`},
		{"c.txt", `{"x": "y"}`},
	}
	var files []string
	for _, d := range docs {
		path := filepath.Join(tempDir, d.name)
		require.NoError(t, os.WriteFile(path, []byte(d.content), 0o644))
		files = append(files, path)
	}

	stdout, stderr, err := runCLI(t, "", append(files, "--no-color", "-j", "3")...)
	assert.Error(t, err)

	want := "==> " + files[0] + " <==\n[\n  1\n]\n" +
		"==> " + files[2] + " <==\n{\n  x: \"y\"\n}\n"
	assert.Equal(t, want, stdout)
	assert.Contains(t, stderr, files[1]+": Semantic error [reserved_word_as_key]")
	assert.Contains(t, stderr, "1 of 3 inputs failed")
}

// TestEndToEnd_ConfigFile checks that settings are read from a YAML file
// and that flags override them.
func TestEndToEnd_ConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	cfgFile := filepath.Join(tempDir, "strictjson.yml")
	cfg := "output:\n  depth: 4\n  trailing_newline: false\nlogging:\n  level: warn\n"
	require.NoError(t, os.WriteFile(cfgFile, []byte(cfg), 0o644))

	stdout, stderr, err := runCLI(t, `[true]`, "-c", cfgFile)
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, "[\n      true\n    ]", stdout)

	stdout, stderr, err = runCLI(t, `[true]`, "-c", cfgFile, "--depth", "0")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, "[\n  true\n]", stdout)
}

// TestEndToEnd_DebugLogging checks that recoveries are logged as JSON on
// stderr when debug logging is on.
func TestEndToEnd_DebugLogging(t *testing.T) {
	stdout, stderr, err := runCLI(t, `[1,,2]`, "-d", "--log-format", "json")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, "[\n  1\n  2\n]\n", stdout)
	assert.Contains(t, stderr, `"level":"debug"`)
	assert.Contains(t, stderr, "skipping empty list slot")
}

// TestEndToEnd_EdgeCases runs documents that exercise recovery and the
// error categories through the binary.
func TestEndToEnd_EdgeCases(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{
			name:  "Scalar document",
			input: `"just a string"`,
			want:  "\"just a string\"\n",
		},
		{
			name:  "Missing pair value",
			input: `{"a"}`,
			want:  "{\n  a: null\n}\n",
		},
		{
			name:  "Empty list slots",
			input: `[, "a", , "b",]`,
			want:  "[\n  \"a\"\n  \"b\"\n]\n",
		},
		{
			name:  "Multibyte key width",
			input: `{"ключ": [1]}`,
			want:  "{\n  ключ: [\n          1\n        ]\n}\n",
		},
		{
			name:    "Reserved word in list",
			input:   `["true"]`,
			wantErr: "Semantic error [reserved_word_as_string]",
		},
		{
			name:    "Empty dictionary",
			input:   `{}`,
			wantErr: "Structural error",
		},
		{
			name:    "Bare word",
			input:   `[nul]`,
			wantErr: "Lexical error",
		},
		{
			name:    "Trailing decimal point",
			input:   `[1.]`,
			wantErr: "Semantic error [invalid_decimal]",
		},
		{
			name:    "Duplicate key",
			input:   `{"a": 1, "a": 2}`,
			wantErr: "Semantic error [duplicate_key]",
		},
		{
			name:    "Mixed list",
			input:   `[1, "one"]`,
			wantErr: "Semantic error [list_type_mismatch]",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stdout, stderr, err := runCLI(t, tc.input, "--no-color")
			if tc.wantErr != "" {
				assert.Error(t, err)
				assert.Contains(t, stderr, tc.wantErr)
				assert.Empty(t, stdout)
				return
			}
			require.NoError(t, err, "CLI command failed: %s", stderr)
			assert.Equal(t, tc.want, stdout)
		})
	}
}

// TestEndToEnd_GeneratedDocuments pushes large generated documents through
// the binary.
func TestEndToEnd_GeneratedDocuments(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping generated documents in short mode")
	}

	docs := map[string]string{
		"nested": generateNested(4, 3),
		"wide":   generateWide(200),
		"array":  generateArray(200),
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			stdout, stderr, err := runCLI(t, doc)
			require.NoError(t, err, "CLI command failed: %s", stderr)

			v, err := parser.ParseString(doc)
			require.NoError(t, err)
			assert.Equal(t, formatter.Render(v, 0)+"\n", stdout)
		})
	}
}
