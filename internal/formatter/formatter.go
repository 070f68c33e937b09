// Package formatter renders value trees in their canonical indented text
// form. The output is a display form: keys are written without quotes and
// is not meant to be parsed again.
package formatter

import (
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mcncl/strictjson/internal/models"
)

// Formatter writes rendered trees to an output.
type Formatter struct {
	// Depth is the indentation of the lines following the first one.
	Depth int
	// TrailingNewline adds a newline after the rendered tree.
	TrailingNewline bool
}

// NewFormatter creates a Formatter with no starting indentation that ends
// its output with a newline.
func NewFormatter() *Formatter {
	return &Formatter{TrailingNewline: true}
}

// Format returns the rendering of v.
func (f *Formatter) Format(v models.Value) string {
	s := Render(v, f.Depth)
	if f.TrailingNewline {
		s += "\n"
	}
	return s
}

// Write renders v to w.
func (f *Formatter) Write(w io.Writer, v models.Value) error {
	_, err := io.WriteString(w, f.Format(v))
	return err
}

// Render returns the canonical text of v. Nested lines are indented by
// depth spaces plus the width of their enclosing keys and brackets. A nil
// value renders as null.
func Render(v models.Value, depth int) string {
	var sb strings.Builder
	render(&sb, v, depth)
	return sb.String()
}

func render(sb *strings.Builder, v models.Value, depth int) {
	switch v := v.(type) {
	case models.Bool:
		sb.WriteString(strconv.FormatBool(bool(v)))
	case models.Int:
		sb.WriteString(strconv.FormatInt(int64(v), 10))
	case models.BigInt:
		sb.WriteString(v.String())
	case models.Float:
		sb.WriteString(FormatFloat(float64(v)))
	case models.String:
		sb.WriteByte('"')
		sb.WriteString(string(v))
		sb.WriteByte('"')
	case models.List:
		indent := strings.Repeat(" ", depth)
		sb.WriteString("[\n")
		for _, elem := range v {
			sb.WriteString(indent)
			sb.WriteString("  ")
			render(sb, elem, depth+2)
			sb.WriteByte('\n')
		}
		sb.WriteString(indent)
		sb.WriteByte(']')
	case *models.Dictionary:
		indent := strings.Repeat(" ", depth)
		sb.WriteString("{\n")
		for key, val := range v.All() {
			sb.WriteString(indent)
			sb.WriteString("  ")
			sb.WriteString(key)
			sb.WriteString(": ")
			render(sb, val, depth+4+utf8.RuneCountInString(key))
			sb.WriteByte('\n')
		}
		sb.WriteString(indent)
		sb.WriteByte('}')
	default:
		sb.WriteString("null")
	}
}

// FormatFloat returns the shortest decimal text that reads back as f. Whole
// numbers keep a ".0" suffix, and magnitudes below 1e-4 or from 1e16 up
// use exponent notation with at least two exponent digits, as in 1e-05.
// Infinities are inf and -inf.
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	exp := strconv.FormatFloat(f, 'e', -1, 64)
	if i := strings.IndexByte(exp, 'e'); i >= 0 {
		if n, err := strconv.Atoi(exp[i+1:]); err == nil && (n < -4 || n >= 16) {
			return exp
		}
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
