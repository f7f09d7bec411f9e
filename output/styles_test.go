package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewStyles(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	if styles == nil {
		t.Fatal("NewStyles should return non-nil Styles")
	}
	if styles.output == nil {
		t.Error("Styles should have non-nil output")
	}
}

func TestStylesContainText(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	cases := map[string]string{
		"Success":  styles.Success("done"),
		"Error":    styles.Error("broken"),
		"FilePath": styles.FilePath("/path/to/file.fsx"),
		"Keyword":  styles.Keyword("match"),
		"Literal":  styles.Literal("0xFF"),
		"Comment":  styles.Comment("// note"),
		"Warning":  styles.Warning("careful"),
		"Dim":      styles.Dim("secondary"),
	}
	wants := map[string]string{
		"Success":  "done",
		"Error":    "broken",
		"FilePath": "/path/to/file.fsx",
		"Keyword":  "match",
		"Literal":  "0xFF",
		"Comment":  "// note",
		"Warning":  "careful",
		"Dim":      "secondary",
	}

	for name, got := range cases {
		if !strings.Contains(got, wants[name]) {
			t.Errorf("%s() should contain %q, got: %s", name, wants[name], got)
		}
	}
}

func TestStylesTiming(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	fast := styles.Timing("3ms", false)
	slow := styles.Timing("450ms", true)

	if !strings.Contains(fast, "3ms") {
		t.Errorf("Timing() should contain duration, got: %s", fast)
	}
	if !strings.Contains(slow, "450ms") {
		t.Errorf("Timing() should contain duration, got: %s", slow)
	}
}

func TestStylesOutput(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	if styles.Output() == nil {
		t.Error("Output() should expose the underlying termenv output")
	}
}
