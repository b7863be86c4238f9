package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	err := errors.New("[RES101] ambiguous call to log(int)\n  Candidates:\n    void log(int8)\n    void log(int16)")
	RenderError(&buf, err, true)

	output := buf.String()
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if lines[0] != "[RES101] ambiguous call to log(int)" {
		t.Errorf("first line mangled: %q", lines[0])
	}
	if !strings.Contains(output, "void log(int8)") {
		t.Errorf("detail lines dropped: %s", output)
	}
}

func TestDidYouMean(t *testing.T) {
	var buf bytes.Buffer
	DidYouMean(&buf, []string{"Player", "Color"}, true)
	if got := buf.String(); got != "Did you mean: Player, Color?\n" {
		t.Errorf("unexpected suggestion line: %q", got)
	}

	buf.Reset()
	DidYouMean(&buf, nil, true)
	if buf.Len() != 0 {
		t.Errorf("expected no output for empty candidates, got: %q", buf.String())
	}
}
