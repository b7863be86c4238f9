package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// RenderError writes a failure in the house shape: the first line
// (usually "[CODE] message") red and bold, any detail lines verbatim
// below it.
func RenderError(w io.Writer, err error, noColor bool) {
	red := color.New(color.FgRed, color.Bold)
	if noColor {
		red.DisableColor()
	}
	lines := strings.Split(err.Error(), "\n")
	red.Fprintln(w, lines[0])
	for _, line := range lines[1:] {
		fmt.Fprintln(w, line)
	}
}

// DidYouMean writes a suggestion line when candidates is non-empty.
func DidYouMean(w io.Writer, candidates []string, noColor bool) {
	if len(candidates) == 0 {
		return
	}
	cyan := color.New(color.FgCyan)
	if noColor {
		cyan.DisableColor()
	}
	cyan.Fprintf(w, "Did you mean: %s?\n", strings.Join(candidates, ", "))
}
