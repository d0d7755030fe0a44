// Package textwrap breaks dialog text into lines that fit the dialog box.
package textwrap

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// Wrap splits text into lines no wider than width cells. Words are kept
// whole where possible; runs without spaces, such as Japanese text, are
// broken wherever they overflow. A width <= 0 only splits on newlines.
func Wrap(text string, width int) []string {
	if width > 0 {
		text = wordwrap.String(text, width)
		text = wrap.String(text, width)
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}
