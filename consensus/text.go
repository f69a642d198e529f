package consensus

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	DefaultWordSeparator = " "
	DefaultLineBreak     = "\n"
)

// GenerateText renders the rank-0 word of every position, joining words with
// wordSep and lines with lineBreak. A position without a rank-0 alternative is
// left out of the text and reported.
func GenerateText(lines []Line, wordSep, lineBreak string) (string, []Warning) {
	var warnings []Warning
	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		words := make([]string, 0, len(line.Words))
		for pos, slot := range line.Words {
			best := slot.Best()
			if best == nil {
				warnings = append(warnings, lineWarning(WarnMissingRankZero, line.BestLineIndex, pos,
					"line %d: no rank-0 alternative at position %d", line.BestLineIndex, pos))
				continue
			}
			words = append(words, norm.NFC.String(best.Text))
		}
		rendered = append(rendered, strings.Join(words, wordSep))
	}
	return strings.Join(rendered, lineBreak), warnings
}
