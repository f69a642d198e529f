package consensus

import (
	"fmt"

	"github.com/hughdickinson/DCWConsensus/models"
)

// Upper bounds on a word slot. A page line holds tens of words and a handful
// of volunteer alternatives; rows beyond these are treated as corrupt.
const (
	MaxWordPositions = 1024
	MaxWordRanks     = 256
)

// lineBuilder accumulates the word rows of one line.
type lineBuilder struct {
	last     models.LineWordRow
	words    []Slot
	warnings []Warning
}

func newLineBuilder(row models.LineWordRow) *lineBuilder {
	b := &lineBuilder{}
	b.add(row)
	return b
}

func (b *lineBuilder) add(row models.LineWordRow) {
	// Line-level columns repeat on every row; keep the last one seen.
	b.last = row
	if row.Position < 0 || row.Rank < 0 || row.Position >= MaxWordPositions || row.Rank >= MaxWordRanks {
		b.warnings = append(b.warnings, lineWarning(WarnInvalidSlot, row.BestLineIndex, row.Position,
			"line %d: word %q has position %d rank %d", row.BestLineIndex, row.WordText, row.Position, row.Rank))
		return
	}
	for len(b.words) <= row.Position {
		b.words = append(b.words, nil)
	}
	slot := b.words[row.Position]
	for len(slot) <= row.Rank {
		slot = append(slot, nil)
	}
	if slot[row.Rank] != nil {
		b.warnings = append(b.warnings, lineWarning(WarnDuplicateAlternative, row.BestLineIndex, row.Position,
			"line %d position %d: rank %d supplied twice, keeping %q", row.BestLineIndex, row.Position, row.Rank, row.WordText))
	}
	slot[row.Rank] = &Alternative{
		Text:               row.WordText,
		SpanStart:          row.SpanStart,
		SpanEnd:            row.SpanEnd,
		TranscriptionIndex: row.TranscriptionIndex,
		Reliability:        row.WordReliability,
	}
	b.words[row.Position] = slot
}

func (b *lineBuilder) build() (Line, []Warning) {
	warnings := b.warnings
	gapStart := -1
	for pos, slot := range b.words {
		if slot == nil {
			if gapStart < 0 {
				gapStart = pos
			}
			continue
		}
		if gapStart >= 0 {
			warnings = append(warnings, b.gapWarning(gapStart, pos-1))
			gapStart = -1
		}
		if slot.Best() == nil {
			warnings = append(warnings, lineWarning(WarnMissingRankZero, b.last.BestLineIndex, pos,
				"line %d: no rank-0 alternative at position %d", b.last.BestLineIndex, pos))
		}
	}
	return Line{
		ID:            b.last.ID,
		SubjectID:     b.last.SubjectID,
		URL:           b.last.URL,
		BestLineIndex: b.last.BestLineIndex,
		MeanX1:        b.last.MeanX1,
		MeanX2:        b.last.MeanX2,
		MeanY1:        b.last.MeanY1,
		MeanY2:        b.last.MeanY2,
		Reliability:   b.last.LineReliability,
		Words:         b.words,
	}, warnings
}

// gapWarning reports the empty positions first..last as one anomaly.
func (b *lineBuilder) gapWarning(first, last int) Warning {
	if first == last {
		return lineWarning(WarnMissingPosition, b.last.BestLineIndex, first,
			"line %d: no alternatives at position %d", b.last.BestLineIndex, first)
	}
	return lineWarning(WarnMissingPosition, b.last.BestLineIndex, first,
		"line %d: no alternatives at positions %d-%d", b.last.BestLineIndex, first, last)
}

// LineAggregator folds word rows sorted by (line, position, rank) into lines.
// A new line starts whenever bestLineIndex differs from the current run.
type LineAggregator struct {
	current  *lineBuilder
	lines    []Line
	warnings []Warning
}

// Add consumes the next row.
func (a *LineAggregator) Add(row models.LineWordRow) {
	if a.current != nil && a.current.last.BestLineIndex == row.BestLineIndex {
		a.current.add(row)
		return
	}
	a.flush()
	a.current = newLineBuilder(row)
}

func (a *LineAggregator) flush() {
	if a.current == nil {
		return
	}
	line, warnings := a.current.build()
	a.lines = append(a.lines, line)
	a.warnings = append(a.warnings, warnings...)
	a.current = nil
}

// Finish flushes the final run and returns the lines in input order.
func (a *LineAggregator) Finish() ([]Line, []Warning) {
	a.flush()
	return a.lines, a.warnings
}

// AggregateLines drains it into lines. The iterator is closed on return.
func AggregateLines(it RowIterator[models.LineWordRow]) (lines []Line, warnings []Warning, err error) {
	defer func() {
		if cerr := it.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close line rows: %w", cerr)
		}
	}()

	var agg LineAggregator
	for it.Next() {
		agg.Add(it.Row())
	}
	if err := it.Err(); err != nil {
		return nil, nil, err
	}
	lines, warnings = agg.Finish()
	return lines, warnings, nil
}
