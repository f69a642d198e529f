package consensus

import "github.com/hughdickinson/DCWConsensus/models"

// wordRow builds a join row for line lineIndex whose geometry is derived from
// the index so that different lines never share line-level columns.
func wordRow(lineIndex, position, rank int, text string, transcription int) models.LineWordRow {
	return models.LineWordRow{
		ID:                 uint(100 + lineIndex),
		SubjectID:          7,
		BestLineIndex:      lineIndex,
		MeanX1:             10,
		MeanX2:             90,
		MeanY1:             float64(20 * lineIndex),
		MeanY2:             float64(20*lineIndex + 10),
		LineReliability:    0.5,
		Position:           position,
		Rank:               rank,
		WordText:           text,
		SpanStart:          position * 5,
		SpanEnd:            position*5 + len(text),
		TranscriptionIndex: transcription,
	}
}

func lineAt(index int, x1, x2, y1, y2, reliability float64) Line {
	return Line{
		ID:            uint(index + 1),
		BestLineIndex: index,
		MeanX1:        x1,
		MeanX2:        x2,
		MeanY1:        y1,
		MeanY2:        y2,
		Reliability:   reliability,
	}
}

func boxAt(index int, x, y, w, h float64, marked int) models.SubjectBox {
	return models.SubjectBox{
		SubjectID:      7,
		BestBoxIndex:   index,
		MeanX:          x,
		MeanY:          y,
		MeanWidth:      w,
		MeanHeight:     h,
		NumBoxesMarked: marked,
	}
}

func codes(warnings []Warning) []WarningCode {
	out := make([]WarningCode, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, w.Code)
	}
	return out
}
