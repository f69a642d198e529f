// Package consensus fuses the aggregated transcriptions of one subject into a
// single structured record: lines with ranked word alternatives, user-drawn
// boxes with the lines they enclose, telegram numbers and span-level tags.
package consensus

import "github.com/hughdickinson/DCWConsensus/models"

// Alternative is one ranked transcription of a word slot.
type Alternative struct {
	Text               string  `json:"text"`
	SpanStart          int     `json:"spanStart"`
	SpanEnd            int     `json:"spanEnd"`
	TranscriptionIndex int     `json:"transcriptionIndex"`
	Reliability        float64 `json:"reliability"`
}

// Slot holds the alternatives of one word position indexed by rank.
// A nil entry is a rank that no row supplied.
type Slot []*Alternative

// Best returns the rank-0 alternative, or nil when it is absent.
func (s Slot) Best() *Alternative {
	if len(s) == 0 {
		return nil
	}
	return s[0]
}

// Line is one aggregated text line of a subject.
type Line struct {
	ID            uint    `json:"id"`
	SubjectID     uint    `json:"subjectId"`
	URL           string  `json:"url"`
	BestLineIndex int     `json:"bestLineIndex"`
	MeanX1        float64 `json:"meanX1"`
	MeanX2        float64 `json:"meanX2"`
	MeanY1        float64 `json:"meanY1"`
	MeanY2        float64 `json:"meanY2"`
	Reliability   float64 `json:"lineReliability"`

	// Words is indexed by position; a nil Slot is a missing position.
	Words []Slot `json:"words"`
	// Tags mirrors Words: Tags[position][rank] is the tag state resolved for
	// that alternative.
	Tags [][]*models.TagState `json:"tags"`
}

// MidY is the vertical midpoint of the line.
func (l Line) MidY() float64 { return 0.5 * (l.MeanY1 + l.MeanY2) }

// Box is a subject box enriched with the telegram record it carries.
type Box struct {
	models.SubjectBox
	TelegramData models.Telegram `json:"telegramData"`
}

// BoxStats aggregates the reliability of the lines matched to one box.
// Reliability is nil when no line matched.
type BoxStats struct {
	Reliability *float64 `json:"reliability"`
	NumLines    int      `json:"numLines"`
}

// BoxLineData maps bestBoxIndex to the matched lines and their statistics.
type BoxLineData struct {
	BoxLines map[int][]Line   `json:"boxLines"`
	BoxStats map[int]BoxStats `json:"boxStats"`
}

// Result is the composite consensus record of one subject.
type Result struct {
	Subject     models.SubjectSummary `json:"subjectData"`
	Telegrams   []models.Telegram     `json:"telegramData"`
	Boxes       []Box                 `json:"boxData"`
	Lines       []Line                `json:"lineData"`
	BoxLineData BoxLineData           `json:"boxLineData"`
	Warnings    []Warning             `json:"warnings"`
}

// Outcome classifies the result for the dispatch layer.
func (r *Result) Outcome() Outcome {
	if len(r.Warnings) > 0 {
		return OutcomeWarnings
	}
	return OutcomeOK
}

// TextHeader identifies the subject a consensus text belongs to.
type TextHeader struct {
	HuntingtonID string  `json:"huntingtonId"`
	Reliability  float64 `json:"reliability"`
}

// ConsensusText is the flat best-guess rendering of a subject.
type ConsensusText struct {
	Header   TextHeader `json:"header"`
	Text     string     `json:"text"`
	Warnings []Warning  `json:"warnings"`
}

// Outcome classifies the text for the dispatch layer.
func (t *ConsensusText) Outcome() Outcome {
	if len(t.Warnings) > 0 {
		return OutcomeWarnings
	}
	return OutcomeOK
}
