package consensus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateText(t *testing.T) {
	lines := []Line{
		{BestLineIndex: 0, Words: []Slot{
			{{Text: "Washington"}, {Text: "Washingtn"}},
			{{Text: "D.C."}},
		}},
		{BestLineIndex: 1, Words: []Slot{
			{{Text: "Maj."}},
			{{Text: "Gen."}},
			{{Text: "Halleck"}},
		}},
	}

	text, warnings := GenerateText(lines, " ", "\n")
	assert.Empty(t, warnings)
	assert.Equal(t, "Washington D.C.\nMaj. Gen. Halleck", text)

	text, _ = GenerateText(lines, "_", "<br>")
	assert.Equal(t, "Washington_D.C.<br>Maj._Gen._Halleck", text)
}

func TestGenerateText_Empty(t *testing.T) {
	text, warnings := GenerateText(nil, " ", "\n")
	assert.Equal(t, "", text)
	assert.Empty(t, warnings)
}

func TestGenerateText_MissingRankZero(t *testing.T) {
	lines := []Line{
		{BestLineIndex: 2, Words: []Slot{
			{{Text: "send"}},
			{nil, {Text: "ammunition"}},
			nil,
			{{Text: "forward"}},
		}},
	}

	text, warnings := GenerateText(lines, " ", "\n")
	assert.Equal(t, "send forward", text)
	assert.Len(t, warnings, 2)
	for _, w := range warnings {
		assert.Equal(t, WarnMissingRankZero, w.Code)
		assert.Equal(t, 2, w.LineIndex)
	}
	assert.Equal(t, 1, warnings[0].Position)
	assert.Equal(t, 2, warnings[1].Position)
}

func TestGenerateText_NormalisesToNFC(t *testing.T) {
	lines := []Line{{Words: []Slot{{{Text: "Cafe\u0301"}}}}}
	text, _ := GenerateText(lines, " ", "\n")
	assert.Equal(t, "Caf\u00e9", text)
}
