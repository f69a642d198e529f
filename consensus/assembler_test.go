package consensus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hughdickinson/DCWConsensus/models"
)

type fakeSource struct {
	summary   *models.SubjectSummary
	rows      []models.LineWordRow
	boxes     []models.SubjectBox
	telegrams []models.Telegram
	indices   []int
	tags      []models.MetaTag

	failStage string
	calls     map[string]int
	order     []string
}

func (f *fakeSource) record(stage string) error {
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[stage]++
	f.order = append(f.order, stage)
	if f.failStage == stage {
		return errors.New("database gone away")
	}
	return nil
}

func (f *fakeSource) SubjectSummary(ctx context.Context, subjectID uint) (*models.SubjectSummary, error) {
	if err := f.record("subject"); err != nil {
		return nil, err
	}
	if f.summary == nil {
		return nil, ErrSubjectNotFound
	}
	return f.summary, nil
}

func (f *fakeSource) LineWords(ctx context.Context, subjectID uint) (RowIterator[models.LineWordRow], error) {
	if err := f.record("lines"); err != nil {
		return nil, err
	}
	return FromSlice(f.rows), nil
}

func (f *fakeSource) Boxes(ctx context.Context, subjectID uint) ([]models.SubjectBox, error) {
	return f.boxes, f.record("boxes")
}

func (f *fakeSource) Telegrams(ctx context.Context, subjectID uint) ([]models.Telegram, error) {
	return f.telegrams, f.record("telegrams")
}

func (f *fakeSource) TranscriptionIndices(ctx context.Context, subjectID uint) ([]int, error) {
	return f.indices, f.record("indices")
}

func (f *fakeSource) MetaTags(ctx context.Context, indices []int) ([]models.MetaTag, error) {
	return f.tags, f.record("tags")
}

func twoLineSource() *fakeSource {
	line0 := []models.LineWordRow{wordRow(0, 0, 0, "Fort", 21), wordRow(0, 1, 0, "Monroe", 21)}
	line1 := []models.LineWordRow{wordRow(1, 0, 0, "Gen", 21), wordRow(1, 0, 1, "Genl", 22)}
	for i := range line0 {
		line0[i].LineReliability = 0.8
	}
	for i := range line1 {
		line1[i].LineReliability = 0.6
	}
	return &fakeSource{
		summary: &models.SubjectSummary{URL: "https://example.org/p1.jpg", HuntingtonID: "mssEC_01_001", Reliability: 0.75},
		rows:    append(line0, line1...),
		boxes: []models.SubjectBox{
			boxAt(0, 0, 0, 100, 50, 2),
			boxAt(1, 0, 400, 100, 50, 1),
		},
		telegrams: []models.Telegram{{"telegramId": int64(1), "number": "37"}},
		indices:   []int{22, 21, 21},
		tags:      []models.MetaTag{tag(22, 1, 0, 4, models.TagUnclear)},
	}
}

func TestAssembler_AllResults(t *testing.T) {
	src := twoLineSource()
	a := NewAssembler(src, 7, Options{}, zap.NewNop())

	result, err := a.AllResults(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeOK, result.Outcome())
	assert.Equal(t, "mssEC_01_001", result.Subject.HuntingtonID)
	require.Len(t, result.Lines, 2)
	require.Len(t, result.Boxes, 2)
	assert.Equal(t, "37", result.Boxes[0].TelegramData["number"])
	assert.Nil(t, result.Boxes[1].TelegramData)

	stats := result.BoxLineData.BoxStats[0]
	assert.Equal(t, 2, stats.NumLines)
	require.NotNil(t, stats.Reliability)
	assert.InDelta(t, 0.7, *stats.Reliability, 1e-9)
	assert.Len(t, result.BoxLineData.BoxLines[0], 2)
	assert.Nil(t, result.BoxLineData.BoxStats[1].Reliability)

	tags := result.Lines[1].Tags
	require.Len(t, tags, 1)
	require.Len(t, tags[0], 2)
	assert.Nil(t, tags[0][0])
	assert.Equal(t, models.TagUnclear, *tags[0][1])

	assert.Equal(t, []string{"subject", "lines", "boxes", "telegrams", "indices", "tags"}, src.order)
}

func TestAssembler_CachesResult(t *testing.T) {
	src := twoLineSource()
	a := NewAssembler(src, 7, Options{}, nil)

	first, err := a.AllResults(context.Background())
	require.NoError(t, err)
	second, err := a.AllResults(context.Background())
	require.NoError(t, err)
	_, err = a.ConsensusText(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	for stage, n := range src.calls {
		assert.Equal(t, 1, n, stage)
	}
}

func TestAssembler_TagsMemoised(t *testing.T) {
	src := twoLineSource()
	a := NewAssembler(src, 7, Options{}, nil)

	for i := 0; i < 3; i++ {
		ix, err := a.tagIndex(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, ix.Len())
	}
	indices, err := a.transcriptionIndices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{21, 22}, indices)
	assert.Equal(t, 1, src.calls["indices"])
	assert.Equal(t, 1, src.calls["tags"])
}

func TestAssembler_NoTranscriptionsSkipsTagFetch(t *testing.T) {
	src := twoLineSource()
	src.rows = nil
	src.indices = nil
	a := NewAssembler(src, 7, Options{}, nil)

	result, err := a.AllResults(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, result.Lines)
	assert.Empty(t, result.Lines)
	assert.Zero(t, src.calls["tags"])
	assert.Equal(t, 0, result.BoxLineData.BoxStats[0].NumLines)
}

func TestAssembler_EmptySubject(t *testing.T) {
	src := &fakeSource{summary: &models.SubjectSummary{HuntingtonID: "blank"}}
	result, err := NewAssembler(src, 7, Options{}, nil).AllResults(context.Background())
	require.NoError(t, err)

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"subjectData": {"url": "", "huntingtonId": "blank", "reliability": 0},
		"telegramData": [],
		"boxData": [],
		"lineData": [],
		"boxLineData": {"boxLines": {}, "boxStats": {}},
		"warnings": []
	}`, string(data))
}

func TestAssembler_TelegramMismatchIsWarning(t *testing.T) {
	src := twoLineSource()
	src.telegrams = nil
	result, err := NewAssembler(src, 7, Options{}, nil).AllResults(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeWarnings, result.Outcome())
	assert.Equal(t, []WarningCode{WarnTelegramShortage}, codes(result.Warnings))
	assert.Nil(t, result.Boxes[0].TelegramData)
}

func TestAssembler_NotFound(t *testing.T) {
	src := &fakeSource{}
	_, err := NewAssembler(src, 7, Options{}, nil).AllResults(context.Background())
	assert.ErrorIs(t, err, ErrSubjectNotFound)
	assert.Equal(t, []string{"subject"}, src.order)
}

func TestAssembler_FetchFailureAborts(t *testing.T) {
	for _, stage := range []string{"lines", "boxes", "telegrams", "indices", "tags"} {
		t.Run(stage, func(t *testing.T) {
			src := twoLineSource()
			src.failStage = stage
			a := NewAssembler(src, 7, Options{}, nil)

			result, err := a.AllResults(context.Background())
			assert.Nil(t, result)
			var fe *FetchError
			require.ErrorAs(t, err, &fe)
			assert.EqualError(t, fe.Unwrap(), "database gone away")
			assert.Equal(t, stage, src.order[len(src.order)-1])
		})
	}
}

func TestAssembler_ConsensusText(t *testing.T) {
	src := twoLineSource()
	text, err := NewAssembler(src, 7, Options{WordSeparator: " ", LineBreak: " / "}, nil).ConsensusText(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeOK, text.Outcome())
	assert.Equal(t, "Fort Monroe / Gen", text.Text)
	assert.Equal(t, TextHeader{HuntingtonID: "mssEC_01_001", Reliability: 0.75}, text.Header)
}
