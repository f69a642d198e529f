package consensus

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/hughdickinson/DCWConsensus/models"
)

// RowSource supplies the stored rows of one subject.
type RowSource interface {
	SubjectSummary(ctx context.Context, subjectID uint) (*models.SubjectSummary, error)
	LineWords(ctx context.Context, subjectID uint) (RowIterator[models.LineWordRow], error)
	Boxes(ctx context.Context, subjectID uint) ([]models.SubjectBox, error)
	Telegrams(ctx context.Context, subjectID uint) ([]models.Telegram, error)
	TranscriptionIndices(ctx context.Context, subjectID uint) ([]int, error)
	MetaTags(ctx context.Context, transcriptionIndices []int) ([]models.MetaTag, error)
}

// Options tune matching and text rendering.
type Options struct {
	Coverage      CoveragePredicate
	WordSeparator string
	LineBreak     string
}

// Assembler runs the pipeline for one subject. It is not safe for concurrent
// use; build one per request.
type Assembler struct {
	src       RowSource
	subjectID uint
	opts      Options
	matcher   *LineBoxMatcher
	logger    *zap.Logger

	result *Result

	indices       []int
	indicesLoaded bool
	tags          *TagIndex
}

// NewAssembler returns an assembler for subjectID reading from src.
func NewAssembler(src RowSource, subjectID uint, opts Options, logger *zap.Logger) *Assembler {
	if opts.WordSeparator == "" {
		opts.WordSeparator = DefaultWordSeparator
	}
	if opts.LineBreak == "" {
		opts.LineBreak = DefaultLineBreak
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{
		src:       src,
		subjectID: subjectID,
		opts:      opts,
		matcher:   NewLineBoxMatcher(opts.Coverage),
		logger:    logger.With(zap.Uint("subject", subjectID)),
	}
}

// AllResults fetches, aggregates, matches, assigns and resolves the subject.
// The composite is built once; later calls return the cached value.
func (a *Assembler) AllResults(ctx context.Context) (*Result, error) {
	if a.result != nil {
		return a.result, nil
	}

	summary, err := a.src.SubjectSummary(ctx, a.subjectID)
	if err != nil {
		return nil, fetchErr("subject", err)
	}

	it, err := a.src.LineWords(ctx, a.subjectID)
	if err != nil {
		return nil, fetchErr("lines", err)
	}
	lines, warnings, err := AggregateLines(it)
	if err != nil {
		return nil, fetchErr("lines", err)
	}
	a.logger.Debug("Aggregated lines", zap.Int("lines", len(lines)))

	boxes, err := a.src.Boxes(ctx, a.subjectID)
	if err != nil {
		return nil, fetchErr("boxes", err)
	}
	telegrams, err := a.src.Telegrams(ctx, a.subjectID)
	if err != nil {
		return nil, fetchErr("telegrams", err)
	}

	tags, err := a.tagIndex(ctx)
	if err != nil {
		return nil, err
	}
	for i := range lines {
		lines[i].Tags = tags.ResolveLine(lines[i])
	}

	boxLineData := a.matcher.BoxLineData(boxes, lines)
	enriched, telegramWarnings := AssignTelegrams(boxes, telegrams)
	warnings = append(warnings, telegramWarnings...)

	if lines == nil {
		lines = []Line{}
	}
	if telegrams == nil {
		telegrams = []models.Telegram{}
	}
	if warnings == nil {
		warnings = []Warning{}
	}
	for _, w := range warnings {
		a.logger.Warn("Data consistency warning", zap.String("code", string(w.Code)), zap.String("detail", w.Message))
	}
	a.logger.Debug("Assembled subject",
		zap.Int("boxes", len(boxes)),
		zap.Int("telegrams", len(telegrams)),
		zap.Int("tags", tags.Len()))

	a.result = &Result{
		Subject:     *summary,
		Telegrams:   telegrams,
		Boxes:       enriched,
		Lines:       lines,
		BoxLineData: boxLineData,
		Warnings:    warnings,
	}
	return a.result, nil
}

// ConsensusText renders the subject's best-guess text.
func (a *Assembler) ConsensusText(ctx context.Context) (*ConsensusText, error) {
	result, err := a.AllResults(ctx)
	if err != nil {
		return nil, err
	}
	text, warnings := GenerateText(result.Lines, a.opts.WordSeparator, a.opts.LineBreak)
	if warnings == nil {
		warnings = []Warning{}
	}
	return &ConsensusText{
		Header: TextHeader{
			HuntingtonID: result.Subject.HuntingtonID,
			Reliability:  result.Subject.Reliability,
		},
		Text:     text,
		Warnings: warnings,
	}, nil
}

// transcriptionIndices loads the subject's distinct transcription indices once.
func (a *Assembler) transcriptionIndices(ctx context.Context) ([]int, error) {
	if a.indicesLoaded {
		return a.indices, nil
	}
	raw, err := a.src.TranscriptionIndices(ctx, a.subjectID)
	if err != nil {
		return nil, fetchErr("transcription indices", err)
	}
	a.indices = dedupeInts(raw)
	a.indicesLoaded = true
	return a.indices, nil
}

// tagIndex loads and indexes the subject's meta-tags once.
func (a *Assembler) tagIndex(ctx context.Context) (*TagIndex, error) {
	if a.tags != nil {
		return a.tags, nil
	}
	indices, err := a.transcriptionIndices(ctx)
	if err != nil {
		return nil, err
	}
	var tags []models.MetaTag
	if len(indices) > 0 {
		tags, err = a.src.MetaTags(ctx, indices)
		if err != nil {
			return nil, fetchErr("meta tags", err)
		}
	}
	a.tags = NewTagIndex(tags)
	return a.tags, nil
}

func fetchErr(stage string, err error) error {
	if errors.Is(err, ErrSubjectNotFound) {
		return err
	}
	return &FetchError{Stage: stage, Err: err}
}

func dedupeInts(in []int) []int {
	out := make([]int, 0, len(in))
	seen := make(map[int]struct{}, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
