package consensus

import "github.com/hughdickinson/DCWConsensus/models"

type tagKey struct {
	transcriptionIndex int
	lineIndex          int
}

// TagIndex groups meta-tags by (transcriptionIndex, bestLineIndex), keeping
// the fetch order inside each group. The first containing tag wins.
type TagIndex struct {
	byKey map[tagKey][]models.MetaTag
}

// NewTagIndex indexes tags. Exact duplicates are dropped.
func NewTagIndex(tags []models.MetaTag) *TagIndex {
	ix := &TagIndex{byKey: make(map[tagKey][]models.MetaTag)}
	type span struct {
		key        tagKey
		state      models.TagState
		start, end int
	}
	seen := make(map[span]struct{}, len(tags))
	for _, tag := range tags {
		key := tagKey{transcriptionIndex: tag.TranscriptionIndex, lineIndex: tag.BestLineIndex}
		s := span{key: key, state: tag.State, start: tag.Start, end: tag.End}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		ix.byKey[key] = append(ix.byKey[key], tag)
	}
	return ix
}

// Len returns the number of indexed tags.
func (ix *TagIndex) Len() int {
	if ix == nil {
		return 0
	}
	n := 0
	for _, group := range ix.byKey {
		n += len(group)
	}
	return n
}

// Resolve returns the state of the first tag on the same transcription and
// line whose span contains [start, end], or nil.
func (ix *TagIndex) Resolve(transcriptionIndex, lineIndex, start, end int) *models.TagState {
	if ix == nil {
		return nil
	}
	for _, tag := range ix.byKey[tagKey{transcriptionIndex: transcriptionIndex, lineIndex: lineIndex}] {
		if tag.Start <= start && tag.End >= end {
			state := tag.State
			return &state
		}
	}
	return nil
}

// ResolveLine resolves every alternative of line. The result has the same
// shape as line.Words; absent alternatives stay nil.
func (ix *TagIndex) ResolveLine(line Line) [][]*models.TagState {
	out := make([][]*models.TagState, len(line.Words))
	for pos, slot := range line.Words {
		if slot == nil {
			continue
		}
		states := make([]*models.TagState, len(slot))
		for rank, alt := range slot {
			if alt != nil {
				states[rank] = ix.Resolve(alt.TranscriptionIndex, line.BestLineIndex, alt.SpanStart, alt.SpanEnd)
			}
		}
		out[pos] = states
	}
	return out
}
