package consensus

import (
	"fmt"
	"math"

	"github.com/hughdickinson/DCWConsensus/models"
)

// DefaultCoverageThreshold is the fraction of a line's width that must fall
// inside a box.
const DefaultCoverageThreshold = 0.95

// Coverage predicate names accepted by CoverageByName.
const (
	CoverageOverlapFraction = "overlap_fraction"
	CoverageLineOverOverlap = "line_over_overlap"
)

// Interval is a closed horizontal extent.
type Interval struct {
	Min, Max float64
}

// Width of the interval.
func (i Interval) Width() float64 { return i.Max - i.Min }

// Overlap returns the signed overlap of a and b; it is <= 0 when they are
// disjoint or only touch.
func Overlap(a, b Interval) float64 {
	return math.Min(a.Max, b.Max) - math.Max(a.Min, b.Min)
}

// CoveragePredicate decides whether a line's horizontal extent is covered by a
// box's horizontal extent.
type CoveragePredicate func(line, box Interval) bool

// OverlapFraction matches when overlap / lineWidth >= threshold.
func OverlapFraction(threshold float64) CoveragePredicate {
	return func(line, box Interval) bool {
		overlap := Overlap(line, box)
		if overlap <= 0 || line.Width() <= 0 {
			return false
		}
		return overlap/line.Width() >= threshold
	}
}

// LineOverOverlap matches when lineWidth / overlap > threshold. The overlap
// never exceeds the line width, so for thresholds below 1 any positive overlap
// matches.
func LineOverOverlap(threshold float64) CoveragePredicate {
	return func(line, box Interval) bool {
		overlap := Overlap(line, box)
		if overlap <= 0 {
			return false
		}
		return line.Width()/overlap > threshold
	}
}

// CoverageByName returns the named predicate.
func CoverageByName(name string, threshold float64) (CoveragePredicate, error) {
	switch name {
	case "", CoverageOverlapFraction:
		return OverlapFraction(threshold), nil
	case CoverageLineOverOverlap:
		return LineOverOverlap(threshold), nil
	}
	return nil, fmt.Errorf("unknown coverage predicate %q", name)
}

// LineBoxMatcher assigns lines to boxes by geometry.
type LineBoxMatcher struct {
	covers CoveragePredicate
}

// NewLineBoxMatcher returns a matcher using covers, or OverlapFraction at the
// default threshold when covers is nil.
func NewLineBoxMatcher(covers CoveragePredicate) *LineBoxMatcher {
	if covers == nil {
		covers = OverlapFraction(DefaultCoverageThreshold)
	}
	return &LineBoxMatcher{covers: covers}
}

// Contains reports whether line belongs to box: its vertical midpoint lies
// strictly inside the box and the box covers its horizontal extent.
func (m *LineBoxMatcher) Contains(box models.SubjectBox, line Line) bool {
	mid := line.MidY()
	if !(mid > box.MeanY && mid < box.MeanY+box.MeanHeight) {
		return false
	}
	return m.covers(
		Interval{Min: line.MeanX1, Max: line.MeanX2},
		Interval{Min: box.MeanX, Max: box.MeanX + box.MeanWidth},
	)
}

// MatchLinesToBox returns the lines inside box, in input order.
func (m *LineBoxMatcher) MatchLinesToBox(box models.SubjectBox, lines []Line) []Line {
	matched := []Line{}
	for _, line := range lines {
		if m.Contains(box, line) {
			matched = append(matched, line)
		}
	}
	return matched
}

// MatchLinesToBoxes maps each box's bestBoxIndex to its lines. A later box with
// the same index replaces an earlier one.
func (m *LineBoxMatcher) MatchLinesToBoxes(boxes []models.SubjectBox, lines []Line) map[int][]Line {
	out := make(map[int][]Line, len(boxes))
	for _, box := range boxes {
		out[box.BestBoxIndex] = m.MatchLinesToBox(box, lines)
	}
	return out
}

// BoxLineData matches lines to boxes and computes per-box statistics.
func (m *LineBoxMatcher) BoxLineData(boxes []models.SubjectBox, lines []Line) BoxLineData {
	boxLines := m.MatchLinesToBoxes(boxes, lines)
	stats := make(map[int]BoxStats, len(boxLines))
	for index, matched := range boxLines {
		stats[index] = ComputeBoxStats(matched)
	}
	return BoxLineData{BoxLines: boxLines, BoxStats: stats}
}

// ComputeBoxStats averages the reliability of lines.
func ComputeBoxStats(lines []Line) BoxStats {
	if len(lines) == 0 {
		return BoxStats{}
	}
	var sum float64
	for _, line := range lines {
		sum += line.Reliability
	}
	mean := sum / float64(len(lines))
	return BoxStats{Reliability: &mean, NumLines: len(lines)}
}
