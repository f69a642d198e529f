package models

// TagState is the kind of span-level annotation a volunteer applied.
type TagState string

const (
	TagUnclear   TagState = "unclear"
	TagInsertion TagState = "insertion"
	TagDeletion  TagState = "deletion"
)

// Valid reports whether s is one of the known tag states.
func (s TagState) Valid() bool {
	switch s {
	case TagUnclear, TagInsertion, TagDeletion:
		return true
	}
	return false
}

// MetaTag marks the span [Start, End] of one transcription of one line.
type MetaTag struct {
	ID                 uint     `json:"id" gorm:"primaryKey;column:id"`
	BestLineIndex      int      `json:"bestLineIndex" gorm:"column:bestLineIndex;uniqueIndex:idx_metatag_span"`
	TranscriptionIndex int      `json:"transcriptionIndex" gorm:"column:transcriptionIndex;uniqueIndex:idx_metatag_span;index"`
	State              TagState `json:"state" gorm:"column:state;size:16;uniqueIndex:idx_metatag_span"`
	Start              int      `json:"start" gorm:"column:start;uniqueIndex:idx_metatag_span"`
	End                int      `json:"end" gorm:"column:end"`
}

func (MetaTag) TableName() string { return "MetaTags" }
