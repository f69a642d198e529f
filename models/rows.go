package models

// LineWordRow is one row of the SubjectLines/LineWords join: the line-level
// columns repeat on every word row of the same line.
type LineWordRow struct {
	ID                 uint    `gorm:"column:id"`
	SubjectID          uint    `gorm:"column:subjectId"`
	URL                string  `gorm:"column:url"`
	BestLineIndex      int     `gorm:"column:bestLineIndex"`
	MeanX1             float64 `gorm:"column:meanX1"`
	MeanX2             float64 `gorm:"column:meanX2"`
	MeanY1             float64 `gorm:"column:meanY1"`
	MeanY2             float64 `gorm:"column:meanY2"`
	LineReliability    float64 `gorm:"column:lineReliability"`
	Position           int     `gorm:"column:position"`
	Rank               int     `gorm:"column:rank"`
	WordText           string  `gorm:"column:wordText"`
	SpanStart          int     `gorm:"column:spanStart"`
	SpanEnd            int     `gorm:"column:spanEnd"`
	TranscriptionIndex int     `gorm:"column:transcriptionIndex"`
	WordReliability    float64 `gorm:"column:wordReliability"`
}

// SubjectSummary is the subject-level header of a consensus result.
type SubjectSummary struct {
	URL          string  `json:"url" gorm:"column:url"`
	HuntingtonID string  `json:"huntingtonId" gorm:"column:huntingtonId"`
	Reliability  float64 `json:"reliability" gorm:"column:subjectReliability"`
}
