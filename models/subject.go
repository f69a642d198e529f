package models

// Subject is one scanned document page.
type Subject struct {
	ID                 uint    `json:"id" gorm:"primaryKey;column:id"`
	ZooniverseID       int     `json:"zooniverseId" gorm:"column:zooniverseId"`
	HuntingtonID       string  `json:"huntingtonId" gorm:"column:huntingtonId;size:20"`
	URL                string  `json:"url" gorm:"column:url;size:500"`
	SubjectReliability float64 `json:"subjectReliability" gorm:"column:subjectReliability"`
}

func (Subject) TableName() string { return "Subjects" }

// SubjectLine is one aggregated line of a subject.
type SubjectLine struct {
	ID              uint    `json:"id" gorm:"primaryKey;column:id"`
	SubjectID       uint    `json:"subjectId" gorm:"column:subjectId;index"`
	BestLineIndex   int     `json:"bestLineIndex" gorm:"column:bestLineIndex"`
	MeanX1          float64 `json:"meanX1" gorm:"column:meanX1"`
	MeanX2          float64 `json:"meanX2" gorm:"column:meanX2"`
	MeanY1          float64 `json:"meanY1" gorm:"column:meanY1"`
	MeanY2          float64 `json:"meanY2" gorm:"column:meanY2"`
	LineReliability float64 `json:"lineReliability" gorm:"column:lineReliability"`
}

func (SubjectLine) TableName() string { return "SubjectLines" }

// LineWord is one ranked word alternative at one position of a line.
type LineWord struct {
	ID                 uint    `json:"id" gorm:"primaryKey;column:id"`
	LineID             uint    `json:"lineId" gorm:"column:lineId;index"`
	WordText           string  `json:"wordText" gorm:"column:wordText;size:100"`
	Position           int     `json:"position" gorm:"column:position"`
	Rank               int     `json:"rank" gorm:"column:rank"`
	TranscriptionIndex int     `json:"transcriptionIndex" gorm:"column:transcriptionIndex"`
	SpanStart          int     `json:"spanStart" gorm:"column:spanStart"`
	SpanEnd            int     `json:"spanEnd" gorm:"column:spanEnd"`
	WordReliability    float64 `json:"wordReliability" gorm:"column:wordReliability"`
}

func (LineWord) TableName() string { return "LineWords" }

// SubjectBox is a user-drawn bounding box averaged over volunteers.
type SubjectBox struct {
	ID             uint    `json:"-" gorm:"primaryKey;column:id"`
	SubjectID      uint    `json:"subjectId" gorm:"column:subjectId;index"`
	BestBoxIndex   int     `json:"bestBoxIndex" gorm:"column:bestBoxIndex"`
	MeanX          float64 `json:"meanX" gorm:"column:meanX"`
	MeanY          float64 `json:"meanY" gorm:"column:meanY"`
	MeanWidth      float64 `json:"meanWidth" gorm:"column:meanWidth"`
	MeanHeight     float64 `json:"meanHeight" gorm:"column:meanHeight"`
	NumBoxesMarked int     `json:"numBoxesMarked" gorm:"column:numBoxesMarked"`
}

func (SubjectBox) TableName() string { return "SubjectBoxes" }

// SubjectTelegram holds the fixed columns of a telegram-number record.
// Reads go through Telegram so that extra columns are passed through untouched.
type SubjectTelegram struct {
	ID         uint   `json:"id" gorm:"primaryKey;column:id"`
	SubjectID  uint   `json:"subjectId" gorm:"column:subjectId;index"`
	TelegramID int    `json:"telegramId" gorm:"column:telegramId"`
	Number     string `json:"number" gorm:"column:number;size:50"`
}

func (SubjectTelegram) TableName() string { return "SubjectTelegrams" }

// Telegram is an opaque telegram record keyed by column name.
type Telegram map[string]any
