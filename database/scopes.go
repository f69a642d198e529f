package database

import "gorm.io/gorm"

// Query scopes. Every value reaches the driver as a bound parameter.

const lineWordColumns = "SubjectLines.id, SubjectLines.subjectId, Subjects.url, SubjectLines.bestLineIndex, " +
	"SubjectLines.meanX1, SubjectLines.meanX2, SubjectLines.meanY1, SubjectLines.meanY2, " +
	"SubjectLines.lineReliability, LineWords.position, LineWords.rank, LineWords.wordText, " +
	"LineWords.spanStart, LineWords.spanEnd, LineWords.transcriptionIndex, LineWords.wordReliability"

func subjectByID(subjectID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Table("Subjects").
			Select("url, huntingtonId, subjectReliability").
			Where("id = ?", subjectID).
			Limit(1)
	}
}

func ownedBySubject(subjectID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("subjectId = ?", subjectID)
	}
}

func wordsOfSubject(subjectID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN LineWords ON LineWords.lineId = SubjectLines.id").
			Where("SubjectLines.subjectId = ?", subjectID)
	}
}

func lineWordsOfSubject(subjectID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Table("SubjectLines").
			Select(lineWordColumns).
			Joins("JOIN Subjects ON Subjects.id = SubjectLines.subjectId").
			Scopes(wordsOfSubject(subjectID)).
			Order("SubjectLines.id, LineWords.position, LineWords.rank")
	}
}

func tagsForTranscriptions(indices []int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("transcriptionIndex IN ?", indices).Order("id")
	}
}
