package database

import (
	"context"

	"github.com/hughdickinson/DCWConsensus/models"
)

// SubjectFilter narrows a subject listing.
type SubjectFilter struct {
	Limit          int
	MinReliability float64
	HuntingtonID   string
}

// ListSubjects returns subjects ordered by id.
func (s *Store) ListSubjects(ctx context.Context, f SubjectFilter) ([]models.Subject, error) {
	query := s.db.WithContext(ctx).Model(&models.Subject{})

	if f.MinReliability > 0 {
		query = query.Where("subjectReliability >= ?", f.MinReliability)
	}
	if f.HuntingtonID != "" {
		query = query.Where("huntingtonId = ?", f.HuntingtonID)
	}
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}

	subjects := []models.Subject{}
	err := query.Order("id").Find(&subjects).Error
	return subjects, err
}

// Stats summarises the stored corpus.
type Stats struct {
	Subjects       int64   `json:"subjects"`
	Lines          int64   `json:"lines"`
	Words          int64   `json:"words"`
	Boxes          int64   `json:"boxes"`
	CompoundBoxes  int64   `json:"compound_boxes"`
	Telegrams      int64   `json:"telegrams"`
	MetaTags       int64   `json:"meta_tags"`
	AvgReliability float64 `json:"avg_reliability"`
}

func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	db := s.db.WithContext(ctx)
	var stats Stats

	counts := []struct {
		model any
		dest  *int64
	}{
		{&models.Subject{}, &stats.Subjects},
		{&models.SubjectLine{}, &stats.Lines},
		{&models.LineWord{}, &stats.Words},
		{&models.SubjectBox{}, &stats.Boxes},
		{&models.SubjectTelegram{}, &stats.Telegrams},
		{&models.MetaTag{}, &stats.MetaTags},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	if err := db.Model(&models.SubjectBox{}).Where("numBoxesMarked > ?", 1).Count(&stats.CompoundBoxes).Error; err != nil {
		return nil, err
	}

	if stats.Subjects > 0 {
		if err := db.Model(&models.Subject{}).Select("AVG(subjectReliability)").Scan(&stats.AvgReliability).Error; err != nil {
			return nil, err
		}
	}
	return &stats, nil
}
