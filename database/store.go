package database

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"github.com/hughdickinson/DCWConsensus/consensus"
	"github.com/hughdickinson/DCWConsensus/models"
)

// Store reads consensus rows through gorm. It implements consensus.RowSource.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// WithConnection runs fn with a Store bound to one dedicated connection. The
// connection is returned to the pool when fn returns, whatever the outcome.
func WithConnection(ctx context.Context, db *gorm.DB, fn func(*Store) error) error {
	return db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func (s *Store) SubjectSummary(ctx context.Context, subjectID uint) (*models.SubjectSummary, error) {
	var found []models.SubjectSummary
	if err := s.db.WithContext(ctx).Scopes(subjectByID(subjectID)).Scan(&found).Error; err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, consensus.ErrSubjectNotFound
	}
	return &found[0], nil
}

func (s *Store) LineWords(ctx context.Context, subjectID uint) (consensus.RowIterator[models.LineWordRow], error) {
	db := s.db.WithContext(ctx)
	rows, err := db.Scopes(lineWordsOfSubject(subjectID)).Rows()
	if err != nil {
		return nil, err
	}
	return &lineWordIterator{db: db, rows: rows}, nil
}

func (s *Store) Boxes(ctx context.Context, subjectID uint) ([]models.SubjectBox, error) {
	boxes := []models.SubjectBox{}
	err := s.db.WithContext(ctx).Scopes(ownedBySubject(subjectID)).Order("id").Find(&boxes).Error
	return boxes, err
}

func (s *Store) Telegrams(ctx context.Context, subjectID uint) ([]models.Telegram, error) {
	var rows []map[string]interface{}
	err := s.db.WithContext(ctx).Table(models.SubjectTelegram{}.TableName()).
		Scopes(ownedBySubject(subjectID)).
		Order("telegramId").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	telegrams := make([]models.Telegram, 0, len(rows))
	for _, row := range rows {
		telegrams = append(telegrams, models.Telegram(row))
	}
	return telegrams, nil
}

func (s *Store) TranscriptionIndices(ctx context.Context, subjectID uint) ([]int, error) {
	var indices []int
	err := s.db.WithContext(ctx).Table("SubjectLines").
		Scopes(wordsOfSubject(subjectID)).
		Distinct().
		Order("LineWords.transcriptionIndex").
		Pluck("LineWords.transcriptionIndex", &indices).Error
	return indices, err
}

func (s *Store) MetaTags(ctx context.Context, transcriptionIndices []int) ([]models.MetaTag, error) {
	tags := []models.MetaTag{}
	if len(transcriptionIndices) == 0 {
		return tags, nil
	}
	err := s.db.WithContext(ctx).Scopes(tagsForTranscriptions(transcriptionIndices)).Find(&tags).Error
	return tags, err
}

// RandomSubjectID picks a stored subject uniformly at random.
func (s *Store) RandomSubjectID(ctx context.Context) (uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&models.Subject{}).
		Order("RANDOM()").
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, consensus.ErrSubjectNotFound
	}
	return ids[0], nil
}

type lineWordIterator struct {
	db   *gorm.DB
	rows *sql.Rows
	row  models.LineWordRow
	err  error
}

func (it *lineWordIterator) Next() bool {
	if it.err != nil || !it.rows.Next() {
		return false
	}
	var row models.LineWordRow
	if err := it.db.ScanRows(it.rows, &row); err != nil {
		it.err = fmt.Errorf("scan line word: %w", err)
		return false
	}
	it.row = row
	return true
}

func (it *lineWordIterator) Row() models.LineWordRow { return it.row }

func (it *lineWordIterator) Err() error {
	if it.err != nil {
		return it.err
	}
	return it.rows.Err()
}

func (it *lineWordIterator) Close() error { return it.rows.Close() }

var _ consensus.RowSource = (*Store)(nil)
