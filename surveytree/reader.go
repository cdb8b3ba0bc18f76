package surveytree

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var ErrSurveyNotFound = errors.New("survey not found")

const rowColumns = "s.surveyid, s.surveyname, i.itemid, i.text AS question_text, i.category, i.dimension, o.optionid, o.text AS option_data"

// FetchRows đọc toàn bộ survey kèm item và options, sắp theo (surveyid, itemid).
// scopes dùng để lọc thêm (vd. một survey).
func FetchRows(ctx context.Context, db *gorm.DB, scopes ...func(*gorm.DB) *gorm.DB) ([]Row, error) {
	var rows []Row
	err := db.WithContext(ctx).
		Table("survey s").
		Select(rowColumns).
		Joins("LEFT JOIN item i ON i.surveyid = s.surveyid").
		Joins("LEFT JOIN options o ON o.optionid = i.optionid").
		Scopes(scopes...).
		Order("s.surveyid, i.itemid").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query survey rows: %w", err)
	}
	return rows, nil
}

// Load trả về toàn bộ cây survey.
func Load(ctx context.Context, db *gorm.DB) ([]Survey, error) {
	rows, err := FetchRows(ctx, db)
	if err != nil {
		return nil, err
	}
	return Assemble(rows), nil
}

// LoadOne trả về cây của một survey.
func LoadOne(ctx context.Context, db *gorm.DB, surveyID int64) (Survey, error) {
	rows, err := FetchRows(ctx, db, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("s.surveyid = ?", surveyID)
	})
	if err != nil {
		return Survey{}, err
	}
	surveys := Assemble(rows)
	if len(surveys) == 0 {
		return Survey{}, ErrSurveyNotFound
	}
	return surveys[0], nil
}
