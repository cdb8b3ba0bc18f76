package drafts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vnkhanh/service-survey/models"
)

var ErrNotFound = errors.New("draft not found")

// Store là kho key-value cho bản nháp đang làm dở.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
	PurgeOlderThan(ctx context.Context, before time.Time) (int64, error)
}

// Key ghép key bản nháp cho một dịch vụ và một người trả lời.
func Key(serviceID uint, respondentHash string) string {
	return fmt.Sprintf("survey_progress_%d:%s", serviceID, respondentHash)
}

// GormStore lưu bản nháp trong bảng survey_draft.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var d models.Draft
	err := s.db.WithContext(ctx).First(&d, "draft_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	return []byte(d.Payload), nil
}

// Put ghi đè bản nháp cũ nếu đã có.
func (s *GormStore) Put(ctx context.Context, key string, payload []byte) error {
	d := models.Draft{Key: key, Payload: datatypes.JSON(payload), UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "draft_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&d).Error
	if err != nil {
		return fmt.Errorf("put draft: %w", err)
	}
	return nil
}

// Delete không báo lỗi khi key không tồn tại.
func (s *GormStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&models.Draft{}, "draft_key = ?", key).Error; err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

func (s *GormStore) PurgeOlderThan(ctx context.Context, before time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("updated_at < ?", before).Delete(&models.Draft{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge drafts: %w", res.Error)
	}
	return res.RowsAffected, nil
}
