package models

import (
	"time"

	"gorm.io/datatypes"
)

// Draft lưu bản nháp câu trả lời theo key (service + người trả lời).
type Draft struct {
	Key       string         `gorm:"column:draft_key;primaryKey;size:200" json:"key"`
	Payload   datatypes.JSON `gorm:"column:payload" json:"payload"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Draft) TableName() string {
	return "survey_draft"
}
