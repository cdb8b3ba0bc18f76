package models

import (
	"time"

	"gorm.io/datatypes"
)

// Response là một lượt trả lời đã chấm điểm, không sửa/xoá sau khi tạo.
// (service_id, respondent_hash) là duy nhất; lượt ẩn danh có hash NULL nên không bị ràng buộc.
type Response struct {
	ID                   uint           `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	PublicID             string         `gorm:"column:public_id;size:36;not null;uniqueIndex" json:"id"`
	ServiceID            uint           `gorm:"column:service_id;not null;index;uniqueIndex:idx_response_respondent,priority:1" json:"service_id"`
	SurveyID             uint           `gorm:"column:survey_id;not null" json:"survey_id"`
	RespondentHash       *string        `gorm:"column:respondent_hash;size:64;uniqueIndex:idx_response_respondent,priority:2" json:"-"`
	Overall              float64        `gorm:"column:overall" json:"overall"`
	CorruptionPerception float64        `gorm:"column:corruption_perception" json:"corruption_perception"`
	ServiceQuality       float64        `gorm:"column:service_quality" json:"service_quality"`
	SurveyIntegrity      float64        `gorm:"column:survey_integrity" json:"survey_integrity"`
	Dimensions           datatypes.JSON `gorm:"column:dimensions" json:"dimensions"`
	CompletedAt          time.Time      `gorm:"column:completed_at;autoCreateTime" json:"completed_at"`

	Service *Service         `gorm:"foreignKey:ServiceID" json:"-"`
	Answers []ResponseAnswer `gorm:"foreignKey:ResponseID" json:"-"`
}

func (Response) TableName() string {
	return "survey_response"
}

type ResponseAnswer struct {
	ID         uint   `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ResponseID uint   `gorm:"column:response_id;not null;index" json:"-"`
	ItemID     uint   `gorm:"column:item_id;not null" json:"question_id"`
	Value      string `gorm:"column:value;size:255" json:"value"`
	Label      string `gorm:"column:label;type:text" json:"label"`
	Category   string `gorm:"column:category;size:40" json:"category"`
}

func (ResponseAnswer) TableName() string {
	return "survey_response_answer"
}
