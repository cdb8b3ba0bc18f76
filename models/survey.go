package models

import "gorm.io/datatypes"

// Survey: bảng survey, chỉ đọc lúc trả lời.
type Survey struct {
	SurveyID   uint   `gorm:"column:surveyid;primaryKey;autoIncrement" json:"surveyid"`
	SurveyName string `gorm:"column:surveyname;size:255;not null;uniqueIndex" json:"surveyname"`
}

func (Survey) TableName() string {
	return "survey"
}

// Item là một câu hỏi của survey.
type Item struct {
	ItemID    uint    `gorm:"column:itemid;primaryKey;autoIncrement" json:"itemid"`
	SurveyID  uint    `gorm:"column:surveyid;not null;index" json:"surveyid"`
	Text      string  `gorm:"column:text;type:text;not null" json:"text"`
	Category  string  `gorm:"column:category;size:40;not null" json:"category"` // corruption_perception | service_quality | survey_integrity
	Dimension *string `gorm:"column:dimension;size:60" json:"dimension"`
	OptionID  *uint   `gorm:"column:optionid" json:"optionid"`
}

func (Item) TableName() string {
	return "item"
}

// OptionSet: cột text lưu mảng JSON [{"text": nhãn, "score": 1..6}].
type OptionSet struct {
	OptionID   uint           `gorm:"column:optionid;primaryKey;autoIncrement" json:"optionid"`
	OptionName string         `gorm:"column:optionname;size:100;not null;uniqueIndex" json:"optionname"`
	Text       datatypes.JSON `gorm:"column:text" json:"text"`
}

func (OptionSet) TableName() string {
	return "options"
}
