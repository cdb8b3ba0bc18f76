package models

import "time"

// Service là một đơn vị dịch vụ trong danh bạ của trường.
type Service struct {
	ID               uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name             string    `gorm:"column:name;size:255;not null;uniqueIndex" json:"name"`
	Description      string    `gorm:"column:description;type:text" json:"description"`
	Faculty          string    `gorm:"column:faculty;size:150;index" json:"faculty"`
	Category         string    `gorm:"column:category;size:100;index" json:"category"`
	Status           string    `gorm:"column:status;size:20;default:'active'" json:"status"` // active | inactive
	Location         string    `gorm:"column:location;size:255" json:"location"`
	OperationalHours string    `gorm:"column:operational_hours;size:100" json:"operational_hours"`
	ContactPerson    string    `gorm:"column:contact_person;size:150" json:"contact_person"`
	QRCode           string    `gorm:"column:qr_code;size:255" json:"qr_code"`
	SurveyID         uint      `gorm:"column:survey_id;not null" json:"survey_id"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Service) TableName() string {
	return "service"
}
