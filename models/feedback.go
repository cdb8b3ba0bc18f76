package models

import "time"

// Feedback: đánh giá sao + nhận xét công khai cho một dịch vụ (testimonial).
type Feedback struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ServiceID    uint      `gorm:"column:service_id;not null;index" json:"service_id"`
	ResponseID   *string   `gorm:"column:response_id;size:36" json:"response_id"`
	AuthorName   string    `gorm:"column:author_name;size:100" json:"author_name"`
	Rating       int       `gorm:"column:rating;not null" json:"rating"`
	Content      string    `gorm:"column:content;type:text" json:"content"`
	HelpfulCount int       `gorm:"column:helpful_count;default:0" json:"helpful_count"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (Feedback) TableName() string {
	return "feedback"
}
