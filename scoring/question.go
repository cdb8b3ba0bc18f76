package scoring

import (
	"strconv"
	"strings"
)

// Category là nhóm câu hỏi cố định của phiếu khảo sát.
type Category string

const (
	CorruptionPerception Category = "corruption_perception"
	ServiceQuality       Category = "service_quality"
	SurveyIntegrity      Category = "survey_integrity"
)

// Categories theo thứ tự hiển thị.
var Categories = []Category{CorruptionPerception, ServiceQuality, SurveyIntegrity}

// Thang điểm thô 1..6, 6 luôn là lựa chọn tốt nhất.
const (
	MinRawScore = 1
	MaxRawScore = 6
)

func (c Category) Valid() bool {
	switch c {
	case CorruptionPerception, ServiceQuality, SurveyIntegrity:
		return true
	}
	return false
}

// ParseCategory chuẩn hoá chuỗi category đọc từ DB hoặc file seed.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

type Option struct {
	Label string
	Value string
	Score int
}

type Question struct {
	ID        string
	Text      string
	Category  Category
	Dimension string
	Options   []Option
}

// Answers: question id -> giá trị người trả lời đã chọn.
type Answers map[string]string

func (a Answers) value(questionID string) (string, bool) {
	v := strings.TrimSpace(a[questionID])
	return v, v != ""
}

// ResolveScore đổi giá trị trả lời thành điểm thô của lựa chọn tương ứng.
// Khớp theo value hoặc label trước, sau đó thử parse số nguyên.
func ResolveScore(q Question, value string) (int, bool) {
	for _, o := range q.Options {
		if o.Value == value || o.Label == value {
			return o.Score, inRawRange(o.Score)
		}
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return n, inRawRange(n)
}

// LabelFor trả về nhãn của lựa chọn khớp value, hoặc chính value nếu không khớp.
func LabelFor(q Question, value string) string {
	for _, o := range q.Options {
		if o.Value == value || o.Label == value {
			return o.Label
		}
	}
	return value
}

func inRawRange(n int) bool {
	return n >= MinRawScore && n <= MaxRawScore
}
