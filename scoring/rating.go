package scoring

import "github.com/shopspring/decimal"

const (
	MinRating = 1
	MaxRating = 5
)

type RatingBucket struct {
	Rating     int     `json:"rating"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type RatingSummary struct {
	Average      float64        `json:"average"`
	Total        int            `json:"total"`
	Distribution []RatingBucket `json:"distribution"`
}

// RatingStats thống kê đánh giá sao 1..5 của phản hồi (testimonial).
// Phân bố luôn đủ 5 mức, từ 5 xuống 1. Giá trị ngoài 1..5 bị bỏ qua.
func RatingStats(ratings []int) RatingSummary {
	counts := map[int]int{}
	total, sum := 0, 0
	for _, r := range ratings {
		if r < MinRating || r > MaxRating {
			continue
		}
		counts[r]++
		total++
		sum += r
	}

	out := RatingSummary{Total: total, Distribution: make([]RatingBucket, 0, MaxRating)}
	if total > 0 {
		out.Average = decimal.NewFromInt(int64(sum)).
			Div(decimal.NewFromInt(int64(total))).
			Round(1).InexactFloat64()
	}
	for r := MaxRating; r >= MinRating; r-- {
		b := RatingBucket{Rating: r, Count: counts[r]}
		if total > 0 {
			b.Percentage = Round2(float64(counts[r]) / float64(total) * 100)
		}
		out.Distribution = append(out.Distribution, b)
	}
	return out
}
