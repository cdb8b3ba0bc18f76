package scoring

import "github.com/shopspring/decimal"

// CategoryScore tính điểm phần trăm (0..100) cho một nhóm câu hỏi.
//
// Chỉ những câu có câu trả lời khác rỗng mới được tính. Câu trả lời không
// quy đổi được sang điểm 1..6 bị bỏ qua (không vào tử số lẫn mẫu số).
// Nếu mọi câu đều đạt điểm tối đa thì trả về đúng 100.
func CategoryScore(answers Answers, questions []Question) float64 {
	total, maxPossible := 0, 0
	allMax := true

	for _, q := range questions {
		v, ok := answers.value(q.ID)
		if !ok {
			continue
		}
		s, ok := ResolveScore(q, v)
		if !ok {
			continue
		}
		if s < MaxRawScore {
			allMax = false
		}
		total += s
		maxPossible += MaxRawScore
	}

	if maxPossible == 0 {
		return 0
	}
	if allMax {
		return 100
	}
	return Round2(float64(total) / float64(maxPossible) * 100)
}

// Answered đếm số câu trong nhóm có câu trả lời khác rỗng.
func Answered(answers Answers, questions []Question) int {
	n := 0
	for _, q := range questions {
		if _, ok := answers.value(q.ID); ok {
			n++
		}
	}
	return n
}

// Round2 làm tròn 2 chữ số thập phân, nửa làm tròn ra xa số 0.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
