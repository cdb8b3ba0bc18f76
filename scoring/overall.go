package scoring

// CategoryResult là đầu vào của bước gộp điểm tổng.
type CategoryResult struct {
	Score    float64
	Answered int // số câu đã trả lời
	Defined  int // số câu có trong phiếu
}

// Overall gộp điểm các nhóm theo trọng số = số câu đã trả lời của nhóm / tổng số câu đã trả lời.
//
// Các trường hợp "gần hoàn hảo" luôn hiển thị 100:
//   - mọi nhóm có câu hỏi đều đạt đúng 100;
//   - mọi nhóm đã trả lời >= 99 và điểm gộp > 99;
//   - mọi nhóm đã trả lời > 99.5 và điểm gộp (đã làm tròn) > 99.5.
func Overall(results []CategoryResult) float64 {
	if allDefinedPerfect(results) {
		return 100
	}

	totalAnswered := 0
	for _, r := range results {
		totalAnswered += r.Answered
	}
	if totalAnswered == 0 {
		return 0
	}

	var overall float64
	for _, r := range results {
		if r.Answered == 0 {
			continue
		}
		overall += r.Score * (float64(r.Answered) / float64(totalAnswered))
	}

	if allAnswered(results, func(s float64) bool { return s >= 99 }) && overall > 99 {
		return 100
	}

	overall = Round2(overall)

	// Không đạt tới được: mọi nhóm > 99.5 thì điểm gộp (trung bình có trọng số) cũng > 99.5,
	// nên nhánh >= 99 ở trên đã trả 100 trước khi tới đây.
	if allAnswered(results, func(s float64) bool { return s > 99.5 }) && overall > 99.5 {
		return 100
	}
	return overall
}

func allDefinedPerfect(results []CategoryResult) bool {
	defined := 0
	for _, r := range results {
		if r.Defined == 0 {
			continue
		}
		defined++
		if r.Score != 100 {
			return false
		}
	}
	return defined > 0
}

func allAnswered(results []CategoryResult, pred func(float64) bool) bool {
	for _, r := range results {
		if r.Answered > 0 && !pred(r.Score) {
			return false
		}
	}
	return true
}
