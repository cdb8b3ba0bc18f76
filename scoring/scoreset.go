package scoring

// ScoreSet là kết quả chấm điểm của một lượt trả lời.
type ScoreSet struct {
	Overall              float64            `json:"overall"`
	CorruptionPerception float64            `json:"corruption_perception"`
	ServiceQuality       float64            `json:"service_quality"`
	SurveyIntegrity      float64            `json:"survey_integrity"`
	Dimensions           map[string]float64 `json:"dimensions"`
}

// Score trả về điểm của một nhóm.
func (s ScoreSet) Score(c Category) float64 {
	switch c {
	case CorruptionPerception:
		return s.CorruptionPerception
	case ServiceQuality:
		return s.ServiceQuality
	case SurveyIntegrity:
		return s.SurveyIntegrity
	}
	return 0
}

// Compute chấm toàn bộ phiếu: điểm từng nhóm, điểm từng dimension của
// service_quality và điểm tổng. Câu hỏi không thuộc nhóm hợp lệ bị bỏ qua.
func Compute(answers Answers, catalog []Question) ScoreSet {
	byCategory := GroupByCategory(catalog)

	results := make([]CategoryResult, 0, len(Categories))
	set := ScoreSet{Dimensions: map[string]float64{}}
	for _, c := range Categories {
		qs := byCategory[c]
		r := CategoryResult{
			Score:    CategoryScore(answers, qs),
			Answered: Answered(answers, qs),
			Defined:  len(qs),
		}
		results = append(results, r)

		switch c {
		case CorruptionPerception:
			set.CorruptionPerception = r.Score
		case ServiceQuality:
			set.ServiceQuality = r.Score
		case SurveyIntegrity:
			set.SurveyIntegrity = r.Score
		}
	}

	sq := byCategory[ServiceQuality]
	for _, dim := range Dimensions(sq) {
		var qs []Question
		for _, q := range sq {
			if q.Dimension == dim {
				qs = append(qs, q)
			}
		}
		set.Dimensions[dim] = CategoryScore(answers, qs)
	}

	set.Overall = Overall(results)
	return set
}

// GroupByCategory giữ nguyên thứ tự câu hỏi trong từng nhóm.
func GroupByCategory(catalog []Question) map[Category][]Question {
	out := make(map[Category][]Question, len(Categories))
	for _, q := range catalog {
		if !q.Category.Valid() {
			continue
		}
		out[q.Category] = append(out[q.Category], q)
	}
	return out
}

// Dimensions liệt kê các dimension khác rỗng theo thứ tự xuất hiện.
func Dimensions(questions []Question) []string {
	seen := map[string]bool{}
	var out []string
	for _, q := range questions {
		if q.Dimension == "" || seen[q.Dimension] {
			continue
		}
		seen[q.Dimension] = true
		out = append(out, q.Dimension)
	}
	return out
}
