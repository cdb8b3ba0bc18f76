package scoring

type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandAverage   Band = "average"
	BandPoor      Band = "poor"
)

// BandOf xếp loại điểm phần trăm.
func BandOf(score float64) Band {
	switch {
	case score >= 80:
		return BandExcellent
	case score >= 60:
		return BandGood
	case score >= 40:
		return BandAverage
	}
	return BandPoor
}

// "overall" dùng cho điểm tổng; các key còn lại trùng Category.
var interpretations = map[string]map[Band]string{
	"overall": {
		BandExcellent: "Very good. You rated this service very positively.",
		BandGood:      "Good. You rated this service fairly positively.",
		BandAverage:   "Fair. Your rating of this service is neutral.",
		BandPoor:      "Below expectations. Your rating of this service leans negative.",
	},
	string(CorruptionPerception): {
		BandExcellent: "Very good. Perceived corruption at this service is very low.",
		BandGood:      "Good. Perceived corruption at this service is low.",
		BandAverage:   "Fair. Perceived corruption at this service is moderate.",
		BandPoor:      "Attention. Perceived corruption at this service is high.",
	},
	string(ServiceQuality): {
		BandExcellent: "Very satisfying. Service quality is very good.",
		BandGood:      "Good. Service quality is fairly satisfying.",
		BandAverage:   "Fair. Service quality is at the standard level.",
		BandPoor:      "Needs improvement. Service quality is below standard.",
	},
	string(SurveyIntegrity): {
		BandExcellent: "Very good. Service integrity is rated very high.",
		BandGood:      "Good. Service integrity is rated high.",
		BandAverage:   "Fair. Service integrity is rated moderate.",
		BandPoor:      "Attention. Service integrity is rated low.",
	},
}

type Interpretation struct {
	Band    Band   `json:"band"`
	Message string `json:"message"`
}

// Interpret trả về xếp loại và lời nhận xét; key lạ dùng bộ "overall".
func Interpret(score float64, key string) Interpretation {
	msgs, ok := interpretations[key]
	if !ok {
		msgs = interpretations["overall"]
	}
	b := BandOf(score)
	return Interpretation{Band: b, Message: msgs[b]}
}

// InterpretSet nhận xét cho điểm tổng và từng nhóm.
func InterpretSet(s ScoreSet) map[string]Interpretation {
	out := map[string]Interpretation{"overall": Interpret(s.Overall, "overall")}
	for _, c := range Categories {
		out[string(c)] = Interpret(s.Score(c), string(c))
	}
	return out
}
