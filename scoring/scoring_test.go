package scoring

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func likert(id string, c Category, dim string) Question {
	opts := make([]Option, 0, MaxRawScore)
	for s := MinRawScore; s <= MaxRawScore; s++ {
		opts = append(opts, Option{Label: fmt.Sprintf("Level %d", s), Value: strconv.Itoa(s), Score: s})
	}
	return Question{ID: id, Text: "question " + id, Category: c, Dimension: dim, Options: opts}
}

func TestCategoryScore(t *testing.T) {
	qs := []Question{likert("q1", CorruptionPerception, ""), likert("q2", CorruptionPerception, "")}

	t.Run("AllMaxIsExactly100", func(t *testing.T) {
		assert.Equal(t, 100.0, CategoryScore(Answers{"q1": "6", "q2": "6"}, qs))
	})

	t.Run("ThreeAndSix", func(t *testing.T) {
		assert.Equal(t, 75.0, CategoryScore(Answers{"q1": "3", "q2": "6"}, qs))
	})

	t.Run("NoAnswers", func(t *testing.T) {
		assert.Equal(t, 0.0, CategoryScore(Answers{}, qs))
		assert.Equal(t, 0.0, CategoryScore(nil, qs))
	})

	t.Run("DisjointIDs", func(t *testing.T) {
		assert.Equal(t, 0.0, CategoryScore(Answers{"x": "6", "y": "1"}, qs))
	})

	t.Run("NoQuestions", func(t *testing.T) {
		assert.Equal(t, 0.0, CategoryScore(Answers{"q1": "6"}, nil))
	})

	t.Run("EmptyValueNotCounted", func(t *testing.T) {
		assert.Equal(t, 50.0, CategoryScore(Answers{"q1": "3", "q2": "  "}, qs))
	})

	t.Run("UnparseableSkipped", func(t *testing.T) {
		assert.Equal(t, 50.0, CategoryScore(Answers{"q1": "3", "q2": "abc"}, qs))
		assert.Equal(t, 0.0, CategoryScore(Answers{"q1": "abc", "q2": "?"}, qs))
	})

	t.Run("OutOfRangeSkipped", func(t *testing.T) {
		assert.Equal(t, 100.0, CategoryScore(Answers{"q1": "6", "q2": "9"}, qs))
		assert.Equal(t, 0.0, CategoryScore(Answers{"q1": "0"}, qs))
	})

	t.Run("ResolvesByLabel", func(t *testing.T) {
		assert.Equal(t, 75.0, CategoryScore(Answers{"q1": "Level 3", "q2": "Level 6"}, qs))
	})

	t.Run("RoundsToTwoDecimals", func(t *testing.T) {
		three := []Question{
			likert("a", ServiceQuality, ""),
			likert("b", ServiceQuality, ""),
			likert("c", ServiceQuality, ""),
		}
		// 11 / 18 = 61.111...
		assert.Equal(t, 61.11, CategoryScore(Answers{"a": "5", "b": "5", "c": "1"}, three))
		// 17 / 18 = 94.444...
		assert.Equal(t, 94.44, CategoryScore(Answers{"a": "6", "b": "6", "c": "5"}, three))
	})
}

func TestCategoryScore_RangeAndIdempotence(t *testing.T) {
	qs := []Question{
		likert("q1", ServiceQuality, ""),
		likert("q2", ServiceQuality, ""),
		likert("q3", ServiceQuality, ""),
	}
	values := []string{"", "1", "2", "3", "4", "5", "6", "x"}
	for _, a := range values {
		for _, b := range values {
			for _, c := range values {
				ans := Answers{"q1": a, "q2": b, "q3": c}
				got := CategoryScore(ans, qs)
				require.GreaterOrEqual(t, got, 0.0)
				require.LessOrEqual(t, got, 100.0)
				require.Equal(t, got, CategoryScore(ans, qs))
			}
		}
	}
}

func TestOverall(t *testing.T) {
	t.Run("NothingAnswered", func(t *testing.T) {
		got := Overall([]CategoryResult{{Defined: 2}, {Defined: 2}, {Defined: 2}})
		assert.Equal(t, 0.0, got)
	})

	t.Run("NoCategories", func(t *testing.T) {
		assert.Equal(t, 0.0, Overall(nil))
	})

	t.Run("AllDefinedPerfect", func(t *testing.T) {
		got := Overall([]CategoryResult{
			{Score: 100, Answered: 2, Defined: 2},
			{Score: 100, Answered: 2, Defined: 2},
			{Score: 100, Answered: 2, Defined: 2},
		})
		assert.Equal(t, 100.0, got)
	})

	t.Run("UndefinedCategoryIgnored", func(t *testing.T) {
		got := Overall([]CategoryResult{
			{Score: 100, Answered: 2, Defined: 2},
			{Score: 100, Answered: 1, Defined: 1},
			{Score: 0, Answered: 0, Defined: 0},
		})
		assert.Equal(t, 100.0, got)
	})

	t.Run("WeightedByAnsweredCount", func(t *testing.T) {
		got := Overall([]CategoryResult{
			{Score: 100, Answered: 2, Defined: 2},
			{Score: 50, Answered: 1, Defined: 2},
			{Score: 0, Answered: 0, Defined: 2},
		})
		assert.Equal(t, 83.33, got)
	})

	t.Run("SnapsWhenAllAtLeast99", func(t *testing.T) {
		got := Overall([]CategoryResult{
			{Score: 99.2, Answered: 3, Defined: 3},
			{Score: 100, Answered: 1, Defined: 3},
		})
		assert.Equal(t, 100.0, got)
	})

	t.Run("AllAbove99_5SnapsBeforeRounding", func(t *testing.T) {
		got := Overall([]CategoryResult{
			{Score: 99.51, Answered: 5, Defined: 5},
			{Score: 99.6, Answered: 1, Defined: 1},
			{Score: 99.99, Answered: 2, Defined: 2},
		})
		assert.Equal(t, 100.0, got)
	})

	t.Run("Exactly99IsNotSnapped", func(t *testing.T) {
		got := Overall([]CategoryResult{
			{Score: 99, Answered: 1, Defined: 2},
			{Score: 99, Answered: 1, Defined: 1},
		})
		assert.Equal(t, 99.0, got)
	})

	t.Run("NoSnapBelow99", func(t *testing.T) {
		got := Overall([]CategoryResult{
			{Score: 98.5, Answered: 1, Defined: 1},
			{Score: 100, Answered: 1, Defined: 1},
		})
		assert.Equal(t, 99.25, got)
	})

	t.Run("PartiallyAnsweredPerfectIsNotOverride1", func(t *testing.T) {
		// second category has questions but none answered: score 0, weight 0
		got := Overall([]CategoryResult{
			{Score: 100, Answered: 2, Defined: 2},
			{Score: 0, Answered: 0, Defined: 2},
		})
		assert.Equal(t, 100.0, got)
	})
}

func TestCompute(t *testing.T) {
	catalog := []Question{
		likert("cp1", CorruptionPerception, ""),
		likert("cp2", CorruptionPerception, ""),
		likert("sq1", ServiceQuality, "reliability"),
		likert("sq2", ServiceQuality, "responsiveness"),
		likert("si1", SurveyIntegrity, ""),
		likert("si2", SurveyIntegrity, ""),
	}

	t.Run("AllMax", func(t *testing.T) {
		ans := Answers{}
		for _, q := range catalog {
			ans[q.ID] = "6"
		}
		got := Compute(ans, catalog)
		assert.Equal(t, 100.0, got.Overall)
		assert.Equal(t, 100.0, got.CorruptionPerception)
		assert.Equal(t, 100.0, got.ServiceQuality)
		assert.Equal(t, 100.0, got.SurveyIntegrity)
		assert.Equal(t, map[string]float64{"reliability": 100, "responsiveness": 100}, got.Dimensions)
	})

	t.Run("MixedWithUnansweredCategory", func(t *testing.T) {
		got := Compute(Answers{"cp1": "6", "cp2": "6", "sq1": "3"}, catalog)
		assert.Equal(t, 100.0, got.CorruptionPerception)
		assert.Equal(t, 50.0, got.ServiceQuality)
		assert.Equal(t, 0.0, got.SurveyIntegrity)
		assert.Equal(t, 83.33, got.Overall)
		assert.Equal(t, 50.0, got.Dimensions["reliability"])
		assert.Equal(t, 0.0, got.Dimensions["responsiveness"])
	})

	t.Run("Empty", func(t *testing.T) {
		got := Compute(nil, catalog)
		assert.Equal(t, 0.0, got.Overall)
		assert.NotNil(t, got.Dimensions)
	})

	t.Run("InvalidCategoryIgnored", func(t *testing.T) {
		odd := append([]Question{likert("z", Category("other"), "")}, catalog[:2]...)
		got := Compute(Answers{"z": "1", "cp1": "6", "cp2": "6"}, odd)
		assert.Equal(t, 100.0, got.Overall)
	})
}

func TestRound2(t *testing.T) {
	cases := map[float64]float64{
		83.33333333333333: 83.33,
		2.675:             2.68,
		1.005:             1.01,
		99.995:            100,
		-1.005:            -1.01,
		0:                 0,
	}
	for in, want := range cases {
		assert.Equal(t, want, Round2(in), "Round2(%v)", in)
	}
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory(" Service_Quality ")
	assert.True(t, ok)
	assert.Equal(t, ServiceQuality, c)

	_, ok = ParseCategory("facilities")
	assert.False(t, ok)
}

func TestLabelFor(t *testing.T) {
	q := likert("q1", CorruptionPerception, "")
	assert.Equal(t, "Level 4", LabelFor(q, "4"))
	assert.Equal(t, "Level 4", LabelFor(q, "Level 4"))
	assert.Equal(t, "nope", LabelFor(q, "nope"))
}

func TestInterpret(t *testing.T) {
	assert.Equal(t, BandExcellent, BandOf(80))
	assert.Equal(t, BandGood, BandOf(79.99))
	assert.Equal(t, BandAverage, BandOf(40))
	assert.Equal(t, BandPoor, BandOf(39.99))

	got := Interpret(90, "unknown")
	assert.Equal(t, interpretations["overall"][BandExcellent], got.Message)

	set := InterpretSet(ScoreSet{Overall: 55, ServiceQuality: 85})
	assert.Equal(t, BandAverage, set["overall"].Band)
	assert.Equal(t, BandExcellent, set[string(ServiceQuality)].Band)
	assert.Equal(t, BandPoor, set[string(SurveyIntegrity)].Band)
}

func TestRatingStats(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		got := RatingStats(nil)
		assert.Equal(t, 0, got.Total)
		assert.Equal(t, 0.0, got.Average)
		require.Len(t, got.Distribution, 5)
		assert.Equal(t, 5, got.Distribution[0].Rating)
		assert.Equal(t, 1, got.Distribution[4].Rating)
	})

	t.Run("Mixed", func(t *testing.T) {
		got := RatingStats([]int{5, 1, 5, 5, 4, 5, 3, 4, 0, 7})
		assert.Equal(t, 8, got.Total)
		assert.Equal(t, 4.0, got.Average)
		assert.Equal(t, RatingBucket{Rating: 5, Count: 4, Percentage: 50}, got.Distribution[0])
		assert.Equal(t, RatingBucket{Rating: 4, Count: 2, Percentage: 25}, got.Distribution[1])
		assert.Equal(t, RatingBucket{Rating: 2, Count: 0, Percentage: 0}, got.Distribution[3])
	})
}
