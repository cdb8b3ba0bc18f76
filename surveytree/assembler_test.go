package surveytree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/service-survey/scoring"
)

func i64(v int64) *int64 { return &v }
func str(v string) *string { return &v }

func TestAssemble_DeduplicatesQuestionsAndAccumulatesOptions(t *testing.T) {
	rows := []Row{
		{SurveyID: 1, SurveyName: "Layanan", ItemID: i64(1), QuestionText: str("Q1"), OptionID: i64(10), OptionData: str(`[{"text":"A","score":1}]`)},
		{SurveyID: 1, SurveyName: "Layanan", ItemID: i64(1), QuestionText: str("Q1")},
		{SurveyID: 1, SurveyName: "Layanan", ItemID: i64(2), QuestionText: str("Q2"), OptionID: i64(11), OptionData: str(`[{"text":"B","score":2}]`)},
	}

	got := Assemble(rows)
	require.Len(t, got, 1)
	require.Len(t, got[0].Questions, 2)
	assert.Equal(t, []Option{{Label: "A", Value: 1}}, got[0].Questions[0].Options)
	assert.Equal(t, []Option{{Label: "B", Value: 2}}, got[0].Questions[1].Options)
}

func TestAssemble_DeduplicatesOptions(t *testing.T) {
	rows := []Row{
		{SurveyID: 1, SurveyName: "s", ItemID: i64(1), QuestionText: str("Q1"), OptionID: i64(10), OptionData: str(`[{"text":"A","score":1}]`)},
		{SurveyID: 1, SurveyName: "s", ItemID: i64(1), QuestionText: str("Q1"), OptionID: i64(10), OptionData: str(`[{"text":"A","score":1}]`)},
		{SurveyID: 1, SurveyName: "s", ItemID: i64(1), QuestionText: str("Q1"), OptionID: i64(12), OptionData: str(`[{"text":"A","score":1},{"text":"B","score":2}]`)},
		// cùng optionid nhưng ở câu khác thì vẫn được cộng
		{SurveyID: 1, SurveyName: "s", ItemID: i64(2), QuestionText: str("Q2"), OptionID: i64(10), OptionData: str(`[{"text":"A","score":1}]`)},
	}

	got := Assemble(rows)
	require.Len(t, got, 1)
	require.Len(t, got[0].Questions, 2)
	assert.Equal(t, []Option{{"A", 1}, {"B", 2}}, got[0].Questions[0].Options)
	assert.Equal(t, []Option{{"A", 1}}, got[0].Questions[1].Options)
}

func TestAssemble_Ordering(t *testing.T) {
	rows := []Row{
		{SurveyID: 2, SurveyName: "second", ItemID: i64(5), QuestionText: str("q5")},
		{SurveyID: 2, SurveyName: "second", ItemID: i64(3), QuestionText: str("q3")},
		{SurveyID: 1, SurveyName: "first", ItemID: i64(7), QuestionText: str("q7")},
		{SurveyID: 2, SurveyName: "second", ItemID: i64(5), OptionID: i64(1), OptionData: str(`[{"text":"x","score":6}]`)},
		{SurveyID: 2, SurveyName: "second", ItemID: i64(5), OptionID: i64(2), OptionData: str(`[{"text":"y","score":5}]`)},
	}

	got := Assemble(rows)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].SurveyID)
	assert.Equal(t, int64(1), got[1].SurveyID)
	require.Len(t, got[0].Questions, 2)
	assert.Equal(t, int64(5), got[0].Questions[0].ItemID)
	assert.Equal(t, int64(3), got[0].Questions[1].ItemID)
	assert.Equal(t, []Option{{"x", 6}, {"y", 5}}, got[0].Questions[0].Options)
}

func TestAssemble_SurveyWithoutQuestions(t *testing.T) {
	got := Assemble([]Row{{SurveyID: 9, SurveyName: "empty"}})
	require.Len(t, got, 1)
	assert.NotNil(t, got[0].Questions)
	assert.Empty(t, got[0].Questions)

	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"surveyid":9,"surveyname":"empty","questions":[]}]`, string(b))
}

func TestAssemble_Empty(t *testing.T) {
	assert.Empty(t, Assemble(nil))
}

func TestAssemble_JSONShape(t *testing.T) {
	rows := []Row{{
		SurveyID: 1, SurveyName: "S", ItemID: i64(4), QuestionText: str("Q"),
		Category: str("service_quality"), Dimension: str("reliability"),
		OptionID: i64(1), OptionData: str(`[{"text":"Never","score":1},{"text":"Always","score":6}]`),
	}}
	b, err := json.Marshal(Assemble(rows))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"surveyid":1,"surveyname":"S","questions":[
		{"itemid":4,"text":"Q","category":"service_quality","dimension":"reliability",
		 "options":[{"label":"Never","value":1},{"label":"Always","value":6}]}]}]`, string(b))
}

func TestParseOptions(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []Option
	}{
		{"Valid", `[{"text":"A","score":1},{"text":"B","score":"2"}]`, []Option{{"A", 1}, {"B", 2}}},
		{"NotArray", `{"text":"A","score":1}`, nil},
		{"Garbage", `not json`, nil},
		{"SkipsMalformedEntries", `[{"text":"A","score":1}, 42, {"text":"","score":3}, {"text":"C"}, {"text":"D","score":9}, {"text":"E","score":4.5}, null, {"text":"F","score":6}]`, []Option{{"A", 1}, {"F", 6}}},
		{"EmptyArray", `[]`, []Option{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseOptions(tc.raw))
		})
	}
}

func TestSurvey_Catalog(t *testing.T) {
	s := Survey{SurveyID: 1, Questions: []Question{
		{ItemID: 4, Text: "Q", Category: "Corruption_Perception", Options: []Option{{"Low", 1}, {"High", 6}}},
		{ItemID: 5, Text: "R", Category: "service_quality", Dimension: "tangible"},
	}}

	cat := s.Catalog()
	require.Len(t, cat, 2)
	assert.Equal(t, "4", cat[0].ID)
	assert.Equal(t, scoring.CorruptionPerception, cat[0].Category)
	assert.Equal(t, []scoring.Option{{Label: "Low", Value: "1", Score: 1}, {Label: "High", Value: "6", Score: 6}}, cat[0].Options)
	assert.Equal(t, "tangible", cat[1].Dimension)

	score := scoring.CategoryScore(scoring.Answers{"4": "High"}, cat[:1])
	assert.Equal(t, 100.0, score)

	q, ok := s.Question("5")
	assert.True(t, ok)
	assert.Equal(t, "R", q.Text)
	_, ok = s.Question("x")
	assert.False(t, ok)
}
