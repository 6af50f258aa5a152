package model

import "encoding/json"

const (
	OpenEnded      = "open_ended"
	MultipleChoice = "multiple_choice"
)

type SurveyAnalytics struct {
	SurveyID  int64               `json:"survey_id"`
	Analytics []QuestionAnalytics `json:"analytics"`
}

// QuestionAnalytics is one question's aggregated view. Answers is set for
// open-ended questions, Options for multiple-choice ones.
type QuestionAnalytics struct {
	QuestionID   int64
	QuestionText string
	Type         string
	Answers      []string
	Options      []OptionCount
}

// OptionCount keeps option order, which a JSON object would lose.
type OptionCount struct {
	Option string `json:"option"`
	Count  int    `json:"count"`
}

// Counts returns the option text -> count mapping.
func (qa QuestionAnalytics) Counts() map[string]int {
	counts := make(map[string]int, len(qa.Options))
	for _, oc := range qa.Options {
		counts[oc.Option] = oc.Count
	}
	return counts
}

func (qa QuestionAnalytics) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"question_id":   qa.QuestionID,
		"question_text": qa.QuestionText,
		"type":          qa.Type,
	}
	if qa.Type == OpenEnded {
		answers := qa.Answers
		if answers == nil {
			answers = []string{}
		}
		out["answers"] = answers
	} else {
		out["options"] = qa.Counts()
	}
	return json.Marshal(out)
}
