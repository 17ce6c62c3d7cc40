package tally

import "github.com/vncsmyrnk/pollboard/internal/core/domain"

// NoQuestionText is the heading used when no response carries the question.
const NoQuestionText = "N/A"

// TallySingleChoiceAnswers counts the single choice answers given to
// questionID that match one of knownOptionNames. Options are returned in
// knownOptionNames order and omitted when nobody picked them.
func TallySingleChoiceAnswers(responses []domain.SurveyResponse, questionID int, knownOptionNames []string) []domain.OptionCount {
	return tallyAnswers(responses, questionID, domain.VariantSingleChoice, knownOptionNames)
}

// TallyFixedChoiceAnswers is TallySingleChoiceAnswers for yes/no/not sure questions.
func TallyFixedChoiceAnswers(responses []domain.SurveyResponse, questionID int) []domain.OptionCount {
	return tallyAnswers(responses, questionID, domain.VariantYesNoNotSure, domain.YesNoNotSureOptions())
}

// QuestionText returns the text of the latest answer recorded for the
// question, for use as a chart heading. Responses are in submission order, so
// a question renamed between submissions shows its newest wording.
func QuestionText(responses []domain.SurveyResponse, questionID int, variant domain.Variant, fallback string) string {
	text := fallback
	for _, r := range responses {
		for _, a := range r.Answers {
			if a.ID == questionID && a.Type == variant && a.Text != "" {
				text = a.Text
			}
		}
	}
	return text
}

func tallyAnswers(responses []domain.SurveyResponse, questionID int, variant domain.Variant, options []string) []domain.OptionCount {
	index := make(map[string]int, len(options))
	labels := make([]string, 0, len(options))
	for _, o := range options {
		if _, dup := index[o]; dup {
			continue
		}
		index[o] = len(labels)
		labels = append(labels, o)
	}

	counts := make([]int, len(labels))
	for _, r := range responses {
		for _, a := range r.Answers {
			if a.ID != questionID || a.Type != variant {
				continue
			}
			if i, ok := index[a.Answer]; ok {
				counts[i]++
			}
		}
	}

	var out []domain.OptionCount
	for i, label := range labels {
		if counts[i] > 0 {
			out = append(out, domain.OptionCount{Label: label, Count: counts[i]})
		}
	}
	return out
}
