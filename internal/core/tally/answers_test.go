package tally

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
)

func response(answers ...domain.AnswerRecord) domain.SurveyResponse {
	return domain.SurveyResponse{Age: 30, Answers: answers}
}

func choice(id int, answer string) domain.AnswerRecord {
	return domain.AnswerRecord{ID: id, Type: domain.VariantSingleChoice, Text: "Who?", Answer: answer}
}

func sentiment(id int, answer string) domain.AnswerRecord {
	return domain.AnswerRecord{ID: id, Type: domain.VariantYesNoNotSure, Text: "Promises?", Answer: answer}
}

func TestTallySingleChoiceAnswers(t *testing.T) {
	responses := []domain.SurveyResponse{
		response(choice(1, "Alice"), sentiment(3, "Yes")),
		response(choice(1, "Bob")),
		response(choice(1, "Alice")),
	}

	got := TallySingleChoiceAnswers(responses, 1, []string{"Alice", "Bob", "Carol"})
	assert.Equal(t, []domain.OptionCount{{Label: "Alice", Count: 2}, {Label: "Bob", Count: 1}}, got)
}

func TestTallySingleChoiceAnswers_SkipsMalformed(t *testing.T) {
	responses := []domain.SurveyResponse{
		response(choice(1, "Alice")),
		response(domain.AnswerRecord{ID: 1, Type: domain.VariantOpenEnded, Answer: "Alice"}),
		response(domain.AnswerRecord{ID: 1, Type: "multi_choice", Answer: "Alice"}),
		response(choice(1, "Zed")),
		response(choice(1, "")),
		response(choice(2, "Alice")),
		response(),
		{Answers: nil},
	}

	got := TallySingleChoiceAnswers(responses, 1, []string{"Alice"})
	assert.Equal(t, []domain.OptionCount{{Label: "Alice", Count: 1}}, got)
}

func TestTallySingleChoiceAnswers_DuplicateKnownNames(t *testing.T) {
	got := TallySingleChoiceAnswers([]domain.SurveyResponse{response(choice(1, "A"))}, 1, []string{"A", "A"})
	assert.Equal(t, []domain.OptionCount{{Label: "A", Count: 1}}, got)
}

func TestTallyFixedChoiceAnswers(t *testing.T) {
	responses := []domain.SurveyResponse{
		response(sentiment(3, "Yes")),
		response(sentiment(3, "Not Sure")),
		response(sentiment(3, "Yes")),
		response(sentiment(3, "Maybe")),
		response(choice(3, "No")),
	}

	got := TallyFixedChoiceAnswers(responses, 3)
	assert.Equal(t, []domain.OptionCount{{Label: "Yes", Count: 2}, {Label: "Not Sure", Count: 1}}, got)
}

func TestTallyFixedChoiceAnswers_Empty(t *testing.T) {
	assert.Empty(t, TallyFixedChoiceAnswers(nil, 3))
}

func TestAnswerTallies_Idempotent(t *testing.T) {
	responses := []domain.SurveyResponse{response(choice(1, "A"), sentiment(3, "No"))}
	assert.Equal(t, TallySingleChoiceAnswers(responses, 1, []string{"A"}), TallySingleChoiceAnswers(responses, 1, []string{"A"}))
	assert.Equal(t, TallyFixedChoiceAnswers(responses, 3), TallyFixedChoiceAnswers(responses, 3))
}

func TestQuestionText(t *testing.T) {
	responses := []domain.SurveyResponse{
		response(domain.AnswerRecord{ID: 1, Type: domain.VariantSingleChoice}),
		response(choice(1, "A")),
	}
	assert.Equal(t, "Who?", QuestionText(responses, 1, domain.VariantSingleChoice, NoQuestionText))
	assert.Equal(t, "N/A", QuestionText(responses, 3, domain.VariantYesNoNotSure, NoQuestionText))
	assert.Equal(t, "Sentiment", QuestionText(responses, 3, domain.VariantYesNoNotSure, "Sentiment"))
}

func TestQuestionText_LatestWins(t *testing.T) {
	renamed := choice(1, "A")
	renamed.Text = "Who gets your vote?"
	responses := []domain.SurveyResponse{
		response(choice(1, "A")),
		response(renamed),
		response(domain.AnswerRecord{ID: 1, Type: domain.VariantSingleChoice, Answer: "A"}),
	}
	assert.Equal(t, "Who gets your vote?", QuestionText(responses, 1, domain.VariantSingleChoice, NoQuestionText))
}
