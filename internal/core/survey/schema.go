// Package survey holds the opinion survey schema operations. Every function
// returns a new question slice and leaves its input untouched.
package survey

import (
	"fmt"
	"slices"

	"github.com/vncsmyrnk/pollboard/internal/core/domain"
)

// CoreQuestionCount is the number of locked questions BuildInitialQuestions emits.
const CoreQuestionCount = 3

// Ids of the core questions the analytics charts are built from.
const (
	CandidateQuestionID = 1
	SentimentQuestionID = 3
)

const (
	openEndedPrompt = "Why would you vote for the aspirant you've chosen above?"
	newOptionLabel  = "New Option"
)

func BuildInitialQuestions(category string, competitorNames []string, presidentialOrTitle string) []domain.Question {
	return []domain.Question{
		{
			ID:     CandidateQuestionID,
			Text:   fmt.Sprintf("If elections were held today, who would you vote as the %s in the coming 2027 general elections?", category),
			Locked: true,
			Kind:   domain.SingleChoice{Options: slices.Clone(competitorNames)},
		},
		{
			ID:     2,
			Text:   openEndedPrompt,
			Locked: true,
			Kind:   domain.OpenEnded{},
		},
		{
			ID:     SentimentQuestionID,
			Text:   fmt.Sprintf("Do you think %s %s has fulfilled their promises?", category, presidentialOrTitle),
			Locked: true,
			Kind:   domain.YesNoNotSure{},
		},
	}
}

// AppendQuestion adds an empty custom question of the given variant and
// returns its id. An unsupported variant leaves the list unchanged and
// returns id 0.
func AppendQuestion(questions []domain.Question, variant domain.Variant) ([]domain.Question, int) {
	var kind domain.QuestionKind
	switch variant {
	case domain.VariantSingleChoice:
		kind = domain.SingleChoice{Options: []string{"Option 1", "Option 2"}}
	case domain.VariantOpenEnded:
		kind = domain.OpenEnded{}
	case domain.VariantYesNoNotSure:
		kind = domain.YesNoNotSure{}
	default:
		return clone(questions), 0
	}

	id := nextID(questions)
	out := make([]domain.Question, 0, len(questions)+1)
	out = append(out, questions...)
	out = append(out, domain.Question{ID: id, Kind: kind})
	return out, id
}

// RemoveQuestion drops the question with the given id. Locked questions are
// not protected here, callers decide whether removing them is allowed.
func RemoveQuestion(questions []domain.Question, id int) []domain.Question {
	out := make([]domain.Question, 0, len(questions))
	for _, q := range questions {
		if q.ID != id {
			out = append(out, q)
		}
	}
	return out
}

func UpdateQuestionText(questions []domain.Question, id int, text string) []domain.Question {
	return replace(questions, id, func(q domain.Question) domain.Question {
		q.Text = text
		return q
	})
}

// UpdateOption rewrites one option of a single choice question. The
// yes/no/not sure triad is fixed, so those questions are left as is.
func UpdateOption(questions []domain.Question, id int, optionIndex int, text string) []domain.Question {
	return replace(questions, id, func(q domain.Question) domain.Question {
		sc, ok := q.Kind.(domain.SingleChoice)
		if !ok || optionIndex < 0 || optionIndex >= len(sc.Options) {
			return q
		}
		options := slices.Clone(sc.Options)
		options[optionIndex] = text
		q.Kind = domain.SingleChoice{Options: options}
		return q
	})
}

func AddOption(questions []domain.Question, id int) []domain.Question {
	return replace(questions, id, func(q domain.Question) domain.Question {
		sc, ok := q.Kind.(domain.SingleChoice)
		if !ok {
			return q
		}
		options := make([]string, 0, len(sc.Options)+1)
		options = append(options, sc.Options...)
		options = append(options, newOptionLabel)
		q.Kind = domain.SingleChoice{Options: options}
		return q
	})
}

// SetAnswer records an answer without checking it against the options;
// ValidateForSubmission does that.
func SetAnswer(questions []domain.Question, id int, answer string) []domain.Question {
	return replace(questions, id, func(q domain.Question) domain.Question {
		q.Answer = answer
		return q
	})
}

func Find(questions []domain.Question, id int) (domain.Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q, true
		}
	}
	return domain.Question{}, false
}

func Records(questions []domain.Question) []domain.AnswerRecord {
	records := make([]domain.AnswerRecord, 0, len(questions))
	for _, q := range questions {
		records = append(records, q.Record())
	}
	return records
}

func nextID(questions []domain.Question) int {
	maxID := 0
	for _, q := range questions {
		maxID = max(maxID, q.ID)
	}
	return maxID + 1
}

func replace(questions []domain.Question, id int, fn func(domain.Question) domain.Question) []domain.Question {
	out := clone(questions)
	for i := range out {
		if out[i].ID == id {
			out[i] = fn(out[i])
		}
	}
	return out
}

func clone(questions []domain.Question) []domain.Question {
	if questions == nil {
		return nil
	}
	return slices.Clone(questions)
}
