package survey

import (
	"slices"
	"strings"

	"github.com/vncsmyrnk/pollboard/internal/core/domain"
)

// ValidateForSubmission returns a *domain.ValidationError describing the
// first problem found, or nil when the survey can be submitted. Open-ended
// questions may be left blank.
func ValidateForSubmission(respondent domain.Respondent, questions []domain.Question) error {
	switch {
	case strings.TrimSpace(respondent.Name) == "":
		return &domain.ValidationError{Err: domain.ErrMissingRespondentField, Field: "name"}
	case strings.TrimSpace(respondent.Gender) == "":
		return &domain.ValidationError{Err: domain.ErrMissingRespondentField, Field: "gender"}
	case respondent.Age == 0:
		return &domain.ValidationError{Err: domain.ErrMissingRespondentField, Field: "age"}
	case !slices.Contains(domain.Genders, respondent.Gender):
		return &domain.ValidationError{Err: domain.ErrInvalidRespondentField, Field: "gender"}
	case respondent.Age < domain.MinRespondentAge:
		return &domain.ValidationError{Err: domain.ErrInvalidRespondentField, Field: "age"}
	}

	for _, q := range questions {
		if !q.IsChoice() {
			continue
		}
		if q.Answer == "" {
			return &domain.ValidationError{Err: domain.ErrUnansweredRequiredQuestion, QuestionID: q.ID}
		}
		if !q.HasOption(q.Answer) {
			return &domain.ValidationError{Err: domain.ErrInvalidAnswer, QuestionID: q.ID}
		}
	}
	return nil
}
