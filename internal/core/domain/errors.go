package domain

import (
	"errors"
	"fmt"
)

var (
	ErrPollNotFound     = errors.New("poll not found")
	ErrInvalidPollID    = errors.New("invalid poll id")
	ErrDraftNotFound    = errors.New("survey draft not found")
	ErrDraftConflict    = errors.New("survey draft was changed concurrently")
	ErrQuestionNotFound = errors.New("question not found")
	ErrNoSelection      = errors.New("no competitor selected")
	ErrInternal         = errors.New("internal server error")
	ErrRejected         = errors.New("request rejected by backend")

	ErrUnsupportedVariant = errors.New("unsupported question variant")
	ErrCoreQuestionLocked = errors.New("core questions cannot be changed")
	ErrOptionsFixed       = errors.New("options can only be added to single choice questions")
	ErrUnknownCompetitor  = errors.New("competitor is not part of this poll")
	ErrInvalidPoll        = errors.New("invalid poll")
	ErrOptionNotFound     = errors.New("option not found")

	ErrMissingRespondentField     = errors.New("missing respondent field")
	ErrInvalidRespondentField     = errors.New("invalid respondent field")
	ErrUnansweredRequiredQuestion = errors.New("unanswered required question")
	ErrInvalidAnswer              = errors.New("answer is not one of the question options")
)

// ValidationError is returned when a survey submission is rejected. It wraps
// one of the Err* validation sentinels so callers can match with errors.Is.
type ValidationError struct {
	Err        error
	Field      string
	QuestionID int
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Err, e.Field)
	}
	return fmt.Sprintf("%s: question %d", e.Err, e.QuestionID)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
