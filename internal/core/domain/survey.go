package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const MinRespondentAge = 18

var Genders = []string{"male", "female", "other", "prefer-not-say"}

type Respondent struct {
	Name   string `json:"name"`
	Gender string `json:"gender"`
	Age    int    `json:"age"`
}

// UnmarshalJSON accepts the age as a number or as a numeric string, the way
// form fields post it. A blank age decodes to zero and is left for
// validation to report as missing.
func (r *Respondent) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name   string          `json:"name"`
		Gender string          `json:"gender"`
		Age    json.RawMessage `json:"age"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	age, err := parseAge(raw.Age)
	if err != nil {
		return err
	}
	*r = Respondent{Name: raw.Name, Gender: raw.Gender, Age: age}
	return nil
}

func parseAge(raw json.RawMessage) (int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, &ValidationError{Err: ErrInvalidRespondentField, Field: "age"}
	}
	if s = strings.TrimSpace(s); s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ValidationError{Err: ErrInvalidRespondentField, Field: "age"}
	}
	return n, nil
}

// AnswerRecord is an answer as stored by the backend. Type is kept raw since
// records may come from older schema versions.
type AnswerRecord struct {
	ID      int      `json:"id"`
	Text    string   `json:"text"`
	Type    Variant  `json:"type"`
	Answer  string   `json:"answer"`
	Options []string `json:"options,omitempty"`
}

type SurveyResponse struct {
	ID          int64          `json:"id"`
	PollID      int64          `json:"poll_id"`
	Name        string         `json:"name"`
	Gender      string         `json:"gender"`
	Age         int            `json:"age"`
	Answers     []AnswerRecord `json:"answers"`
	SubmittedAt time.Time      `json:"submitted_at"`
}

type SurveySubmission struct {
	PollID     int64          `json:"pollId"`
	Respondent Respondent     `json:"respondent"`
	Answers    []AnswerRecord `json:"answers"`
}

// SurveyDraft is an in-progress survey, owned by a DraftRepository. Version
// is bumped by every successful save; zero means the draft was never saved.
type SurveyDraft struct {
	ID        uuid.UUID  `json:"id"`
	PollID    int64      `json:"poll_id"`
	Questions []Question `json:"questions"`
	Version   int64      `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
