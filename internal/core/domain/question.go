package domain

import (
	"encoding/json"
	"fmt"
	"slices"
)

type Variant string

const (
	VariantSingleChoice Variant = "single_choice"
	VariantOpenEnded    Variant = "open_ended"
	VariantYesNoNotSure Variant = "yes_no_not_sure"
)

const (
	AnswerYes     = "Yes"
	AnswerNo      = "No"
	AnswerNotSure = "Not Sure"
)

// YesNoNotSureOptions returns a fresh copy of the fixed triad.
func YesNoNotSureOptions() []string {
	return []string{AnswerYes, AnswerNo, AnswerNotSure}
}

func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case VariantSingleChoice, VariantOpenEnded, VariantYesNoNotSure:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedVariant, s)
}

// QuestionKind is the variant-specific part of a question. Only the three
// arms below implement it.
type QuestionKind interface {
	Variant() Variant
	isQuestionKind()
}

type SingleChoice struct {
	Options []string
}

type OpenEnded struct{}

type YesNoNotSure struct{}

func (SingleChoice) Variant() Variant { return VariantSingleChoice }
func (OpenEnded) Variant() Variant    { return VariantOpenEnded }
func (YesNoNotSure) Variant() Variant { return VariantYesNoNotSure }

func (SingleChoice) isQuestionKind() {}
func (OpenEnded) isQuestionKind()    {}
func (YesNoNotSure) isQuestionKind() {}

// Question is one unit of an opinion survey. Locked marks the core questions
// emitted at authoring time.
type Question struct {
	ID     int
	Text   string
	Answer string
	Locked bool
	Kind   QuestionKind
}

func (q Question) Variant() Variant {
	if q.Kind == nil {
		return ""
	}
	return q.Kind.Variant()
}

// Options returns the choice list, or nil for open-ended questions.
func (q Question) Options() []string {
	switch k := q.Kind.(type) {
	case SingleChoice:
		return k.Options
	case YesNoNotSure:
		return YesNoNotSureOptions()
	}
	return nil
}

// IsChoice reports whether the question must be answered with one of its options.
func (q Question) IsChoice() bool {
	switch q.Kind.(type) {
	case SingleChoice, YesNoNotSure:
		return true
	}
	return false
}

func (q Question) HasOption(answer string) bool {
	return slices.Contains(q.Options(), answer)
}

// Record flattens the question into the wire shape posted on submission.
func (q Question) Record() AnswerRecord {
	return AnswerRecord{
		ID:      q.ID,
		Text:    q.Text,
		Type:    q.Variant(),
		Answer:  q.Answer,
		Options: slices.Clone(q.Options()),
	}
}

type questionJSON struct {
	ID      int      `json:"id"`
	Text    string   `json:"text"`
	Type    Variant  `json:"type"`
	Answer  string   `json:"answer"`
	Options []string `json:"options,omitempty"`
	Locked  bool     `json:"locked,omitempty"`
}

func (q Question) MarshalJSON() ([]byte, error) {
	return json.Marshal(questionJSON{
		ID:      q.ID,
		Text:    q.Text,
		Type:    q.Variant(),
		Answer:  q.Answer,
		Options: q.Options(),
		Locked:  q.Locked,
	})
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var raw questionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	variant, err := ParseVariant(string(raw.Type))
	if err != nil {
		return err
	}

	*q = Question{ID: raw.ID, Text: raw.Text, Answer: raw.Answer, Locked: raw.Locked}
	switch variant {
	case VariantSingleChoice:
		q.Kind = SingleChoice{Options: raw.Options}
	case VariantOpenEnded:
		q.Kind = OpenEnded{}
	case VariantYesNoNotSure:
		q.Kind = YesNoNotSure{}
	}
	return nil
}
