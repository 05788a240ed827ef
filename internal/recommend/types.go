package recommend

import (
	"errors"
	"strings"
)

// Sex is the answer to the opening choice question.
type Sex string

const (
	SexUnset  Sex = ""
	SexFemale Sex = "Female"
	SexMale   Sex = "Male"
)

// ParseSex accepts the two presented options, case-insensitively.
func ParseSex(raw string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "female":
		return SexFemale, nil
	case "male":
		return SexMale, nil
	}
	return SexUnset, ErrInvalidSex
}

// SexKey is the reserved answer key for the opening question.
const SexKey = "sex"

// Question kinds.
const (
	KindBoolean = "boolean"
	KindChoice  = "choice"
)

// Question is static prompt data; order in a rule set is presentation order.
type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Kind    string   `json:"kind"`
	Options []string `json:"options,omitempty"`
}

// SexQuestion opens every run.
var SexQuestion = Question{
	ID:      SexKey,
	Text:    "What is your sex?",
	Kind:    KindChoice,
	Options: []string{string(SexFemale), string(SexMale)},
}

var (
	ErrInvalidSex      = errors.New("sex must be Female or Male")
	ErrUnknownRuleSet  = errors.New("unknown rule set")
	ErrUnknownMethod   = errors.New("rule references a method missing from the catalog")
	ErrOutsideUniverse = errors.New("rule references a method outside the female universe")
	ErrDuplicateID     = errors.New("duplicate question id")
)

// AnswerSet holds the sex answer plus boolean answers keyed by question id.
// An absent key reads as false.
type AnswerSet struct {
	Sex     Sex             `json:"sex"`
	Answers map[string]bool `json:"answers,omitempty"`
}

// NewAnswerSet builds an answer set; mostly useful in tests and one-shot CLI runs.
func NewAnswerSet(sex Sex, answers map[string]bool) AnswerSet {
	a := AnswerSet{Sex: sex, Answers: make(map[string]bool, len(answers))}
	for k, v := range answers {
		a.Answers[k] = v
	}
	return a
}

// Get reads a boolean answer.
func (a AnswerSet) Get(id string) bool {
	return a.Answers[id]
}

// Has reports whether id was answered.
func (a AnswerSet) Has(id string) bool {
	_, ok := a.Answers[id]
	return ok
}

// Clone returns a deep copy.
func (a AnswerSet) Clone() AnswerSet {
	return NewAnswerSet(a.Sex, a.Answers)
}

// Result is the engine output. Others is nil for the male branch.
type Result struct {
	RuleSet   string   `json:"rule_set"`
	Sex       Sex      `json:"sex"`
	Suggested []string `json:"suggested"`
	Others    []string `json:"others,omitempty"`
}
