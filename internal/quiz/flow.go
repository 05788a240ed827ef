package quiz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gokatarajesh/bc-quiz/internal/recommend"
)

// State of a flow.
type State string

const (
	StateAskingSex      State = "asking_sex"
	StateAskingQuestion State = "asking_question"
	StateFinished       State = "finished"
)

var (
	ErrWrongState    = errors.New("operation not allowed in current state")
	ErrInvalidAnswer = errors.New("answer is not one of the presented options")
	ErrNotFinished   = errors.New("quiz is not finished")
	ErrBadSnapshot   = errors.New("snapshot does not match rule set")
)

// Flow is the question-sequencing state machine for one respondent. Step 0
// is the sex question; step i in 1..N is questions[i-1]. A Flow is owned by
// one caller at a time and is not safe for concurrent use.
type Flow struct {
	engine   *recommend.Engine
	step     int
	answers  recommend.AnswerSet
	finished bool
}

// NewFlow starts a run in the AskingSex state.
func NewFlow(engine *recommend.Engine) *Flow {
	f := &Flow{engine: engine}
	f.Reset()
	return f
}

// Reset returns to AskingSex with an empty answer set. Valid in any state.
func (f *Flow) Reset() {
	f.step = 0
	f.answers = recommend.AnswerSet{Answers: map[string]bool{}}
	f.finished = false
}

// State reports the current state.
func (f *Flow) State() State {
	switch {
	case f.finished:
		return StateFinished
	case f.step == 0:
		return StateAskingSex
	default:
		return StateAskingQuestion
	}
}

// Step is 0 while asking sex and i while asking question i.
func (f *Flow) Step() int {
	return f.step
}

// Total is the number of yes/no questions in the rule set.
func (f *Flow) Total() int {
	return len(f.engine.RuleSet().Questions)
}

// Finished reports whether the run reached its terminal state.
func (f *Flow) Finished() bool {
	return f.finished
}

// Answers returns a copy of the accumulated answers.
func (f *Flow) Answers() recommend.AnswerSet {
	return f.answers.Clone()
}

// Engine returns the engine that scores this flow.
func (f *Flow) Engine() *recommend.Engine {
	return f.engine
}

// SubmitSex records the opening answer. Male finishes the run at once.
func (f *Flow) SubmitSex(sex recommend.Sex) error {
	if f.State() != StateAskingSex {
		return fmt.Errorf("submit sex in %s: %w", f.State(), ErrWrongState)
	}
	if sex != recommend.SexFemale && sex != recommend.SexMale {
		return fmt.Errorf("sex %q: %w", sex, ErrInvalidAnswer)
	}
	f.answers = recommend.AnswerSet{Sex: sex, Answers: map[string]bool{}}
	if sex == recommend.SexMale || f.Total() == 0 {
		f.finished = true
		return nil
	}
	f.step = 1
	return nil
}

// SubmitAnswer records the answer to the current yes/no question and
// advances, finishing after the last one.
func (f *Flow) SubmitAnswer(value bool) error {
	if f.State() != StateAskingQuestion {
		return fmt.Errorf("submit answer in %s: %w", f.State(), ErrWrongState)
	}
	questions := f.engine.RuleSet().Questions
	if f.step < 1 || f.step > len(questions) {
		panic(fmt.Sprintf("quiz: step %d out of range 1..%d", f.step, len(questions)))
	}
	f.answers.Answers[questions[f.step-1].ID] = value
	if f.step < len(questions) {
		f.step++
		return nil
	}
	f.finished = true
	return nil
}

// Submit forwards a raw display-layer answer to SubmitSex or SubmitAnswer
// depending on the current state.
func (f *Flow) Submit(raw string) error {
	switch f.State() {
	case StateAskingSex:
		sex, err := recommend.ParseSex(raw)
		if err != nil {
			return fmt.Errorf("%q: %w", raw, ErrInvalidAnswer)
		}
		return f.SubmitSex(sex)
	case StateAskingQuestion:
		value, err := ParseYesNo(raw)
		if err != nil {
			return err
		}
		return f.SubmitAnswer(value)
	default:
		return fmt.Errorf("submit in %s: %w", f.State(), ErrWrongState)
	}
}

// ParseYesNo accepts yes/no/true/false/y/n, case-insensitively.
func ParseYesNo(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "true":
		return true, nil
	case "no", "n", "false":
		return false, nil
	}
	return false, fmt.Errorf("%q: %w", raw, ErrInvalidAnswer)
}

// Result scores the finished run.
func (f *Flow) Result() (recommend.Result, error) {
	if !f.finished {
		return recommend.Result{}, ErrNotFinished
	}
	return f.engine.Recommend(f.answers), nil
}
