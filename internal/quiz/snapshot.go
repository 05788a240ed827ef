package quiz

import (
	"fmt"

	"github.com/gokatarajesh/bc-quiz/internal/recommend"
)

// Snapshot is the serializable form of a flow used by session stores.
type Snapshot struct {
	RuleSet  string          `json:"rule_set"`
	Step     int             `json:"step"`
	Finished bool            `json:"finished"`
	Sex      recommend.Sex   `json:"sex,omitempty"`
	Answers  map[string]bool `json:"answers,omitempty"`
}

// Snapshot captures the current state.
func (f *Flow) Snapshot() Snapshot {
	a := f.answers.Clone()
	return Snapshot{
		RuleSet:  f.engine.RuleSet().Name,
		Step:     f.step,
		Finished: f.finished,
		Sex:      a.Sex,
		Answers:  a.Answers,
	}
}

// Restore rebuilds a flow, rejecting snapshots that could not have been
// produced by a flow over the same rule set.
func Restore(engine *recommend.Engine, snap Snapshot) (*Flow, error) {
	rs := engine.RuleSet()
	if snap.RuleSet != rs.Name {
		return nil, fmt.Errorf("%w: snapshot for %q, engine %q", ErrBadSnapshot, snap.RuleSet, rs.Name)
	}
	if snap.Step < 0 || snap.Step > len(rs.Questions) {
		return nil, fmt.Errorf("%w: step %d", ErrBadSnapshot, snap.Step)
	}
	if err := checkReachable(rs, snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}

	f := &Flow{
		engine:   engine,
		step:     snap.Step,
		answers:  recommend.NewAnswerSet(snap.Sex, snap.Answers),
		finished: snap.Finished,
	}
	return f, nil
}

// checkReachable accepts only the states SubmitSex and SubmitAnswer can
// produce: unset at step 0; male finished at step 0; female asking question
// i with exactly questions[0:i-1] answered; female finished with every
// question answered.
func checkReachable(rs recommend.RuleSet, snap Snapshot) error {
	n := len(rs.Questions)
	answered := 0
	switch snap.Sex {
	case recommend.SexUnset:
		if snap.Step != 0 || snap.Finished {
			return fmt.Errorf("sex not answered at step %d", snap.Step)
		}
	case recommend.SexMale:
		if !snap.Finished || snap.Step != 0 {
			return fmt.Errorf("male run at step %d, finished %t", snap.Step, snap.Finished)
		}
	case recommend.SexFemale:
		switch {
		case snap.Finished && snap.Step != n:
			return fmt.Errorf("female run finished at step %d of %d", snap.Step, n)
		case snap.Finished:
			answered = n
		case snap.Step == 0:
			return fmt.Errorf("sex answered but still asking it")
		default:
			answered = snap.Step - 1
		}
	default:
		return fmt.Errorf("sex %q", snap.Sex)
	}

	if len(snap.Answers) != answered {
		return fmt.Errorf("%d answers at step %d, want %d", len(snap.Answers), snap.Step, answered)
	}
	for _, q := range rs.Questions[:answered] {
		if _, ok := snap.Answers[q.ID]; !ok {
			return fmt.Errorf("missing answer %q", q.ID)
		}
	}
	return nil
}
