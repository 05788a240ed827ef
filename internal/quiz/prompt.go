package quiz

import (
	"fmt"

	"github.com/gokatarajesh/bc-quiz/internal/recommend"
)

// Prompt is what the display layer renders for the current state.
type Prompt struct {
	QuestionID string   `json:"question_id"`
	Text       string   `json:"text"`
	Kind       string   `json:"kind"`
	Options    []string `json:"options"`
	Index      int      `json:"index,omitempty"`
	Total      int      `json:"total,omitempty"`
	Progress   string   `json:"progress,omitempty"`
}

// YesNoOptions are the two buttons under every boolean question.
var YesNoOptions = []string{"Yes", "No"}

// CurrentPrompt returns the prompt to display, or false once finished.
func (f *Flow) CurrentPrompt() (Prompt, bool) {
	switch f.State() {
	case StateAskingSex:
		q := recommend.SexQuestion
		return Prompt{
			QuestionID: q.ID,
			Text:       q.Text,
			Kind:       q.Kind,
			Options:    append([]string(nil), q.Options...),
		}, true
	case StateAskingQuestion:
		q := f.engine.RuleSet().Questions[f.step-1]
		total := f.Total()
		return Prompt{
			QuestionID: q.ID,
			Text:       q.Text,
			Kind:       q.Kind,
			Options:    append([]string(nil), YesNoOptions...),
			Index:      f.step,
			Total:      total,
			Progress:   fmt.Sprintf("Question %d of %d", f.step, total),
		}, true
	}
	return Prompt{}, false
}
