package session

import (
	"github.com/google/uuid"

	"github.com/gokatarajesh/bc-quiz/internal/catalog"
	"github.com/gokatarajesh/bc-quiz/internal/quiz"
	"github.com/gokatarajesh/bc-quiz/internal/recommend"
)

// View is what a display client renders after every operation: a prompt
// while asking, results once finished.
type View struct {
	SessionID uuid.UUID    `json:"session_id"`
	RuleSet   string       `json:"rule_set"`
	State     quiz.State   `json:"state"`
	Step      int          `json:"step"`
	Prompt    *quiz.Prompt `json:"prompt,omitempty"`
	Results   *ResultView  `json:"results,omitempty"`
}

// ResultView carries the suggested and other sections with display fields
// chosen by sex.
type ResultView struct {
	Sex       recommend.Sex `json:"sex"`
	Suggested []MethodView  `json:"suggested"`
	Others    []MethodView  `json:"others,omitempty"`
}

// MethodView is one method entry in a results section.
type MethodView struct {
	Name   string            `json:"name"`
	Fields []recommend.Field `json:"fields"`
}

// NewResultView resolves method names against cat.
func NewResultView(cat *catalog.Catalog, res recommend.Result) *ResultView {
	rv := &ResultView{
		Sex:       res.Sex,
		Suggested: methodViews(cat, res.Suggested, res.Sex),
	}
	if res.Others != nil {
		rv.Others = methodViews(cat, res.Others, res.Sex)
	}
	return rv
}

func methodViews(cat *catalog.Catalog, names []string, sex recommend.Sex) []MethodView {
	out := make([]MethodView, 0, len(names))
	for _, name := range names {
		m, ok := cat.Lookup(name)
		if !ok {
			// engines are built against the same catalog
			panic("session: method missing from catalog: " + name)
		}
		out = append(out, MethodView{Name: name, Fields: recommend.Fields(m, sex)})
	}
	return out
}

func newView(id uuid.UUID, f *quiz.Flow) *View {
	v := &View{
		SessionID: id,
		RuleSet:   f.Engine().RuleSet().Name,
		State:     f.State(),
		Step:      f.Step(),
	}
	if p, ok := f.CurrentPrompt(); ok {
		v.Prompt = &p
	}
	if res, err := f.Result(); err == nil {
		v.Results = NewResultView(f.Engine().Catalog(), res)
	}
	return v
}
