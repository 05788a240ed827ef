package recommend

import (
	"fmt"

	"github.com/gokatarajesh/bc-quiz/internal/catalog"
)

// Engine evaluates one rule set against answer sets. It is immutable after
// construction and safe for concurrent use.
type Engine struct {
	ruleSet        RuleSet
	catalog        *catalog.Catalog
	femaleUniverse []string
	maleUniverse   []string
}

// NewEngine derives the method universes from cat and checks that every
// method named by a rule exists and belongs to the female universe.
func NewEngine(cat *catalog.Catalog, rs RuleSet) (*Engine, error) {
	seen := make(map[string]struct{}, len(rs.Questions))
	for _, q := range rs.Questions {
		if q.ID == SexKey {
			return nil, fmt.Errorf("rule set %s: question id %q is reserved", rs.Name, SexKey)
		}
		if _, dup := seen[q.ID]; dup {
			return nil, fmt.Errorf("rule set %s: %w: %s", rs.Name, ErrDuplicateID, q.ID)
		}
		seen[q.ID] = struct{}{}
	}

	female := cat.Universe(rs.FemaleCategories...)
	inFemale := make(map[string]struct{}, len(female))
	for _, name := range female {
		inFemale[name] = struct{}{}
	}
	for _, rule := range rs.Rules {
		for _, name := range rule.Methods {
			if _, ok := cat.Lookup(name); !ok {
				return nil, fmt.Errorf("rule set %s rule %s: %w: %s", rs.Name, rule.Name, ErrUnknownMethod, name)
			}
			if _, ok := inFemale[name]; !ok {
				return nil, fmt.Errorf("rule set %s rule %s: %w: %s", rs.Name, rule.Name, ErrOutsideUniverse, name)
			}
		}
	}

	return &Engine{
		ruleSet:        rs,
		catalog:        cat,
		femaleUniverse: female,
		maleUniverse:   cat.Universe(catalog.CategoryBarrier, catalog.CategorySurgical),
	}, nil
}

// RuleSet returns the engine's configuration.
func (e *Engine) RuleSet() RuleSet {
	return e.ruleSet
}

// Catalog returns the table the engine was built from.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// FemaleUniverse lists the methods partitioned by female results.
func (e *Engine) FemaleUniverse() []string {
	return append([]string(nil), e.femaleUniverse...)
}

// MaleUniverse lists the fixed male suggestions.
func (e *Engine) MaleUniverse() []string {
	return append([]string(nil), e.maleUniverse...)
}

// Recommend maps a completed answer set to suggested and other methods.
// It panics on an unset or unknown sex and on answer keys outside the rule
// set; callers are expected to have validated both.
func (e *Engine) Recommend(answers AnswerSet) Result {
	for id := range answers.Answers {
		if e.ruleSet.QuestionIndex(id) < 0 {
			panic(fmt.Sprintf("recommend: answer key %q not in rule set %s", id, e.ruleSet.Name))
		}
	}
	switch answers.Sex {
	case SexMale:
		return Result{
			RuleSet:   e.ruleSet.Name,
			Sex:       SexMale,
			Suggested: e.MaleUniverse(),
		}
	case SexFemale:
		return e.recommendFemale(answers)
	default:
		panic(fmt.Sprintf("recommend: sex %q is not answered", answers.Sex))
	}
}

func (e *Engine) recommendFemale(answers AnswerSet) Result {

	var acc []string
	for _, rule := range e.ruleSet.Rules {
		if !rule.When(answers) {
			continue
		}
		acc = append(acc, rule.Methods...)
		if rule.Stop {
			break
		}
	}

	suggested := dedupe(acc)
	picked := make(map[string]struct{}, len(suggested))
	for _, name := range suggested {
		picked[name] = struct{}{}
	}
	others := make([]string, 0, len(e.femaleUniverse)-len(suggested))
	for _, name := range e.femaleUniverse {
		if _, ok := picked[name]; !ok {
			others = append(others, name)
		}
	}

	return Result{
		RuleSet:   e.ruleSet.Name,
		Sex:       SexFemale,
		Suggested: suggested,
		Others:    others,
	}
}

func dedupe(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// Engines holds one engine per built-in rule set over a shared catalog.
type Engines struct {
	byName      map[string]*Engine
	defaultName string
}

// NewEngines builds every built-in rule set against cat. defaultName must be
// one of Names().
func NewEngines(cat *catalog.Catalog, defaultName string) (*Engines, error) {
	es := &Engines{byName: make(map[string]*Engine, len(builtins)), defaultName: defaultName}
	for _, name := range Names() {
		rs, _ := Lookup(name)
		engine, err := NewEngine(cat, rs)
		if err != nil {
			return nil, err
		}
		es.byName[name] = engine
	}
	if _, ok := es.byName[defaultName]; !ok {
		return nil, fmt.Errorf("default %w: %q", ErrUnknownRuleSet, defaultName)
	}
	return es, nil
}

// Get returns the engine for name; an empty name selects the default.
func (es *Engines) Get(name string) (*Engine, error) {
	if name == "" {
		name = es.defaultName
	}
	engine, ok := es.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRuleSet, name)
	}
	return engine, nil
}

// Default returns the name of the default rule set.
func (es *Engines) Default() string {
	return es.defaultName
}
