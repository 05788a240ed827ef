package recommend

// Predicate is a condition over an answer set.
type Predicate func(AnswerSet) bool

// Rule appends Methods when When holds. A Stop rule ends evaluation after
// its methods are appended.
type Rule struct {
	Name    string
	When    Predicate
	Methods []string
	Stop    bool
}

// RuleSet is one configuration of the quiz: its questions, ordered rules and
// the catalog categories that make up the female universe.
type RuleSet struct {
	Name             string
	Description      string
	Questions        []Question
	Rules            []Rule
	FemaleCategories []string
}

// QuestionIndex returns the position of id in the question list, or -1.
func (rs *RuleSet) QuestionIndex(id string) int {
	for i, q := range rs.Questions {
		if q.ID == id {
			return i
		}
	}
	return -1
}

// Yes holds when the question was answered true.
func Yes(id string) Predicate {
	return func(a AnswerSet) bool { return a.Get(id) }
}

// No holds when the question was answered false or not at all.
func No(id string) Predicate {
	return func(a AnswerSet) bool { return !a.Get(id) }
}

// All is logical and.
func All(ps ...Predicate) Predicate {
	return func(a AnswerSet) bool {
		for _, p := range ps {
			if !p(a) {
				return false
			}
		}
		return true
	}
}

// Any is logical or.
func Any(ps ...Predicate) Predicate {
	return func(a AnswerSet) bool {
		for _, p := range ps {
			if p(a) {
				return true
			}
		}
		return false
	}
}
