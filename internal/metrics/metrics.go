package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Answer outcomes.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// Quiz holds the counters recorded by the session service.
type Quiz struct {
	SessionsStarted   *prometheus.CounterVec
	SessionsCompleted *prometheus.CounterVec
	Answers           *prometheus.CounterVec
	MethodSuggested   *prometheus.CounterVec
}

// NewQuiz creates the quiz counters and registers them with reg. A nil reg
// leaves them unregistered, which tests rely on.
func NewQuiz(reg prometheus.Registerer) *Quiz {
	q := &Quiz{
		SessionsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quiz_sessions_started_total",
			Help: "Quiz sessions created, by rule set.",
		}, []string{"rule_set"}),
		SessionsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quiz_sessions_completed_total",
			Help: "Quiz runs that reached the results screen.",
		}, []string{"rule_set", "sex"}),
		Answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quiz_answers_total",
			Help: "Answers submitted, by outcome.",
		}, []string{"rule_set", "outcome"}),
		MethodSuggested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quiz_method_suggested_total",
			Help: "Times a method appeared in the suggested list.",
		}, []string{"method"}),
	}
	if reg != nil {
		reg.MustRegister(q.SessionsStarted, q.SessionsCompleted, q.Answers, q.MethodSuggested)
	}
	return q
}

// Started records a new session.
func (q *Quiz) Started(ruleSet string) {
	q.SessionsStarted.WithLabelValues(ruleSet).Inc()
}

// Answered records an accepted or rejected submission.
func (q *Quiz) Answered(ruleSet string, accepted bool) {
	outcome := OutcomeAccepted
	if !accepted {
		outcome = OutcomeRejected
	}
	q.Answers.WithLabelValues(ruleSet, outcome).Inc()
}

// Completed records a finished run and the methods it suggested.
func (q *Quiz) Completed(ruleSet, sex string, suggested []string) {
	q.SessionsCompleted.WithLabelValues(ruleSet, sex).Inc()
	for _, name := range suggested {
		q.MethodSuggested.WithLabelValues(name).Inc()
	}
}
