package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestQuizCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	q := NewQuiz(reg)

	q.Started("classic")
	q.Answered("classic", true)
	q.Answered("classic", false)
	q.Answered("classic", true)
	q.Completed("classic", "Male", []string{"External Condoms", "Vasectomy"})

	assert.Equal(t, 1.0, testutil.ToFloat64(q.SessionsStarted.WithLabelValues("classic")))
	assert.Equal(t, 2.0, testutil.ToFloat64(q.Answers.WithLabelValues("classic", OutcomeAccepted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(q.Answers.WithLabelValues("classic", OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(q.SessionsCompleted.WithLabelValues("classic", "Male")))
	assert.Equal(t, 1.0, testutil.ToFloat64(q.MethodSuggested.WithLabelValues("Vasectomy")))

	count, err := testutil.GatherAndCount(reg, "quiz_method_suggested_total")
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}
