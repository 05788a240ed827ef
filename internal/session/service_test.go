package session

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/bc-quiz/internal/catalog"
	"github.com/gokatarajesh/bc-quiz/internal/quiz"
	"github.com/gokatarajesh/bc-quiz/internal/recommend"
)

func TestServiceMaleRun(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	view, token, err := fx.service.Start(ctx, "")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, recommend.RuleSetClassic, view.RuleSet)
	assert.Equal(t, quiz.StateAskingSex, view.State)
	require.NotNil(t, view.Prompt)
	assert.Nil(t, view.Results)

	view, err = fx.service.Answer(ctx, view.SessionID, "Male")
	require.NoError(t, err)
	assert.Equal(t, quiz.StateFinished, view.State)
	assert.Nil(t, view.Prompt)
	require.NotNil(t, view.Results)

	require.Len(t, view.Results.Suggested, 2)
	assert.Equal(t, catalog.ExternalCondoms, view.Results.Suggested[0].Name)
	assert.Equal(t, "Type", view.Results.Suggested[0].Fields[0].Label)
	assert.Nil(t, view.Results.Others)

	assert.Equal(t, 1.0, testutil.ToFloat64(fx.metrics.SessionsCompleted.WithLabelValues(recommend.RuleSetClassic, "Male")))
}

func TestServiceFemaleRunAndRestart(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	view, _, err := fx.service.Start(ctx, recommend.RuleSetExtended)
	require.NoError(t, err)
	id := view.SessionID

	_, err = fx.service.Answer(ctx, id, "Female")
	require.NoError(t, err)

	// wantPregnant, emergency, noEstrogen, noDaily
	for _, v := range []string{"no", "no", "yes", "yes"} {
		view, err = fx.service.Answer(ctx, id, v)
		require.NoError(t, err)
	}
	for view.State != quiz.StateFinished {
		view, err = fx.service.Answer(ctx, id, "no")
		require.NoError(t, err)
	}

	require.NotNil(t, view.Results)
	names := make([]string, 0, len(view.Results.Suggested))
	for _, m := range view.Results.Suggested {
		names = append(names, m.Name)
		assert.Equal(t, "Prescription Required", m.Fields[0].Label)
	}
	assert.Equal(t, []string{catalog.CopperIUD, catalog.HormonalIUD, catalog.Injectable, catalog.ExternalCondoms}, names)
	assert.Len(t, view.Results.Others, 5)

	_, err = fx.service.Answer(ctx, id, "yes")
	assert.ErrorIs(t, err, quiz.ErrWrongState)

	view, err = fx.service.Restart(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, quiz.StateAskingSex, view.State)
	assert.Equal(t, 0, view.Step)

	snap, err := fx.store.Load(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, snap.Answers)
	assert.Equal(t, recommend.SexUnset, snap.Sex)
}

func TestServiceRejectsInvalidAnswerWithoutAdvancing(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	view, _, err := fx.service.Start(ctx, "")
	require.NoError(t, err)

	_, err = fx.service.Answer(ctx, view.SessionID, "maybe")
	assert.ErrorIs(t, err, quiz.ErrInvalidAnswer)

	view, err = fx.service.Get(ctx, view.SessionID)
	require.NoError(t, err)
	assert.Equal(t, quiz.StateAskingSex, view.State)
}

func TestServiceUnknownSessionAndRuleSet(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.service.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = fx.service.Answer(ctx, uuid.New(), "Male")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = fx.service.Start(ctx, "weekly")
	assert.ErrorIs(t, err, recommend.ErrUnknownRuleSet)
}

func TestServiceBusySession(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	view, _, err := fx.service.Start(ctx, "")
	require.NoError(t, err)

	unlock, err := fx.store.Lock(ctx, view.SessionID)
	require.NoError(t, err)
	defer unlock()

	_, err = fx.service.Answer(ctx, view.SessionID, "Male")
	assert.ErrorIs(t, err, ErrBusy)
}

func TestServiceClose(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	view, _, err := fx.service.Start(ctx, "")
	require.NoError(t, err)
	require.NoError(t, fx.service.Close(ctx, view.SessionID))

	_, err = fx.service.Get(ctx, view.SessionID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceSaveFailures(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	store := &flakyStore{MemoryStore: fx.store}
	service := NewService(store, fx.service.Engines(), fx.tokens, fx.metrics, zerolog.New(io.Discard))

	store.saveErr = errors.New("disk full")
	_, _, err := service.Start(ctx, "")
	require.Error(t, err)
	assert.Equal(t, 0, fx.store.Len(), "failed start leaves nothing behind")
	assert.Equal(t, 0.0, testutil.ToFloat64(fx.metrics.SessionsStarted.WithLabelValues(recommend.RuleSetClassic)))

	store.saveErr = nil
	view, _, err := service.Start(ctx, "")
	require.NoError(t, err)

	store.saveErr = errors.New("disk full")
	_, err = service.Answer(ctx, view.SessionID, "Male")
	require.Error(t, err)
	assert.Equal(t, 0.0, testutil.ToFloat64(fx.metrics.SessionsCompleted.WithLabelValues(recommend.RuleSetClassic, "Male")))

	got, err := service.Get(ctx, view.SessionID)
	require.NoError(t, err)
	assert.Equal(t, quiz.StateAskingSex, got.State)

	store.saveErr = nil
	_, err = service.Answer(ctx, view.SessionID, "Male")
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(fx.metrics.SessionsCompleted.WithLabelValues(recommend.RuleSetClassic, "Male")))
}
