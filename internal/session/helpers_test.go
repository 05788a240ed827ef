package session

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/bc-quiz/internal/catalog"
	"github.com/gokatarajesh/bc-quiz/internal/metrics"
	"github.com/gokatarajesh/bc-quiz/internal/quiz"
	"github.com/gokatarajesh/bc-quiz/internal/recommend"
)

type fixture struct {
	service *Service
	store   *MemoryStore
	tokens  *TokenManager
	metrics *metrics.Quiz
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	engines, err := recommend.NewEngines(catalog.Default(), recommend.RuleSetClassic)
	require.NoError(t, err)

	store := NewMemoryStore(time.Hour)
	tokens := NewTokenManager(TokenConfig{Secret: []byte("test-secret")})
	m := metrics.NewQuiz(nil)
	logger := zerolog.New(io.Discard)

	return fixture{
		service: NewService(store, engines, tokens, m, logger),
		store:   store,
		tokens:  tokens,
		metrics: m,
	}
}

// flakyStore fails Save while saveErr is set.
type flakyStore struct {
	*MemoryStore
	saveErr error
}

func (s *flakyStore) Save(ctx context.Context, id uuid.UUID, snap quiz.Snapshot) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	return s.MemoryStore.Save(ctx, id, snap)
}
