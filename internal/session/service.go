package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/bc-quiz/internal/metrics"
	"github.com/gokatarajesh/bc-quiz/internal/quiz"
	"github.com/gokatarajesh/bc-quiz/internal/recommend"
)

// Service runs quiz flows for remote display clients. Each mutation loads
// the snapshot under the session lock, applies one flow operation and saves
// it back.
type Service struct {
	store   Store
	engines *recommend.Engines
	tokens  *TokenManager
	metrics *metrics.Quiz
	logger  zerolog.Logger
}

// NewService wires a session service.
func NewService(store Store, engines *recommend.Engines, tokens *TokenManager, m *metrics.Quiz, logger zerolog.Logger) *Service {
	if m == nil {
		m = metrics.NewQuiz(nil)
	}
	return &Service{
		store:   store,
		engines: engines,
		tokens:  tokens,
		metrics: m,
		logger:  logger.With().Str("component", "session_service").Logger(),
	}
}

// Engines exposes the rule-set engines for read-only endpoints.
func (s *Service) Engines() *recommend.Engines {
	return s.engines
}

// Tokens exposes the token manager to transport handlers.
func (s *Service) Tokens() *TokenManager {
	return s.tokens
}

// Start creates a fresh session. An empty ruleSet selects the default.
func (s *Service) Start(ctx context.Context, ruleSet string) (*View, string, error) {
	engine, err := s.engines.Get(ruleSet)
	if err != nil {
		return nil, "", err
	}
	id := uuid.New()
	flow := quiz.NewFlow(engine)

	token, err := s.tokens.Issue(id, engine.RuleSet().Name)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	if err := s.store.Save(ctx, id, flow.Snapshot()); err != nil {
		return nil, "", fmt.Errorf("save new session: %w", err)
	}

	s.metrics.Started(engine.RuleSet().Name)
	s.logger.Info().Str("session_id", id.String()).Str("rule_set", engine.RuleSet().Name).Msg("session started")
	return newView(id, flow), token, nil
}

// Get renders the current view without changing state.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*View, error) {
	flow, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return newView(id, flow), nil
}

// Answer forwards one display-layer answer to the flow. Completion is
// recorded only after the finished snapshot is saved.
func (s *Service) Answer(ctx context.Context, id uuid.UUID, raw string) (*View, error) {
	var finished *recommend.Result
	view, err := s.mutate(ctx, id, func(flow *quiz.Flow) error {
		ruleSet := flow.Engine().RuleSet().Name
		if err := flow.Submit(raw); err != nil {
			s.metrics.Answered(ruleSet, false)
			return err
		}
		s.metrics.Answered(ruleSet, true)
		if res, err := flow.Result(); err == nil {
			finished = &res
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if finished != nil {
		s.metrics.Completed(finished.RuleSet, string(finished.Sex), finished.Suggested)
		s.logger.Info().
			Str("session_id", id.String()).
			Str("rule_set", finished.RuleSet).
			Int("suggested", len(finished.Suggested)).
			Msg("quiz finished")
	}
	return view, nil
}

// Restart resets the flow to its creation state.
func (s *Service) Restart(ctx context.Context, id uuid.UUID) (*View, error) {
	return s.mutate(ctx, id, func(flow *quiz.Flow) error {
		flow.Reset()
		s.logger.Debug().Str("session_id", id.String()).Msg("quiz restarted")
		return nil
	})
}

// Close discards the session.
func (s *Service) Close(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.logger.Info().Str("session_id", id.String()).Msg("session closed")
	return nil
}

func (s *Service) mutate(ctx context.Context, id uuid.UUID, apply func(*quiz.Flow) error) (*View, error) {
	unlock, err := s.store.Lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := unlock(); err != nil {
			s.logger.Warn().Err(err).Str("session_id", id.String()).Msg("session unlock failed")
		}
	}()

	flow, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(flow); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, id, flow.Snapshot()); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	s.logger.Debug().
		Str("session_id", id.String()).
		Str("state", string(flow.State())).
		Int("step", flow.Step()).
		Msg("flow advanced")
	return newView(id, flow), nil
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*quiz.Flow, error) {
	snap, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	engine, err := s.engines.Get(snap.RuleSet)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	flow, err := quiz.Restore(engine, snap)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", id.String()).Msg("stored snapshot rejected")
		return nil, err
	}
	return flow, nil
}
