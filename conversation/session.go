package conversation

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTurnInProgress is returned by TrySubmit while another turn is running
var ErrTurnInProgress = errors.New("a turn is already in progress")

// Session is one conversation. At most one turn runs at a time; waiting
// turns are admitted one by one.
type Session struct {
	ID        string
	CreatedAt time.Time

	assistant *Assistant
	turn      chan struct{} // holds a token while a turn is in flight

	mu         sync.RWMutex
	context    Context
	lastActive time.Time
}

// NewSession creates an empty conversation
func NewSession(id string, assistant *Assistant) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		CreatedAt:  now,
		assistant:  assistant,
		turn:       make(chan struct{}, 1),
		lastActive: now,
	}
}

// Submit waits for any running turn to finish, then handles raw.
// It gives up when ctx is done before the turn starts.
func (s *Session) Submit(ctx context.Context, raw string) (Turn, error) {
	select {
	case s.turn <- struct{}{}:
	case <-ctx.Done():
		return Turn{}, ctx.Err()
	}
	defer func() { <-s.turn }()

	return s.run(ctx, raw)
}

// TrySubmit handles raw only if no other turn is running
func (s *Session) TrySubmit(ctx context.Context, raw string) (Turn, error) {
	select {
	case s.turn <- struct{}{}:
	default:
		return Turn{}, ErrTurnInProgress
	}
	defer func() { <-s.turn }()

	return s.run(ctx, raw)
}

func (s *Session) run(ctx context.Context, raw string) (Turn, error) {
	turn, next, err := s.assistant.Respond(ctx, s.Context(), raw)

	s.mu.Lock()
	s.context = next
	s.lastActive = time.Now()
	s.mu.Unlock()

	return turn, err
}

// Context returns a copy of the conversation context
func (s *Session) Context() Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.context.Clone()
}

// LastActive returns when the session last handled an utterance
func (s *Session) LastActive() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActive
}

// Welcome returns the opening message
func (s *Session) Welcome() Turn {
	return s.assistant.Welcome()
}
