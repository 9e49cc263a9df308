package conversation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/liamcoop/erpassistant/intent"
	"github.com/liamcoop/erpassistant/internal/logger"
	"github.com/liamcoop/erpassistant/render"
	"github.com/liamcoop/erpassistant/response"
)

// ErrEmptyUtterance is returned for input that is empty after trimming.
// Such input is ignored and leaves the context unchanged.
var ErrEmptyUtterance = errors.New("empty utterance")

const (
	// DefaultDelay is the simulated thinking time before a reply
	DefaultDelay = 1500 * time.Millisecond

	defaultSlowTurn = 250 * time.Millisecond
)

// Turn is the outcome of one user utterance
type Turn struct {
	Query        string            `json:"query"`
	Intent       intent.Intent     `json:"intent"`
	Response     response.Response `json:"-"`
	Message      string            `json:"message"` // HTML markup
	QuickReplies []string          `json:"quickReplies"`
	Duration     time.Duration     `json:"-"` // classification and generation, without the delay
}

// Observer is notified after every completed turn
type Observer interface {
	ObserveTurn(t Turn)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(t Turn)

// ObserveTurn calls f(t)
func (f ObserverFunc) ObserveTurn(t Turn) { f(t) }

// Assistant answers utterances by classifying and generating a reply
type Assistant struct {
	classifier *intent.Classifier
	generator  *response.Generator
	delay      time.Duration
	slowTurn   time.Duration
	observers  []Observer
}

// Option configures an Assistant
type Option func(*Assistant)

// WithDelay sets the simulated delay before each reply. Zero disables it.
func WithDelay(d time.Duration) Option {
	return func(a *Assistant) {
		a.delay = d
	}
}

// WithObserver registers an observer of completed turns
func WithObserver(o Observer) Option {
	return func(a *Assistant) {
		a.observers = append(a.observers, o)
	}
}

// WithSlowTurnThreshold sets the processing time above which a turn is counted as slow
func WithSlowTurnThreshold(d time.Duration) Option {
	return func(a *Assistant) {
		a.slowTurn = d
	}
}

// NewAssistant creates an assistant with the default delay
func NewAssistant(classifier *intent.Classifier, generator *response.Generator, opts ...Option) *Assistant {
	a := &Assistant{
		classifier: classifier,
		generator:  generator,
		delay:      DefaultDelay,
		slowTurn:   defaultSlowTurn,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Classifier returns the classifier used by the assistant
func (a *Assistant) Classifier() *intent.Classifier {
	return a.classifier
}

// Welcome returns the opening message of a conversation
func (a *Assistant) Welcome() Turn {
	resp := a.generator.Welcome()
	return Turn{
		Response:     resp,
		Message:      render.HTML(resp.Document),
		QuickReplies: resp.QuickReplies,
	}
}

// Respond handles one utterance against cc and returns the turn with the
// updated context. The query enters the history before the delay; if ctx is
// cancelled during the delay the returned context keeps it, with no reply.
func (a *Assistant) Respond(ctx context.Context, cc Context, raw string) (Turn, Context, error) {
	if strings.TrimSpace(raw) == "" {
		return Turn{}, cc, ErrEmptyUtterance
	}

	cc = cc.Remember(raw)

	if err := a.wait(ctx); err != nil {
		return Turn{}, cc, err
	}

	start := time.Now()
	in := a.classifier.Classify(raw)
	resp := a.generator.Generate(in)

	turn := Turn{
		Query:        raw,
		Intent:       in,
		Response:     resp,
		Message:      render.HTML(resp.Document),
		QuickReplies: resp.QuickReplies,
		Duration:     time.Since(start),
	}

	if turn.Duration > a.slowTurn {
		logger.WarnSlowTurn()
		logger.Warn("slow turn", "intent", in.Tag, "duration", turn.Duration)
	}
	logger.Debug("turn handled", "intent", in.Tag, "duration", turn.Duration)

	for _, o := range a.observers {
		o.ObserveTurn(turn)
	}

	return turn, cc.WithTurn(in.Tag, raw), nil
}

func (a *Assistant) wait(ctx context.Context) error {
	if a.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(a.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
