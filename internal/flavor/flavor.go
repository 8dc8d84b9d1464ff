// Package flavor is the boundary to text generation. Providers produce
// news headlines and dialogue lines; the Gateway wraps a provider so that
// the game always receives a usable string, whatever the provider does.
package flavor

import (
	"context"

	"github.com/vovakirdan/nirbachon-chaos/internal/storage"
)

// NewsRequest asks for a satirical headline.
type NewsRequest struct {
	Subject string // character name the headline is about
	EventID string // action that triggered the headline
}

// DialogueRequest asks for a short in-character line.
type DialogueRequest struct {
	ActorID          string
	ActorDescription string // prompt-ready description of the actor
	ActionID         string
}

// Provider generates flavor text. Errors and empty strings are both
// acceptable results; the Gateway substitutes fallbacks for them.
type Provider interface {
	Name() string
	News(ctx context.Context, req NewsRequest) (string, error)
	Dialogue(ctx context.Context, req DialogueRequest) (string, error)
}

// Journal records generated lines.
type Journal interface {
	SaveLine(l storage.Line) (int64, error)
}

// LineSource reads journaled lines back.
type LineSource interface {
	Lines(kind storage.Kind, actionID string, limit int) ([]storage.Line, error)
}
