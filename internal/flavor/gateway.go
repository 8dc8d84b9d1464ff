package flavor

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/nirbachon-chaos/internal/config"
	"github.com/vovakirdan/nirbachon-chaos/internal/game"
	"github.com/vovakirdan/nirbachon-chaos/internal/storage"
)

// CandidateActor is the description key used for unknown actors.
const CandidateActor = game.CandidateActor

// GatewayOptions configures a Gateway.
type GatewayOptions struct {
	Provider Provider
	Config   config.FlavorConfig
	Journal  Journal     // nil disables journaling
	Logger   *log.Logger // nil discards logs
}

// Gateway adapts a Provider to game.FlavorSource. It bounds every call
// with a timeout, substitutes fixed fallbacks for failures and empty
// results, and journals lines that were actually generated.
type Gateway struct {
	provider  Provider
	journal   Journal
	logger    *log.Logger
	timeout   time.Duration
	subject   string
	actors    map[string]string
	fallbacks config.FallbackConfig
}

var _ game.FlavorSource = (*Gateway)(nil)

// NewGateway creates a gateway around opts.Provider.
func NewGateway(opts GatewayOptions) *Gateway {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	timeout := opts.Config.Timeout
	if timeout <= 0 {
		timeout = game.DefaultFlavorTimeout
	}

	return &Gateway{
		provider:  opts.Provider,
		journal:   opts.Journal,
		logger:    logger.WithPrefix("flavor"),
		timeout:   timeout,
		subject:   opts.Config.NewsSubject,
		actors:    opts.Config.Actors,
		fallbacks: opts.Config.Fallbacks,
	}
}

// ProviderName returns the name of the wrapped provider.
func (g *Gateway) ProviderName() string {
	return g.provider.Name()
}

// DescribeActor returns the prompt description for an actor. Unknown
// actors, including character ids, are described as the candidate.
func (g *Gateway) DescribeActor(actorID string) string {
	if d, ok := g.actors[actorID]; ok && d != "" {
		return d
	}
	return g.actors[CandidateActor]
}

// News returns a headline about characterName for eventID.
func (g *Gateway) News(ctx context.Context, characterName, eventID string) string {
	subject := characterName
	if subject == "" {
		subject = g.subject
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.provider.News(ctx, NewsRequest{Subject: subject, EventID: eventID})
	if err != nil {
		g.logger.Warn("news generation failed", "provider", g.provider.Name(), "event", eventID, "err", err)
		return g.fallbacks.NewsError
	}
	text = strings.TrimSpace(text)
	if text == "" {
		g.logger.Debug("empty news response", "provider", g.provider.Name(), "event", eventID)
		return g.fallbacks.NewsEmpty
	}

	g.record(ctx, storage.Line{Kind: storage.KindNews, ActionID: eventID, Subject: subject, Text: text})
	return text
}

// Dialogue returns a line spoken by actorID about actionID.
func (g *Gateway) Dialogue(ctx context.Context, actorID, actionID string) string {
	if actorID == "" {
		actorID = CandidateActor
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.provider.Dialogue(ctx, DialogueRequest{
		ActorID:          actorID,
		ActorDescription: g.DescribeActor(actorID),
		ActionID:         actionID,
	})
	if err != nil {
		g.logger.Warn("dialogue generation failed", "provider", g.provider.Name(), "actor", actorID, "action", actionID, "err", err)
		return g.fallbacks.DialogueError
	}
	text = strings.TrimSpace(text)
	if text == "" {
		g.logger.Debug("empty dialogue response", "provider", g.provider.Name(), "actor", actorID)
		return g.fallbacks.DialogueEmpty
	}

	g.record(ctx, storage.Line{Kind: storage.KindDialogue, ActorID: actorID, ActionID: actionID, Text: text})
	return text
}

func (g *Gateway) record(ctx context.Context, l storage.Line) {
	if g.journal == nil {
		return
	}
	if id, ok := game.RunIDFromContext(ctx); ok {
		l.RunID = id.String()
	}
	if _, err := g.journal.SaveLine(l); err != nil {
		g.logger.Warn("cannot journal line", "kind", l.Kind, "err", err)
	}
}
