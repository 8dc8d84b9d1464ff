// Package offline provides a flavor provider that needs no network. It
// replays lines journaled by earlier online sessions and mixes in the
// canned lines from the configuration.
package offline

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/vovakirdan/nirbachon-chaos/internal/config"
	"github.com/vovakirdan/nirbachon-chaos/internal/flavor"
	"github.com/vovakirdan/nirbachon-chaos/internal/game"
	"github.com/vovakirdan/nirbachon-chaos/internal/registry"
	"github.com/vovakirdan/nirbachon-chaos/internal/storage"
)

// Name is the registry name of this provider.
const Name = "offline"

// replayLimit bounds how many journaled lines are considered per request.
const replayLimit = 50

func init() {
	registry.Register(Name, "canned and previously generated lines, no network", func(env registry.Env) (flavor.Provider, error) {
		var lines flavor.LineSource
		if env.Store != nil {
			lines = env.Store
		}
		return New(env.Config.Offline, lines, env.Seed), nil
	})
}

// Provider picks lines at random from the journal and the canned set.
type Provider struct {
	canned config.OfflineConfig
	lines  flavor.LineSource

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates an offline provider. lines may be nil.
func New(canned config.OfflineConfig, lines flavor.LineSource, seed int64) *Provider {
	return &Provider{
		canned: canned,
		lines:  lines,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Name implements flavor.Provider.
func (p *Provider) Name() string { return Name }

// News implements flavor.Provider. Journaled headlines are only reused
// for the same subject.
func (p *Provider) News(ctx context.Context, req flavor.NewsRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var pool []string
	for _, l := range p.journaled(storage.KindNews, req.EventID) {
		if l.Subject == req.Subject {
			pool = append(pool, l.Text)
		}
	}
	for _, tmpl := range p.canned.News {
		if strings.Contains(tmpl, "%s") {
			pool = append(pool, fmt.Sprintf(tmpl, req.Subject))
		} else {
			pool = append(pool, tmpl)
		}
	}
	return p.pick(pool), nil
}

// Dialogue implements flavor.Provider. Actors without canned lines of
// their own speak the candidate's lines.
func (p *Provider) Dialogue(ctx context.Context, req flavor.DialogueRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var pool []string
	for _, l := range p.journaled(storage.KindDialogue, req.ActionID) {
		if l.ActorID == req.ActorID {
			pool = append(pool, l.Text)
		}
	}
	canned, ok := p.canned.Dialogue[req.ActorID]
	if !ok {
		canned = p.canned.Dialogue[game.CandidateActor]
	}
	pool = append(pool, canned...)
	return p.pick(pool), nil
}

// journaled returns nothing when the journal is missing or unreadable;
// the canned lines are enough to play.
func (p *Provider) journaled(kind storage.Kind, actionID string) []storage.Line {
	if p.lines == nil {
		return nil
	}
	lines, err := p.lines.Lines(kind, actionID, replayLimit)
	if err != nil {
		return nil
	}
	return lines
}

func (p *Provider) pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return pool[p.rng.Intn(len(pool))]
}
