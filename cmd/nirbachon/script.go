package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/nirbachon-chaos/internal/game"
)

// stepKind is the type of a scripted step.
type stepKind int

const (
	stepVote stepKind = iota
	stepAction
	stepWait
)

// step is one parsed script token.
type step struct {
	kind   stepKind
	count  int // votes cast or seconds waited
	action game.ActionID
	actor  string // ally id for npc steps
	token  string
}

// parseScript parses a comma-separated script such as
// "vote*20,promise,stuff,npc:apa,wait*5,fake_news".
func parseScript(script string, roster game.Roster) ([]step, error) {
	var steps []step
	for _, raw := range strings.Split(script, ",") {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}

		name, count, err := splitRepeat(token)
		if err != nil {
			return nil, err
		}

		switch {
		case name == "vote":
			steps = append(steps, step{kind: stepVote, count: count, token: token})
		case name == "wait":
			steps = append(steps, step{kind: stepWait, count: count, token: token})
		case name == "promise":
			steps = appendAction(steps, game.ActionPromise, "", count, token)
		case name == "stuff":
			steps = appendAction(steps, game.ActionBallotStuffing, "", count, token)
		case strings.HasPrefix(name, "npc:"):
			id := strings.TrimPrefix(name, "npc:")
			ally, ok := roster.Ally(id)
			if !ok {
				return nil, fmt.Errorf("script: unknown ally %q", id)
			}
			steps = appendAction(steps, ally.Action, ally.ID, count, token)
		default:
			if _, ok := game.LookupAction(game.ActionID(name)); !ok {
				return nil, fmt.Errorf("script: unknown step %q", token)
			}
			steps = appendAction(steps, game.ActionID(name), "", count, token)
		}
	}
	if len(steps) == 0 {
		return nil, errors.New("script: no steps")
	}
	return steps, nil
}

// splitRepeat splits "name*N" into name and N. A bare name repeats once.
func splitRepeat(token string) (string, int, error) {
	name, rep, found := strings.Cut(token, "*")
	if !found {
		return name, 1, nil
	}
	n, err := strconv.Atoi(rep)
	if err != nil || n <= 0 {
		return "", 0, fmt.Errorf("script: bad repeat count in %q", token)
	}
	return name, n, nil
}

func appendAction(steps []step, id game.ActionID, actor string, count int, token string) []step {
	for i := 0; i < count; i++ {
		steps = append(steps, step{kind: stepAction, action: id, actor: actor, token: token})
	}
	return steps
}

// scriptRunner plays parsed steps against a controller on a manual clock.
type scriptRunner struct {
	ctrl    *game.Controller
	clock   *game.ManualClock
	logger  *log.Logger
	timeout time.Duration // wall-clock bound on a single flavor fetch
}

// run executes steps until the script ends or the run is decided, then
// lets the clock run out if nothing decided it.
func (r *scriptRunner) run(steps []step) error {
	for _, s := range steps {
		if r.ctrl.Phase() != game.PhasePlaying {
			break
		}
		switch s.kind {
		case stepVote:
			for i := 0; i < s.count; i++ {
				if !r.ctrl.ManualVote() {
					break
				}
			}
		case stepWait:
			r.clock.Advance(time.Duration(s.count) * time.Second)
		case stepAction:
			if !r.ctrl.SubmitAction(s.action, s.actor) {
				r.logger.Warn("step rejected", "step", s.token)
				continue
			}
			if err := r.waitIdle(); err != nil {
				return err
			}
		}
	}

	if snap, ok := r.ctrl.Snapshot(); ok && snap.Outcome == game.OutcomeUndetermined {
		r.clock.Advance(time.Duration(snap.TimeLeft)*time.Second + game.CorruptionLossDelay)
	}
	return nil
}

// waitIdle blocks until the outstanding flavor request settles.
func (r *scriptRunner) waitIdle() error {
	deadline := time.After(r.timeout)
	for r.ctrl.Processing() {
		select {
		case _, ok := <-r.ctrl.Changes():
			if !ok {
				return errors.New("script: controller closed")
			}
		case <-deadline:
			return errors.New("script: flavor request did not settle")
		}
	}
	return nil
}
