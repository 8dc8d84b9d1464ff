package game

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// DefaultFlavorTimeout bounds a single flavor-text request.
const DefaultFlavorTimeout = 10 * time.Second

// CandidateActor is the dialogue actor used when neither an ally nor a
// character id is available.
const CandidateActor = "candidate"

// FlavorSource supplies display strings for news and dialogue.
// Implementations always return a usable string; failures are handled on
// their side of the boundary and never reach the game state.
type FlavorSource interface {
	News(ctx context.Context, characterName, eventID string) string
	Dialogue(ctx context.Context, actorID, actionID string) string
}

type runIDKey struct{}

// ContextWithRunID attaches a run id to ctx. Flavor requests carry the id
// of the run that issued them.
func ContextWithRunID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunIDFromContext returns the run id attached by ContextWithRunID.
func RunIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(runIDKey{}).(uuid.UUID)
	return id, ok
}

// Notices are cosmetic headlines pushed when a run is about to be lost.
type Notices struct {
	Corruption string
	Timeout    string
}

// Options configures a Controller.
type Options struct {
	Roster        Roster
	Start         StartValues
	Notices       Notices
	Flavor        FlavorSource  // nil disables flavor text
	Clock         Clock         // nil uses RealClock
	Logger        *log.Logger   // nil discards logs
	FlavorTimeout time.Duration // zero uses DefaultFlavorTimeout
}

// Status is a consistent read-only view of the controller for display.
type Status struct {
	Phase        Phase
	Character    Character
	HasCharacter bool
	Run          Snapshot
	HasRun       bool
	RunID        uuid.UUID
	Dialogue     string
	Processing   bool
	LossPending  bool
}

// Controller is the phase state machine. It owns the run state, the
// countdown ticker and the delayed corruption loss, and serializes every
// mutation behind one lock: clicks, ticks, resolved actions and flavor
// completions never interleave.
//
// Commands report false when they are not applicable in the current
// phase; rejected commands have no effect.
type Controller struct {
	mu sync.Mutex

	roster        Roster
	start         StartValues
	notices       Notices
	flavor        FlavorSource
	clock         Clock
	logger        *log.Logger
	flavorTimeout time.Duration

	phase    Phase
	selected *Character
	run      *RunState
	runID    uuid.UUID
	dialogue string

	timer       *TimerDriver
	pendingLoss Timer
	lossGen     uint64

	// Re-entrancy guard for actions. requestGen identifies the request
	// that owns the guard so a stale settle cannot clear a newer one.
	processing   bool
	requestGen   uint64
	cancelFlavor context.CancelFunc

	closed  bool
	changes chan struct{}
}

// NewController creates a controller in the lobby.
func NewController(opts Options) (*Controller, error) {
	if err := opts.Roster.Validate(); err != nil {
		return nil, err
	}
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.FlavorTimeout <= 0 {
		opts.FlavorTimeout = DefaultFlavorTimeout
	}

	return &Controller{
		roster:        opts.Roster,
		start:         opts.Start,
		notices:       opts.Notices,
		flavor:        opts.Flavor,
		clock:         opts.Clock,
		logger:        opts.Logger,
		flavorTimeout: opts.FlavorTimeout,
		phase:         PhaseLobby,
		timer:         NewTimerDriver(opts.Clock),
		changes:       make(chan struct{}, 1),
	}, nil
}

// Changes returns a channel signalled after every observable change.
// Signals coalesce; readers should re-read Status. The channel is closed by Close.
func (c *Controller) Changes() <-chan struct{} {
	return c.changes
}

// notifyLocked signals a change without blocking.
func (c *Controller) notifyLocked() {
	if c.closed {
		return
	}
	select {
	case c.changes <- struct{}{}:
	default:
	}
}

// Roster returns the characters and allies available to this controller.
func (c *Controller) Roster() Roster {
	return c.roster
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Selected returns the chosen character, if any.
func (c *Controller) Selected() (Character, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return Character{}, false
	}
	return *c.selected, true
}

// Snapshot returns a copy of the current run, if one exists.
func (c *Controller) Snapshot() (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.run == nil {
		return Snapshot{}, false
	}
	return c.run.Snapshot(), true
}

// Processing reports whether an action's flavor request is in flight.
func (c *Controller) Processing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.processing
}

// TimerRunning reports whether the countdown ticker is active.
func (c *Controller) TimerRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer.Running()
}

// Status returns everything the presentation layer needs in one read.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := Status{
		Phase:       c.phase,
		RunID:       c.runID,
		Dialogue:    c.dialogue,
		Processing:  c.processing,
		LossPending: c.pendingLoss != nil,
	}
	if c.selected != nil {
		st.Character = *c.selected
		st.HasCharacter = true
	}
	if c.run != nil {
		st.Run = c.run.Snapshot()
		st.HasRun = true
	}
	return st
}

// OpenCharacterSelect moves from the lobby to character selection.
func (c *Controller) OpenCharacterSelect() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.phase != PhaseLobby {
		return false
	}
	c.phase = PhaseCharacterSelect
	c.notifyLocked()
	return true
}

// SelectCharacter chooses the character for the next run.
func (c *Controller) SelectCharacter(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.phase != PhaseCharacterSelect {
		return false
	}
	ch, ok := c.roster.Character(id)
	if !ok {
		return false
	}
	c.selected = &ch
	c.notifyLocked()
	return true
}

// StartRun begins a run with the selected character. Any ticker or delayed
// loss left from earlier is stopped before the new state is built.
func (c *Controller) StartRun() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.selected == nil || !c.phase.CanTransitionTo(PhasePlaying) {
		return false
	}
	c.haltLocked()

	c.run = NewRunState(*c.selected, c.start)
	if c.start.RunStartNews != "" {
		c.run.PushNews(fmt.Sprintf(c.start.RunStartNews, c.selected.Name))
	}
	c.runID = uuid.New()
	c.dialogue = c.start.OpeningDialogue
	c.phase = PhasePlaying
	c.timer.Start(c.tick)

	c.logger.Info("run started", "run", c.runID, "character", c.selected.ID)
	c.notifyLocked()
	return true
}

// ManualVote adds one click worth of votes.
func (c *Controller) ManualVote() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.acceptingLocked() {
		return false
	}
	c.run.AddVotes(ManualVoteIncrement)
	c.evaluateLocked()
	c.notifyLocked()
	return true
}

// SubmitAction resolves a catalog action. The numeric effect is applied
// immediately; dialogue and news are fetched in the background and only
// touch display fields. While that fetch is outstanding further actions
// are rejected. actorID names the ally brokering the action; when empty
// the selected character speaks.
func (c *Controller) SubmitAction(id ActionID, actorID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.acceptingLocked() || c.processing {
		return false
	}
	if _, ok := LookupAction(id); !ok {
		return false
	}

	c.processing = true
	c.requestGen++
	reqGen := c.requestGen

	var ctx context.Context
	var cancel context.CancelFunc
	if c.flavor != nil {
		ctx, cancel = context.WithTimeout(ContextWithRunID(context.Background(), c.runID), c.flavorTimeout)
		c.cancelFlavor = cancel
	}

	ApplyAction(c.run, id)
	c.logger.Debug("action resolved", "run", c.runID, "action", id, "actor", actorID)
	c.evaluateLocked()

	if c.flavor == nil {
		c.processing = false
		c.notifyLocked()
		return true
	}

	actor := actorID
	if actor == "" {
		actor = c.selected.ID
	}
	if actor == "" {
		actor = CandidateActor
	}
	go c.fetchFlavor(ctx, cancel, reqGen, c.runID, actor, id, c.selected.Name)

	c.notifyLocked()
	return true
}

// fetchFlavor runs outside the lock. Whatever happens, settle clears the
// guard for this request exactly once.
func (c *Controller) fetchFlavor(ctx context.Context, cancel context.CancelFunc, reqGen uint64, runID uuid.UUID, actor string, action ActionID, characterName string) {
	defer cancel()
	defer c.settle(reqGen)

	line := c.flavor.Dialogue(ctx, actor, string(action))
	c.mu.Lock()
	if !c.closed && c.runID == runID && c.run != nil && !c.run.Terminal() {
		c.dialogue = line
		c.notifyLocked()
	}
	c.mu.Unlock()

	headline := c.flavor.News(ctx, characterName, string(action))
	c.mu.Lock()
	if !c.closed && c.runID == runID && c.run != nil {
		c.run.PushNews(headline) // no-op once the outcome is decided
		c.notifyLocked()
	}
	c.mu.Unlock()
}

func (c *Controller) settle(reqGen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.processing || c.requestGen != reqGen {
		return
	}
	c.processing = false
	c.cancelFlavor = nil
	c.notifyLocked()
}

// tick is the countdown callback. Ticks from a stopped ticker are dropped.
func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.timer.Current(gen) || !c.acceptingLocked() {
		return
	}
	c.run.SetTimeLeft(c.run.TimeLeft() - 1)
	c.evaluateLocked()
	c.notifyLocked()
}

// ResetToLobby abandons the current run or leaves the game-over screen.
// Timers, the delayed loss and any flavor request are cancelled first.
func (c *Controller) ResetToLobby() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	c.haltLocked()
	if c.run != nil && !c.run.Terminal() {
		c.logger.Info("run abandoned", "run", c.runID)
	}
	c.run = nil
	c.selected = nil
	c.runID = uuid.Nil
	c.dialogue = ""
	c.phase = PhaseLobby
	c.notifyLocked()
	return true
}

// Close tears the controller down. No ticks or delayed transitions are
// observable afterwards and every command is rejected.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.haltLocked()
	c.closed = true
	close(c.changes)
}

func (c *Controller) acceptingLocked() bool {
	return !c.closed && c.phase == PhasePlaying && c.run != nil && !c.run.Terminal()
}

// evaluateLocked consults Evaluate after a mutation and acts on the verdict.
func (c *Controller) evaluateLocked() {
	if c.phase != PhasePlaying || c.run == nil || c.run.Terminal() {
		return
	}

	verdict := Evaluate(c.run)
	if verdict != VerdictCorruptionLoss {
		c.cancelPendingLossLocked()
	}

	switch verdict {
	case VerdictWin:
		c.finishLocked(OutcomeWon, CauseNone)
	case VerdictCorruptionLoss:
		c.scheduleCorruptionLossLocked()
	case VerdictTimeoutLoss:
		c.run.PushNews(c.notices.Timeout)
		c.finishLocked(OutcomeLost, CauseTimeout)
	}
}

func (c *Controller) scheduleCorruptionLossLocked() {
	if c.pendingLoss != nil {
		return
	}
	c.run.PushNews(c.notices.Corruption)
	c.lossGen++
	gen := c.lossGen
	c.pendingLoss = c.clock.After(CorruptionLossDelay, func() {
		c.commitCorruptionLoss(gen)
	})
	c.logger.Debug("corruption loss scheduled", "run", c.runID, "delay", CorruptionLossDelay)
}

func (c *Controller) commitCorruptionLoss(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pendingLoss == nil || gen != c.lossGen {
		return
	}
	c.pendingLoss = nil
	if !c.acceptingLocked() || c.run.Corruption() < MeterMax {
		return
	}
	c.finishLocked(OutcomeLost, CauseCorruption)
	c.notifyLocked()
}

func (c *Controller) cancelPendingLossLocked() {
	if c.pendingLoss == nil {
		return
	}
	c.pendingLoss.Stop()
	c.pendingLoss = nil
	c.lossGen++
	c.logger.Debug("corruption loss cancelled", "run", c.runID)
}

// stopTimersLocked is the single place where run timers are released.
func (c *Controller) stopTimersLocked() {
	c.timer.Stop()
	c.cancelPendingLossLocked()
}

// haltLocked stops timers and drops any in-flight flavor request.
func (c *Controller) haltLocked() {
	c.stopTimersLocked()
	if c.cancelFlavor != nil {
		c.cancelFlavor()
		c.cancelFlavor = nil
	}
	c.processing = false
	c.requestGen++
}

func (c *Controller) finishLocked(o Outcome, cause LossCause) {
	if !c.run.conclude(o, cause) {
		return
	}
	c.stopTimersLocked()
	if c.cancelFlavor != nil {
		c.cancelFlavor()
	}
	c.phase = PhaseGameOver

	snap := c.run.Snapshot()
	c.logger.Info("run finished",
		"run", c.runID,
		"outcome", o,
		"cause", cause,
		"votes", snap.TotalVotes(),
		"time_left", snap.TimeLeft,
	)
}
