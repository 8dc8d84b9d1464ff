package game

import (
	"context"
	"sync"
	"testing"
	"time"
)

var testNotices = Notices{Corruption: "corruption notice", Timeout: "timeout notice"}

func testRoster() Roster {
	return Roster{
		Characters: []Character{
			{ID: "paddy", Name: "Paddy", InitialCorruption: 30, InitialInfluence: 80},
			{ID: "dirty", Name: "Dirty", InitialCorruption: 80, InitialInfluence: 20},
		},
		Allies: []Ally{
			{ID: "apa", Name: "Apa", Action: ActionJulyCard},
		},
	}
}

func newTestController(t *testing.T, flavor FlavorSource) (*Controller, *ManualClock) {
	t.Helper()
	clock := NewManualClock()
	c, err := NewController(Options{
		Roster:  testRoster(),
		Start:   DefaultStartValues(),
		Notices: testNotices,
		Flavor:  flavor,
		Clock:   clock,
	})
	if err != nil {
		t.Fatalf("NewController() error = %v", err)
	}
	t.Cleanup(c.Close)
	return c, clock
}

func startRun(t *testing.T, c *Controller, id string) {
	t.Helper()
	if !c.OpenCharacterSelect() {
		t.Fatal("OpenCharacterSelect() = false")
	}
	if !c.SelectCharacter(id) {
		t.Fatalf("SelectCharacter(%q) = false", id)
	}
	if !c.StartRun() {
		t.Fatal("StartRun() = false")
	}
}

func mustSnapshot(t *testing.T, c *Controller) Snapshot {
	t.Helper()
	s, ok := c.Snapshot()
	if !ok {
		t.Fatal("Snapshot() reported no run")
	}
	return s
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

// blockingFlavor holds every dialogue request until released or cancelled.
type blockingFlavor struct {
	release chan struct{}

	mu      sync.Mutex
	actors  []string
	events  []string
	aborted int
}

func newBlockingFlavor() *blockingFlavor {
	return &blockingFlavor{release: make(chan struct{})}
}

func (f *blockingFlavor) Dialogue(ctx context.Context, actorID, actionID string) string {
	f.mu.Lock()
	f.actors = append(f.actors, actorID)
	f.mu.Unlock()

	select {
	case <-f.release:
		return "line:" + actorID
	case <-ctx.Done():
		f.mu.Lock()
		f.aborted++
		f.mu.Unlock()
		return "fallback"
	}
}

func (f *blockingFlavor) News(ctx context.Context, characterName, eventID string) string {
	f.mu.Lock()
	f.events = append(f.events, eventID)
	f.mu.Unlock()
	return "news:" + eventID
}

func (f *blockingFlavor) lastActor() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.actors) == 0 {
		return ""
	}
	return f.actors[len(f.actors)-1]
}

func TestNewControllerRejectsEmptyRoster(t *testing.T) {
	if _, err := NewController(Options{}); err == nil {
		t.Error("NewController() with empty roster: expected error")
	}
}

func TestControllerPhaseFlow(t *testing.T) {
	c, clock := newTestController(t, nil)

	if c.Phase() != PhaseLobby {
		t.Fatalf("Phase() = %v, expected lobby", c.Phase())
	}
	if c.StartRun() {
		t.Error("StartRun() from lobby = true")
	}
	if c.SelectCharacter("paddy") {
		t.Error("SelectCharacter() from lobby = true")
	}

	c.OpenCharacterSelect()
	if c.StartRun() {
		t.Error("StartRun() without a character = true")
	}
	if c.SelectCharacter("nobody") {
		t.Error("SelectCharacter(unknown) = true")
	}
	c.SelectCharacter("paddy")
	if !c.StartRun() {
		t.Fatal("StartRun() = false")
	}

	st := c.Status()
	if st.Phase != PhasePlaying {
		t.Errorf("Phase = %v, expected playing", st.Phase)
	}
	if st.Character.ID != "paddy" {
		t.Errorf("Character = %q, expected paddy", st.Character.ID)
	}
	if st.Run.Money != 5000 || st.Run.Corruption != 30 || st.Run.Support != 80 || st.Run.Day != 1 || st.Run.TimeLeft != 90 {
		t.Errorf("initial run = %+v", st.Run)
	}
	if len(st.Run.News) != 2 || st.Run.News[1] != DefaultStartValues().OpeningNews {
		t.Errorf("News = %v, expected run start news above opening news", st.Run.News)
	}
	if st.Dialogue != DefaultStartValues().OpeningDialogue {
		t.Errorf("Dialogue = %q, expected opening dialogue", st.Dialogue)
	}
	if st.RunID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("RunID not assigned")
	}
	if clock.Active() != 1 {
		t.Errorf("Active() = %d, expected one ticker", clock.Active())
	}
	if c.StartRun() {
		t.Error("StartRun() while playing = true")
	}
}

func TestManualVote(t *testing.T) {
	c, _ := newTestController(t, nil)
	if c.ManualVote() {
		t.Error("ManualVote() in lobby = true")
	}
	startRun(t, c, "paddy")

	for i := 0; i < 3; i++ {
		if !c.ManualVote() {
			t.Fatalf("ManualVote() #%d = false", i)
		}
	}
	s := mustSnapshot(t, c)
	if s.Votes != 3*ManualVoteIncrement {
		t.Errorf("Votes = %d, expected %d", s.Votes, 3*ManualVoteIncrement)
	}
	if s.Day != 1 {
		t.Errorf("Day = %d, manual votes must not advance the day", s.Day)
	}
}

func TestTickCountsDown(t *testing.T) {
	c, clock := newTestController(t, nil)
	startRun(t, c, "paddy")

	clock.Advance(10 * time.Second)
	if s := mustSnapshot(t, c); s.TimeLeft != 80 {
		t.Errorf("TimeLeft = %d, expected 80", s.TimeLeft)
	}
}

func TestTimeoutLossIsImmediate(t *testing.T) {
	c, clock := newTestController(t, nil)
	startRun(t, c, "paddy")

	clock.Advance(RunDuration * time.Second)

	st := c.Status()
	if st.Phase != PhaseGameOver {
		t.Fatalf("Phase = %v, expected game-over", st.Phase)
	}
	if st.Run.Outcome != OutcomeLost || st.Run.Cause != CauseTimeout {
		t.Errorf("outcome = (%v, %v), expected (lost, timeout)", st.Run.Outcome, st.Run.Cause)
	}
	if st.Run.TimeLeft != 0 {
		t.Errorf("TimeLeft = %d, expected 0", st.Run.TimeLeft)
	}
	if st.Run.News[0] != testNotices.Timeout {
		t.Errorf("News[0] = %q, expected timeout notice", st.Run.News[0])
	}
	if clock.Active() != 0 {
		t.Errorf("Active() = %d, expected no timers after the run ends", clock.Active())
	}
	if c.TimerRunning() {
		t.Error("TimerRunning() = true after game over")
	}
}

func TestTerminalRunRejectsCommands(t *testing.T) {
	c, clock := newTestController(t, nil)
	startRun(t, c, "paddy")
	clock.Advance(RunDuration * time.Second)
	before := mustSnapshot(t, c)

	if c.ManualVote() {
		t.Error("ManualVote() after game over = true")
	}
	if c.SubmitAction(ActionPromise, "") {
		t.Error("SubmitAction() after game over = true")
	}
	clock.Advance(30 * time.Second)

	after := mustSnapshot(t, c)
	if after.TotalVotes() != before.TotalVotes() || after.Day != before.Day || after.TimeLeft != before.TimeLeft {
		t.Errorf("terminal run changed: before %+v, after %+v", before, after)
	}
}

func TestWinTakesPrecedenceOverCorruption(t *testing.T) {
	c, clock := newTestController(t, nil)
	startRun(t, c, "dirty")

	for i := 0; i < 300; i++ {
		c.ManualVote()
	}
	if !c.SubmitAction(ActionBallotStuffing, "") {
		t.Fatal("SubmitAction() = false")
	}

	st := c.Status()
	if st.Run.Corruption != 100 {
		t.Errorf("Corruption = %d, expected 100", st.Run.Corruption)
	}
	if st.Run.Outcome != OutcomeWon {
		t.Errorf("Outcome = %v, expected won", st.Run.Outcome)
	}
	if st.LossPending {
		t.Error("LossPending = true after a win")
	}
	if clock.Active() != 0 {
		t.Errorf("Active() = %d, expected 0", clock.Active())
	}
}

func TestCorruptionLossIsDelayed(t *testing.T) {
	c, clock := newTestController(t, nil)
	startRun(t, c, "dirty")

	c.SubmitAction(ActionBallotStuffing, "")

	st := c.Status()
	if st.Phase != PhasePlaying || st.Run.Outcome != OutcomeUndetermined {
		t.Fatalf("run ended immediately: phase %v, outcome %v", st.Phase, st.Run.Outcome)
	}
	if !st.LossPending {
		t.Error("LossPending = false at corruption 100")
	}
	if st.Run.News[0] != testNotices.Corruption {
		t.Errorf("News[0] = %q, expected corruption notice", st.Run.News[0])
	}

	clock.Advance(CorruptionLossDelay - time.Millisecond)
	if c.Phase() != PhasePlaying {
		t.Fatalf("Phase = %v before the delay elapsed", c.Phase())
	}

	clock.Advance(time.Millisecond)
	st = c.Status()
	if st.Run.Outcome != OutcomeLost || st.Run.Cause != CauseCorruption {
		t.Errorf("outcome = (%v, %v), expected (lost, corruption)", st.Run.Outcome, st.Run.Cause)
	}
	if st.Phase != PhaseGameOver {
		t.Errorf("Phase = %v, expected game-over", st.Phase)
	}

	notices := 0
	for _, h := range st.Run.News {
		if h == testNotices.Corruption {
			notices++
		}
	}
	if notices != 1 {
		t.Errorf("corruption notice pushed %d times, expected 1", notices)
	}
}

func TestCorruptionLossAverted(t *testing.T) {
	c, clock := newTestController(t, nil)
	startRun(t, c, "dirty")

	c.SubmitAction(ActionBallotStuffing, "")
	c.SubmitAction(ActionMediation, "")

	st := c.Status()
	if st.LossPending {
		t.Error("LossPending = true after corruption dropped")
	}
	if st.Run.Corruption != 85 {
		t.Errorf("Corruption = %d, expected 85", st.Run.Corruption)
	}

	clock.Advance(2 * CorruptionLossDelay)
	if c.Phase() != PhasePlaying {
		t.Errorf("Phase = %v, expected the run to continue", c.Phase())
	}
}

func TestWinDuringCorruptionPause(t *testing.T) {
	c, clock := newTestController(t, nil)
	startRun(t, c, "dirty")

	c.SubmitAction(ActionBallotStuffing, "")
	for i := 0; i < 274; i++ {
		c.ManualVote()
	}

	if s := mustSnapshot(t, c); s.Outcome != OutcomeWon {
		t.Fatalf("Outcome = %v, expected won (total %d)", s.Outcome, s.TotalVotes())
	}
	clock.Advance(2 * CorruptionLossDelay)
	if s := mustSnapshot(t, c); s.Outcome != OutcomeWon {
		t.Errorf("Outcome = %v after the delay, expected won", s.Outcome)
	}
}

func TestResetCancelsPendingLoss(t *testing.T) {
	c, clock := newTestController(t, nil)
	startRun(t, c, "dirty")
	c.SubmitAction(ActionBallotStuffing, "")

	if !c.ResetToLobby() {
		t.Fatal("ResetToLobby() = false")
	}
	if clock.Active() != 0 {
		t.Errorf("Active() = %d after reset, expected 0", clock.Active())
	}

	clock.Advance(5 * time.Second)
	if c.Phase() != PhaseLobby {
		t.Errorf("Phase = %v, expected lobby", c.Phase())
	}
	if _, ok := c.Snapshot(); ok {
		t.Error("Snapshot() reported a run after reset")
	}
	if _, ok := c.Selected(); ok {
		t.Error("Selected() reported a character after reset")
	}
}

func TestRestartRunsSingleTicker(t *testing.T) {
	c, clock := newTestController(t, nil)
	startRun(t, c, "paddy")
	clock.Advance(3 * time.Second)

	c.ResetToLobby()
	startRun(t, c, "paddy")
	if clock.Active() != 1 {
		t.Errorf("Active() = %d, expected 1", clock.Active())
	}

	clock.Advance(time.Second)
	if s := mustSnapshot(t, c); s.TimeLeft != RunDuration-1 {
		t.Errorf("TimeLeft = %d, expected %d", s.TimeLeft, RunDuration-1)
	}
}

func TestActionReentrancyGuard(t *testing.T) {
	flavor := newBlockingFlavor()
	c, _ := newTestController(t, flavor)
	startRun(t, c, "paddy")

	if !c.SubmitAction(ActionJulyCard, "apa") {
		t.Fatal("SubmitAction() = false")
	}
	first := mustSnapshot(t, c)
	if first.Corruption != 10 || first.Support != 95 || first.Day != 2 {
		t.Errorf("effect not applied synchronously: %+v", first)
	}
	if !c.Processing() {
		t.Error("Processing() = false while flavor is outstanding")
	}

	if c.SubmitAction(ActionPromise, "") {
		t.Error("second SubmitAction() = true while processing")
	}
	if !c.ManualVote() {
		t.Error("ManualVote() = false while processing")
	}
	second := mustSnapshot(t, c)
	if second.Day != first.Day || second.Support != first.Support {
		t.Errorf("rejected action changed state: %+v", second)
	}

	close(flavor.release)
	waitFor(t, "processing to settle", func() bool { return !c.Processing() })

	st := c.Status()
	if st.Dialogue != "line:apa" {
		t.Errorf("Dialogue = %q, expected line:apa", st.Dialogue)
	}
	if st.Run.News[0] != "news:july_card" {
		t.Errorf("News[0] = %q, expected news:july_card", st.Run.News[0])
	}
	if !c.SubmitAction(ActionPromise, "") {
		t.Error("SubmitAction() after settle = false")
	}
	waitFor(t, "second request to settle", func() bool { return !c.Processing() })
	if got := flavor.lastActor(); got != "paddy" {
		t.Errorf("dialogue actor = %q, expected the selected character", got)
	}
}

func TestFlavorAfterGameOverIsDropped(t *testing.T) {
	flavor := newBlockingFlavor()
	c, clock := newTestController(t, flavor)
	startRun(t, c, "paddy")

	c.SubmitAction(ActionPromise, "")
	clock.Advance(RunDuration * time.Second)
	waitFor(t, "processing to settle", func() bool { return !c.Processing() })

	st := c.Status()
	if st.Dialogue != DefaultStartValues().OpeningDialogue {
		t.Errorf("Dialogue = %q, expected it to be unchanged", st.Dialogue)
	}
	if st.Run.News[0] != testNotices.Timeout {
		t.Errorf("News[0] = %q, expected the timeout notice", st.Run.News[0])
	}
	flavor.mu.Lock()
	aborted := flavor.aborted
	flavor.mu.Unlock()
	if aborted != 1 {
		t.Errorf("aborted = %d, expected the request to be cancelled", aborted)
	}
}

func TestResetDuringFlavorRequest(t *testing.T) {
	flavor := newBlockingFlavor()
	c, _ := newTestController(t, flavor)
	startRun(t, c, "paddy")
	c.SubmitAction(ActionPromise, "")

	c.ResetToLobby()
	if c.Processing() {
		t.Error("Processing() = true after reset")
	}
	startRun(t, c, "paddy")
	if !c.SubmitAction(ActionDroneStrike, "") {
		t.Error("SubmitAction() on the new run = false")
	}
	if !c.Processing() {
		t.Error("Processing() = false for the new request")
	}
	close(flavor.release)
	waitFor(t, "processing to settle", func() bool { return !c.Processing() })

	if s := mustSnapshot(t, c); s.Votes != 4000 {
		t.Errorf("Votes = %d, expected only the new run's effect", s.Votes)
	}
}

func TestChangesSignalled(t *testing.T) {
	c, _ := newTestController(t, nil)
	c.OpenCharacterSelect()

	select {
	case <-c.Changes():
	default:
		t.Error("no change signalled after OpenCharacterSelect()")
	}
}

func TestCloseStopsEverything(t *testing.T) {
	c, clock := newTestController(t, nil)
	startRun(t, c, "dirty")
	c.SubmitAction(ActionBallotStuffing, "")

	c.Close()
	c.Close()

	if clock.Active() != 0 {
		t.Errorf("Active() = %d after Close, expected 0", clock.Active())
	}
	if c.ManualVote() || c.ResetToLobby() || c.OpenCharacterSelect() {
		t.Error("command accepted after Close")
	}
	for range c.Changes() {
	}
	clock.Advance(10 * time.Second)
	if s := mustSnapshot(t, c); s.Outcome != OutcomeUndetermined {
		t.Errorf("Outcome = %v after Close, expected no transition", s.Outcome)
	}
}
