package game

import "github.com/vovakirdan/nirbachon-chaos/internal/core"

// Outcome is the terminal classification of a run.
type Outcome int

const (
	OutcomeUndetermined Outcome = iota
	OutcomeWon
	OutcomeLost
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeUndetermined:
		return "undetermined"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "unknown"
	}
}

// LossCause records which rule ended a lost run.
type LossCause int

const (
	CauseNone LossCause = iota
	CauseCorruption
	CauseTimeout
)

// String returns a human-readable name for the cause.
func (c LossCause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseCorruption:
		return "corruption"
	case CauseTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// RunState is the resource model of a single run.
// Corruption, support and time are clamped on every write; once the outcome
// is terminal every mutator is a no-op.
type RunState struct {
	votes      int
	fakeVotes  int
	money      int
	corruption int
	support    int
	day        int
	timeLeft   int
	outcome    Outcome
	cause      LossCause
	news       []string
}

// NewRunState builds a fresh run for the given character.
func NewRunState(c Character, start StartValues) *RunState {
	s := &RunState{
		money:    start.Money,
		day:      1,
		timeLeft: RunDuration,
		news:     make([]string, 0, NewsLogSize),
	}
	s.corruption = clampMeter(c.InitialCorruption)
	s.support = clampMeter(c.InitialInfluence)
	if start.OpeningNews != "" {
		s.news = append(s.news, start.OpeningNews)
	}
	return s
}

func clampMeter(v int) int {
	return core.Clamp(v, 0, MeterMax)
}

// Votes returns the legitimate votes.
func (s *RunState) Votes() int { return s.votes }

// FakeVotes returns the illegitimate votes.
func (s *RunState) FakeVotes() int { return s.fakeVotes }

// TotalVotes returns the count that decides victory.
func (s *RunState) TotalVotes() int { return s.votes + s.fakeVotes }

// Money returns the campaign chest. It may be negative.
func (s *RunState) Money() int { return s.money }

// Corruption returns the corruption meter in [0, 100].
func (s *RunState) Corruption() int { return s.corruption }

// Support returns the public support meter in [0, 100].
func (s *RunState) Support() int { return s.support }

// Day returns the campaign day, starting at 1.
func (s *RunState) Day() int { return s.day }

// TimeLeft returns the remaining seconds in [0, RunDuration].
func (s *RunState) TimeLeft() int { return s.timeLeft }

// Outcome returns the run's outcome.
func (s *RunState) Outcome() Outcome { return s.outcome }

// Cause returns why a lost run was lost.
func (s *RunState) Cause() LossCause { return s.cause }

// Terminal reports whether the outcome has been decided.
func (s *RunState) Terminal() bool { return s.outcome != OutcomeUndetermined }

// News returns a copy of the news log, most recent first.
func (s *RunState) News() []string {
	out := make([]string, len(s.news))
	copy(out, s.news)
	return out
}

// AddVotes adds legitimate votes. Negative amounts are ignored so the vote
// total never decreases.
func (s *RunState) AddVotes(n int) {
	if s.Terminal() || n <= 0 {
		return
	}
	s.votes += n
}

// AddFakeVotes adds illegitimate votes. Negative amounts are ignored.
func (s *RunState) AddFakeVotes(n int) {
	if s.Terminal() || n <= 0 {
		return
	}
	s.fakeVotes += n
}

// AddMoney adjusts the campaign chest. No floor is enforced.
func (s *RunState) AddMoney(n int) {
	if s.Terminal() {
		return
	}
	s.money += n
}

// SetCorruption writes the corruption meter, clamped to [0, 100].
func (s *RunState) SetCorruption(v int) {
	if s.Terminal() {
		return
	}
	s.corruption = clampMeter(v)
}

// SetSupport writes the support meter, clamped to [0, 100].
func (s *RunState) SetSupport(v int) {
	if s.Terminal() {
		return
	}
	s.support = clampMeter(v)
}

// SetTimeLeft writes the countdown, clamped to [0, RunDuration].
func (s *RunState) SetTimeLeft(v int) {
	if s.Terminal() {
		return
	}
	s.timeLeft = core.Clamp(v, 0, RunDuration)
}

// NextDay advances the campaign calendar by one day.
func (s *RunState) NextDay() {
	if s.Terminal() {
		return
	}
	s.day++
}

// PushNews puts a headline at the top of the log, dropping the oldest
// beyond NewsLogSize. Empty headlines are ignored.
func (s *RunState) PushNews(headline string) {
	if s.Terminal() || headline == "" {
		return
	}
	s.news = append([]string{headline}, s.news...)
	if len(s.news) > NewsLogSize {
		s.news = s.news[:NewsLogSize]
	}
}

// conclude records the terminal outcome. It reports false if the outcome
// was already decided.
func (s *RunState) conclude(o Outcome, cause LossCause) bool {
	if s.Terminal() || o == OutcomeUndetermined {
		return false
	}
	s.outcome = o
	s.cause = cause
	return true
}

// Snapshot is a read-only copy of a RunState for display.
type Snapshot struct {
	Votes      int
	FakeVotes  int
	Money      int
	Corruption int
	Support    int
	Day        int
	TimeLeft   int
	Outcome    Outcome
	Cause      LossCause
	News       []string
}

// TotalVotes returns votes plus fake votes.
func (s Snapshot) TotalVotes() int { return s.Votes + s.FakeVotes }

// Snapshot copies the current state.
func (s *RunState) Snapshot() Snapshot {
	return Snapshot{
		Votes:      s.votes,
		FakeVotes:  s.fakeVotes,
		Money:      s.money,
		Corruption: s.corruption,
		Support:    s.support,
		Day:        s.day,
		TimeLeft:   s.timeLeft,
		Outcome:    s.outcome,
		Cause:      s.cause,
		News:       s.News(),
	}
}
