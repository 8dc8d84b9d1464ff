package game

// ActionID identifies a catalog action.
type ActionID string

// Catalog actions.
const (
	ActionPromise        ActionID = "promise"
	ActionDroneStrike    ActionID = "drone_strike"
	ActionFakeNews       ActionID = "fake_news"
	ActionBallotStuffing ActionID = "ballot_stuffing"
	ActionJulyCard       ActionID = "july_card"
	ActionMediation      ActionID = "mediation"
)

// Effect is the deterministic resource delta of an action. Corruption and
// support deltas are applied through the clamped setters.
type Effect struct {
	Votes      int
	FakeVotes  int
	Money      int
	Corruption int
	Support    int
}

// ActionSpec describes a catalog entry.
type ActionSpec struct {
	ID     ActionID
	Label  string
	Effect Effect
}

// catalog is ordered for display.
var catalog = []ActionSpec{
	{ID: ActionPromise, Label: "Promise Rally", Effect: Effect{Votes: 2000, Support: 12}},
	{ID: ActionDroneStrike, Label: "Drone Strike", Effect: Effect{Votes: 4000, Money: -500}},
	{ID: ActionFakeNews, Label: "Fake News", Effect: Effect{FakeVotes: 6000, Money: -1200, Corruption: 15}},
	{ID: ActionBallotStuffing, Label: "Ballot Stuffing", Effect: Effect{FakeVotes: 9000, Corruption: 30}},
	{ID: ActionJulyCard, Label: "July Card", Effect: Effect{Corruption: -20, Support: 15}},
	{ID: ActionMediation, Label: "Mediation", Effect: Effect{Money: -800, Corruption: -15}},
}

// Catalog returns all actions in display order.
func Catalog() []ActionSpec {
	out := make([]ActionSpec, len(catalog))
	copy(out, catalog)
	return out
}

// LookupAction returns the catalog entry for id.
func LookupAction(id ActionID) (ActionSpec, bool) {
	for _, spec := range catalog {
		if spec.ID == id {
			return spec, true
		}
	}
	return ActionSpec{}, false
}

// Apply writes the effect into s and advances the day. Every resolved
// action costs exactly one day regardless of which fields it touches.
func (e Effect) Apply(s *RunState) {
	s.AddVotes(e.Votes)
	s.AddFakeVotes(e.FakeVotes)
	s.AddMoney(e.Money)
	if e.Corruption != 0 {
		s.SetCorruption(s.Corruption() + e.Corruption)
	}
	if e.Support != 0 {
		s.SetSupport(s.Support() + e.Support)
	}
	s.NextDay()
}

// ApplyAction resolves a catalog action against s. It reports false for
// unknown actions and for runs that are already decided.
func ApplyAction(s *RunState, id ActionID) bool {
	spec, ok := LookupAction(id)
	if !ok || s.Terminal() {
		return false
	}
	spec.Effect.Apply(s)
	return true
}
