package game

import "fmt"

// Character is a playable election symbol. It is chosen once per run and
// never modified afterwards.
type Character struct {
	ID                string
	Name              string
	Title             string
	Description       string
	SpecialAbility    string
	InitialCorruption int
	InitialInfluence  int
}

// Ally is a non-playable helper who brokers one catalog action for the candidate.
type Ally struct {
	ID     string
	Name   string
	Role   string
	Pitch  string
	Action ActionID
}

// Roster is the ordered set of playable characters and allies for a session.
type Roster struct {
	Characters []Character
	Allies     []Ally
}

// Character looks up a playable character by ID.
func (r Roster) Character(id string) (Character, bool) {
	for _, c := range r.Characters {
		if c.ID == id {
			return c, true
		}
	}
	return Character{}, false
}

// Ally looks up an ally by ID.
func (r Roster) Ally(id string) (Ally, bool) {
	for _, a := range r.Allies {
		if a.ID == id {
			return a, true
		}
	}
	return Ally{}, false
}

// Validate checks that the roster is usable for a run.
func (r Roster) Validate() error {
	if len(r.Characters) == 0 {
		return fmt.Errorf("game: roster has no characters")
	}
	seen := make(map[string]bool, len(r.Characters))
	for _, c := range r.Characters {
		if c.ID == "" {
			return fmt.Errorf("game: character with empty id")
		}
		if seen[c.ID] {
			return fmt.Errorf("game: duplicate character %q", c.ID)
		}
		seen[c.ID] = true
	}
	for _, a := range r.Allies {
		if _, ok := LookupAction(a.Action); !ok {
			return fmt.Errorf("game: ally %q brokers unknown action %q", a.ID, a.Action)
		}
	}
	return nil
}

// StartValues are the configured, non-character starting values of a run.
type StartValues struct {
	Money       int
	OpeningNews string
	// RunStartNews is formatted with the character name (%s) and pushed
	// on top of the opening news when a run begins.
	RunStartNews    string
	OpeningDialogue string
}

// DefaultStartValues returns the stock starting values.
func DefaultStartValues() StartValues {
	return StartValues{
		Money:           5000,
		OpeningNews:     "Election schedule announced! 50,000 votes in ninety seconds!",
		RunStartNews:    "%s enters the electoral battlefield! Target: 50,000 votes!",
		OpeningDialogue: "Victory must be secured within a minute and a half!",
	}
}
