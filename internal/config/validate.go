package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/nirbachon-chaos/internal/game"
)

// Validate reports every problem found in the configuration.
func (c Config) Validate() error {
	var errs []error

	if len(c.Characters) == 0 {
		errs = append(errs, errors.New("no characters defined"))
	}

	seen := make(map[string]bool)
	for i, ch := range c.Characters {
		switch {
		case ch.ID == "":
			errs = append(errs, fmt.Errorf("characters[%d]: empty id", i))
		case seen[ch.ID]:
			errs = append(errs, fmt.Errorf("characters[%d]: duplicate id %q", i, ch.ID))
		}
		seen[ch.ID] = true

		if !inMeterRange(ch.InitialCorruption) {
			errs = append(errs, fmt.Errorf("character %q: initial_corruption %d outside [0, %d]", ch.ID, ch.InitialCorruption, game.MeterMax))
		}
		if !inMeterRange(ch.InitialInfluence) {
			errs = append(errs, fmt.Errorf("character %q: initial_influence %d outside [0, %d]", ch.ID, ch.InitialInfluence, game.MeterMax))
		}
	}

	seenNPC := make(map[string]bool)
	for i, n := range c.NPCs {
		switch {
		case n.ID == "":
			errs = append(errs, fmt.Errorf("npcs[%d]: empty id", i))
		case seenNPC[n.ID]:
			errs = append(errs, fmt.Errorf("npcs[%d]: duplicate id %q", i, n.ID))
		}
		seenNPC[n.ID] = true

		if n.Action == "" {
			errs = append(errs, fmt.Errorf("npc %q: empty action", n.ID))
		} else if _, ok := game.LookupAction(game.ActionID(n.Action)); !ok {
			errs = append(errs, fmt.Errorf("npc %q: unknown action %q", n.ID, n.Action))
		}
	}

	if c.Flavor.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("flavor.timeout must be positive, got %s", c.Flavor.Timeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

func inMeterRange(v int) bool {
	return v >= 0 && v <= game.MeterMax
}
