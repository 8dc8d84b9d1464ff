// Package config provides YAML-based content and integration settings:
// the roster, starting values, notices, flavor-text provider settings
// and presentation strings. Game rules are not configurable.
package config

import (
	"time"

	"github.com/vovakirdan/nirbachon-chaos/internal/game"
)

// Config is the root of the YAML document.
type Config struct {
	Start      StartConfig       `yaml:"start"`
	Characters []CharacterConfig `yaml:"characters"`
	NPCs       []NPCConfig       `yaml:"npcs"`
	Notices    NoticeConfig      `yaml:"notices"`
	Flavor     FlavorConfig      `yaml:"flavor"`
	UI         UIConfig          `yaml:"ui"`
}

// StartConfig holds the non-character starting values of a run.
type StartConfig struct {
	Money           int    `yaml:"money"`
	OpeningNews     string `yaml:"opening_news"`
	RunStartNews    string `yaml:"run_start_news"` // %s is the character name
	OpeningDialogue string `yaml:"opening_dialogue"`
}

// CharacterConfig defines a playable election symbol.
type CharacterConfig struct {
	ID                string `yaml:"id"`
	Name              string `yaml:"name"`
	Title             string `yaml:"title"`
	Description       string `yaml:"description"`
	SpecialAbility    string `yaml:"special_ability"`
	InitialCorruption int    `yaml:"initial_corruption"`
	InitialInfluence  int    `yaml:"initial_influence"`
}

// NPCConfig defines an ally and the action they broker.
type NPCConfig struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Role   string `yaml:"role"`
	Pitch  string `yaml:"pitch"`
	Action string `yaml:"action"`
}

// NoticeConfig holds the loss notices and end-of-run copy.
type NoticeConfig struct {
	Corruption   string `yaml:"corruption"`
	Timeout      string `yaml:"timeout"`
	WinHeadline  string `yaml:"win_headline"`
	LossHeadline string `yaml:"loss_headline"`
	WinSlogan    string `yaml:"win_slogan"`
	LossSlogan   string `yaml:"loss_slogan"`
	SloganCredit string `yaml:"slogan_credit"`
}

// FlavorConfig configures the flavor-text gateway and its providers.
type FlavorConfig struct {
	Provider            string            `yaml:"provider"`
	Model               string            `yaml:"model"`
	NewsTemperature     float32           `yaml:"news_temperature"`
	DialogueTemperature float32           `yaml:"dialogue_temperature"`
	Timeout             time.Duration     `yaml:"timeout"`
	NewsSubject         string            `yaml:"news_subject"`   // used when no character is known
	NewsPrompt          string            `yaml:"news_prompt"`    // %s character name, %s event
	DialoguePrompt      string            `yaml:"dialogue_prompt"` // %s actor description, %s action
	Actors              map[string]string `yaml:"actors"`
	Fallbacks           FallbackConfig    `yaml:"fallbacks"`
	Offline             OfflineConfig     `yaml:"offline"`
}

// FallbackConfig holds the fixed strings substituted for failed or empty
// provider responses.
type FallbackConfig struct {
	NewsEmpty     string `yaml:"news_empty"`
	NewsError     string `yaml:"news_error"`
	DialogueEmpty string `yaml:"dialogue_empty"`
	DialogueError string `yaml:"dialogue_error"`
}

// OfflineConfig holds canned lines for the offline provider.
type OfflineConfig struct {
	News     []string            `yaml:"news"`     // %s is the character name
	Dialogue map[string][]string `yaml:"dialogue"` // keyed by actor id
}

// UIConfig holds presentation settings.
type UIConfig struct {
	RefreshRate  int    `yaml:"refresh_rate"`
	Title        string `yaml:"title"`
	Tagline      string `yaml:"tagline"`
	IdleDialogue string `yaml:"idle_dialogue"`
	VoteMarker   string `yaml:"vote_marker"` // %d is the increment
	Briefing     string `yaml:"briefing"`    // markdown
}

// Roster converts the configured characters and NPCs.
func (c Config) Roster() game.Roster {
	r := game.Roster{
		Characters: make([]game.Character, 0, len(c.Characters)),
		Allies:     make([]game.Ally, 0, len(c.NPCs)),
	}
	for _, ch := range c.Characters {
		r.Characters = append(r.Characters, game.Character{
			ID:                ch.ID,
			Name:              ch.Name,
			Title:             ch.Title,
			Description:       ch.Description,
			SpecialAbility:    ch.SpecialAbility,
			InitialCorruption: ch.InitialCorruption,
			InitialInfluence:  ch.InitialInfluence,
		})
	}
	for _, n := range c.NPCs {
		r.Allies = append(r.Allies, game.Ally{
			ID:     n.ID,
			Name:   n.Name,
			Role:   n.Role,
			Pitch:  n.Pitch,
			Action: game.ActionID(n.Action),
		})
	}
	return r
}

// StartValues converts the start section.
func (c Config) StartValues() game.StartValues {
	return game.StartValues{
		Money:           c.Start.Money,
		OpeningNews:     c.Start.OpeningNews,
		RunStartNews:    c.Start.RunStartNews,
		OpeningDialogue: c.Start.OpeningDialogue,
	}
}

// GameNotices returns the notices the controller pushes to the news log.
func (c Config) GameNotices() game.Notices {
	return game.Notices{
		Corruption: c.Notices.Corruption,
		Timeout:    c.Notices.Timeout,
	}
}
