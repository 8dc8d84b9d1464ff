package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/nirbachon-chaos/internal/game"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultIsValid(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("embedded YAML is invalid: %v", err)
	}

	if len(cfg.Characters) != 3 {
		t.Errorf("len(Characters) = %d, expected 3", len(cfg.Characters))
	}
	if len(cfg.NPCs) != 4 {
		t.Errorf("len(NPCs) = %d, expected 4", len(cfg.NPCs))
	}
	if cfg.Flavor.Timeout != 10*time.Second {
		t.Errorf("Flavor.Timeout = %v, expected 10s", cfg.Flavor.Timeout)
	}
	if cfg.Start.Money != 5000 {
		t.Errorf("Start.Money = %d, expected 5000", cfg.Start.Money)
	}
}

func TestDefaultMatchesEmbeddedRoster(t *testing.T) {
	var embedded Config
	if err := yaml.Unmarshal(DefaultYAML(), &embedded); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	builtin := Default()

	if err := builtin.Validate(); err != nil {
		t.Fatalf("Default() is invalid: %v", err)
	}
	if len(builtin.Characters) != len(embedded.Characters) {
		t.Fatalf("Default() has %d characters, embedded has %d", len(builtin.Characters), len(embedded.Characters))
	}
	for i := range builtin.Characters {
		if builtin.Characters[i] != embedded.Characters[i] {
			t.Errorf("character %d: Default() = %+v, embedded = %+v", i, builtin.Characters[i], embedded.Characters[i])
		}
	}
	for i := range builtin.NPCs {
		if builtin.NPCs[i] != embedded.NPCs[i] {
			t.Errorf("npc %d: Default() = %+v, embedded = %+v", i, builtin.NPCs[i], embedded.NPCs[i])
		}
	}
	if builtin.Notices != embedded.Notices {
		t.Errorf("Default() notices differ from embedded")
	}
	if builtin.Flavor.Fallbacks != embedded.Flavor.Fallbacks {
		t.Errorf("Default() fallbacks differ from embedded")
	}
}

func TestRosterConversion(t *testing.T) {
	cfg := Default()
	r := cfg.Roster()

	if err := r.Validate(); err != nil {
		t.Fatalf("Roster().Validate() = %v", err)
	}
	paddy, ok := r.Character("paddy")
	if !ok {
		t.Fatal("Character(paddy) not found")
	}
	if paddy.InitialCorruption != 30 || paddy.InitialInfluence != 80 {
		t.Errorf("paddy meters = (%d, %d), expected (30, 80)", paddy.InitialCorruption, paddy.InitialInfluence)
	}

	expected := map[string]game.ActionID{
		"apa":      game.ActionJulyCard,
		"akik":     game.ActionDroneStrike,
		"reporter": game.ActionFakeNews,
		"rajib":    game.ActionMediation,
	}
	for id, action := range expected {
		a, ok := r.Ally(id)
		if !ok {
			t.Errorf("Ally(%q) not found", id)
			continue
		}
		if a.Action != action {
			t.Errorf("Ally(%q).Action = %q, expected %q", id, a.Action, action)
		}
	}

	if got := cfg.GameNotices().Timeout; got != cfg.Notices.Timeout {
		t.Errorf("GameNotices().Timeout = %q, expected %q", got, cfg.Notices.Timeout)
	}
	if got := cfg.StartValues().Money; got != 5000 {
		t.Errorf("StartValues().Money = %d, expected 5000", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"default", func(*Config) {}, ""},
		{"no characters", func(c *Config) { c.Characters = nil }, "no characters"},
		{"empty character id", func(c *Config) { c.Characters[0].ID = "" }, "empty id"},
		{"duplicate character", func(c *Config) { c.Characters[1].ID = c.Characters[0].ID }, "duplicate id"},
		{"corruption above range", func(c *Config) { c.Characters[0].InitialCorruption = 101 }, "initial_corruption"},
		{"influence below range", func(c *Config) { c.Characters[0].InitialInfluence = -1 }, "initial_influence"},
		{"duplicate npc", func(c *Config) { c.NPCs[1].ID = c.NPCs[0].ID }, "duplicate id"},
		{"empty npc action", func(c *Config) { c.NPCs[0].Action = "" }, "empty action"},
		{"unknown npc action", func(c *Config) { c.NPCs[0].Action = "bribe" }, "unknown action"},
		{"zero timeout", func(c *Config) { c.Flavor.Timeout = 0 }, "flavor.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, expected it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "start:\n  money: 1234\nflavor:\n  provider: offline\n")

	cfg, src, err := LoadWithSource(path)
	if err != nil {
		t.Fatalf("LoadWithSource() failed: %v", err)
	}
	if src != Source(path) {
		t.Errorf("source = %q, expected %q", src, path)
	}
	if cfg.Start.Money != 1234 {
		t.Errorf("Start.Money = %d, expected 1234", cfg.Start.Money)
	}
	if cfg.Flavor.Provider != "offline" {
		t.Errorf("Flavor.Provider = %q, expected offline", cfg.Flavor.Provider)
	}
	if len(cfg.Characters) != 3 {
		t.Errorf("omitted characters were not defaulted: %d", len(cfg.Characters))
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load(missing) = nil error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "start: [unterminated\n")
	if _, err := Load(bad); err == nil {
		t.Error("Load(malformed) = nil error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	writeFile(t, invalid, "characters: []\n")
	if _, err := Load(invalid); err == nil {
		t.Error("Load(invalid) = nil error")
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	_, src, err := LoadWithSource("")
	if err != nil {
		t.Fatalf("LoadWithSource() failed: %v", err)
	}
	if src != SourceEmbedded {
		t.Errorf("source = %q, expected embedded", src)
	}

	writeFile(t, filepath.Join(work, "configs", FileName), "start:\n  money: 1\n")
	cfg, src, _ := LoadWithSource("")
	if cfg.Start.Money != 1 {
		t.Errorf("local config not used: source %q, money %d", src, cfg.Start.Money)
	}

	writeFile(t, filepath.Join(home, ".nirbachon", "config.yaml"), "start:\n  money: 2\n")
	cfg, src, _ = LoadWithSource("")
	if cfg.Start.Money != 2 {
		t.Errorf("user config not preferred: source %q, money %d", src, cfg.Start.Money)
	}

	writeFile(t, filepath.Join(home, ".nirbachon", "config.yaml"), "characters: [\n")
	cfg, _, _ = LoadWithSource("")
	if cfg.Start.Money != 1 {
		t.Errorf("broken user config not skipped: money %d", cfg.Start.Money)
	}
}
