package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/nirbachon-chaos/internal/config"
	"github.com/vovakirdan/nirbachon-chaos/internal/flavor"
	"github.com/vovakirdan/nirbachon-chaos/internal/flavor/gemini"
	"github.com/vovakirdan/nirbachon-chaos/internal/flavor/offline"
	"github.com/vovakirdan/nirbachon-chaos/internal/registry"
	"github.com/vovakirdan/nirbachon-chaos/internal/storage"
)

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// newLogger creates a logger writing to w at the configured level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "nirbachon",
	}), nil
}

// openLogFile opens the log file for appending. The terminal belongs to
// the TUI, so interactive sessions never log to stderr.
func openLogFile() (*os.File, error) {
	path := expandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

// seed returns the --seed value, or a time-based one when unset.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// apiKey reads the Gemini credentials from the environment.
func apiKey() string {
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		return k
	}
	return os.Getenv("GOOGLE_API_KEY")
}

// session bundles what every game-running command needs.
type session struct {
	cfg     config.Config
	source  config.Source
	logger  *log.Logger
	store   *storage.Store // nil when the journal is unavailable
	gateway *flavor.Gateway
}

// openSession loads the config, opens the journal and creates the flavor
// provider. A broken journal is not fatal.
func openSession(logger *log.Logger) (*session, error) {
	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return nil, err
	}
	logger.Info("config loaded", "source", source)

	s := &session{cfg: cfg, source: source, logger: logger}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("flavor journal unavailable, continuing without it", "err", err)
	} else {
		s.store = store
	}

	provider, err := s.createProvider()
	if err != nil {
		s.Close()
		return nil, err
	}

	opts := flavor.GatewayOptions{
		Provider: provider,
		Config:   cfg.Flavor,
		Logger:   logger,
	}
	// Offline lines come from the journal; writing them back would only
	// duplicate them.
	if s.store != nil && provider.Name() != offline.Name {
		opts.Journal = s.store
	}
	s.gateway = flavor.NewGateway(opts)
	logger.Info("flavor provider ready", "provider", provider.Name(), "journal", opts.Journal != nil)

	return s, nil
}

// createProvider resolves --provider or the configured provider.
func (s *session) createProvider() (flavor.Provider, error) {
	name := s.cfg.Flavor.Provider
	if flagProvider != "" {
		name = flagProvider
	}
	if !registry.Exists(name) {
		return nil, fmt.Errorf("unknown flavor provider %q (available: %s)", name, providerNames())
	}

	env := registry.Env{
		Config: s.cfg.Flavor,
		APIKey: apiKey(),
		Store:  s.store,
		Logger: s.logger,
		Seed:   seed(),
	}

	p, err := registry.Create(name, env)
	if errors.Is(err, gemini.ErrNoAPIKey) {
		s.logger.Warn("no API key, falling back to offline flavor", "provider", name)
		fmt.Fprintln(os.Stderr, "Warning: no GEMINI_API_KEY set, using offline flavor text")
		return registry.Create(offline.Name, env)
	}
	return p, err
}

func providerNames() string {
	infos := registry.List()
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	return strings.Join(names, ", ")
}

// Close releases the journal.
func (s *session) Close() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("cannot close flavor journal", "err", err)
	}
	s.store = nil
}
