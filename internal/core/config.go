package core

// RuntimeConfig contains configuration passed to the presentation layer at startup.
type RuntimeConfig struct {
	ScreenW     int // Screen width in characters
	ScreenH     int // Screen height in characters
	RefreshRate int // UI redraws per second for animations (spinner, vote marker)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:     80,
		ScreenH:     24,
		RefreshRate: 30,
	}
}
