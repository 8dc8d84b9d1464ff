package core

// Color represents a foreground color hint for rendered elements.
// The platform layer maps these to terminal styles.
type Color uint8

// Predefined colors for HUD elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
)

// MeterColor picks a color for a 0-100 meter.
// When highIsBad is set (corruption), high values trend toward red.
func MeterColor(level int, highIsBad bool) Color {
	if !highIsBad {
		level = 100 - level
	}
	switch {
	case level >= 80:
		return ColorRed
	case level >= 60:
		return ColorOrange
	case level >= 40:
		return ColorYellow
	default:
		return ColorGreen
	}
}

// TimeColor picks a color for the countdown.
func TimeColor(secondsLeft int) Color {
	switch {
	case secondsLeft <= 10:
		return ColorRed
	case secondsLeft <= 30:
		return ColorOrange
	default:
		return ColorCyan
	}
}
