// Package core provides fundamental types and helpers shared by the game
// logic and the platform layer. It has no external dependencies so that game
// rules stay pure and testable.
package core

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Percent returns part/whole as an integer percentage clamped to [0, 100].
// A non-positive whole yields 0.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return Clamp(part*100/whole, 0, 100)
}
