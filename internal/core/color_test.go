package core

import "testing"

func TestMeterColor(t *testing.T) {
	tests := []struct {
		name      string
		level     int
		highIsBad bool
		expected  Color
	}{
		{"low corruption", 10, true, ColorGreen},
		{"mid corruption", 45, true, ColorYellow},
		{"high corruption", 65, true, ColorOrange},
		{"critical corruption", 95, true, ColorRed},
		{"strong support", 90, false, ColorGreen},
		{"weak support", 5, false, ColorRed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MeterColor(tc.level, tc.highIsBad); got != tc.expected {
				t.Errorf("MeterColor(%d, %v) = %v, expected %v", tc.level, tc.highIsBad, got, tc.expected)
			}
		})
	}
}

func TestTimeColor(t *testing.T) {
	if TimeColor(90) != ColorCyan {
		t.Error("TimeColor(90) should be cyan")
	}
	if TimeColor(25) != ColorOrange {
		t.Error("TimeColor(25) should be orange")
	}
	if TimeColor(3) != ColorRed {
		t.Error("TimeColor(3) should be red")
	}
}
