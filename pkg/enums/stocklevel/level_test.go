package stocklevel

import "testing"

func TestOf(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		threshold int
		want      Level
	}{
		{name: "belowThreshold", quantity: 2, threshold: 5, want: Levels.Low},
		{name: "atThreshold", quantity: 5, threshold: 5, want: Levels.Low},
		{name: "withinMediumBand", quantity: 7, threshold: 5, want: Levels.Medium},
		{name: "atMediumEdge", quantity: 15, threshold: 10, want: Levels.Medium},
		{name: "aboveMediumBand", quantity: 16, threshold: 10, want: Levels.Good},
		{name: "zeroThresholdEmpty", quantity: 0, threshold: 0, want: Levels.Low},
		{name: "zeroThresholdStocked", quantity: 1, threshold: 0, want: Levels.Good},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Of(tt.quantity, tt.threshold); got != tt.want {
				t.Errorf("Of(%d, %d) = %s, want %s", tt.quantity, tt.threshold, got.Name, tt.want.Name)
			}
		})
	}
}
