package youtube

import "testing"

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"PT1M30S", 90},
		{"PT2H", 7200},
		{"PT45S", 45},
		{"PT1H1M1S", 3661},
		{"PT1H30M", 5400},
		{"PT", 0},
		{"invalid", 0},
		{"", 0},
		{"1h30m", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseDuration(tt.input); got != tt.want {
				t.Errorf("ParseDuration(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
