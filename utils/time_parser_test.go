package utils

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		input string
		want  time.Duration
	}{
		{"30m", 30 * time.Minute},
		{"12h", 12 * time.Hour},
		{"1d", 24 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
		{"2w", 14 * 24 * time.Hour},
	}
	for _, c := range cases {
		got, err := ParseDuration(c.input)
		if err != nil {
			t.Fatalf("ParseDuration(%q) failed: %v", c.input, err)
		}
		if got != c.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestParseDurationInvalid(t *testing.T) {
	for _, input := range []string{"", "abc", "xd", "1.5w"} {
		if _, err := ParseDuration(input); err == nil {
			t.Errorf("ParseDuration(%q) should fail", input)
		}
	}
}
