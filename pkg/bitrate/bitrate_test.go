package bitrate

import (
	"errors"
	"math"
	"testing"
)

func TestForLimit(t *testing.T) {
	cases := []struct {
		name     string
		limitMiB float64
		duration float64
		audio    float64
		want     float64
	}{
		{"default limit one minute", 8, 60, 64, 1028.2},
		{"no audio", 8, 60, 0, 1092.2},
		{"six mebibytes", 6, 120, 64, 345.6},
		{"long input", 8, 600, 64, 45.2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ForLimit(c.limitMiB, c.duration, c.audio)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != c.want {
				t.Errorf("ForLimit(%g, %g, %g) = %g, want %g",
					c.limitMiB, c.duration, c.audio, got, c.want)
			}
		})
	}
}

func TestForLimitMatchesExpression(t *testing.T) {
	for _, c := range []struct{ l, d, a float64 }{
		{8, 60, 64}, {1, 30, 0}, {16, 245.5, 112}, {4, 3600, 45},
	} {
		got, err := ForLimit(c.l, c.d, c.a)
		if err != nil {
			t.Fatalf("ForLimit(%g, %g, %g): %v", c.l, c.d, c.a, err)
		}
		expr := c.l*8192/c.d - c.a
		if math.Abs(got-expr) > 0.1 {
			t.Errorf("ForLimit(%g, %g, %g) = %g, deviates from %g by more than the truncation step",
				c.l, c.d, c.a, got, expr)
		}
	}
}

func TestForLimitUnattainable(t *testing.T) {
	cases := []struct {
		name     string
		limitMiB float64
		duration float64
		audio    float64
	}{
		{"audio eats the budget", 1, 60, 200},
		{"duration too long", 1, 100000, 0},
		{"exactly zero", 1, 128, 64},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ForLimit(c.limitMiB, c.duration, c.audio)
			if !errors.Is(err, ErrUnattainable) {
				t.Errorf("expected ErrUnattainable, got %v", err)
			}
		})
	}
}
