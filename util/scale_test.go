package util

import (
	"testing"
	"time"
)

func TestMapRange(t *testing.T) {
	tests := []struct {
		name                       string
		v, inLo, inHi, outLo, outHi float64
		want                       float64
	}{
		{"lower bound", 10, 10, 80, 30, 100, 30},
		{"upper bound", 80, 10, 80, 30, 100, 100},
		{"interior", 30, 10, 80, 30, 100, 50},
		{"interior fractional", 68.75, 10, 80, 30, 100, 88.75},
		{"below input range clamps", 0, 10, 80, 30, 100, 30},
		{"above input range clamps", 95, 10, 80, 30, 100, 100},
		{"degenerate input range", 42, 50, 50, 0, 10, 0},
		{"inverted output", 25, 0, 100, 100, 0, 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapRange(tt.v, tt.inLo, tt.inHi, tt.outLo, tt.outHi)
			if diff := got - tt.want; diff > 0.0001 || diff < -0.0001 {
				t.Errorf("MapRange(%v, %v, %v, %v, %v) = %v, want %v",
					tt.v, tt.inLo, tt.inHi, tt.outLo, tt.outHi, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name       string
		v, lo, hi  float64
		want       float64
	}{
		{"inside", 5, 0, 10, 5},
		{"below", -3, 0, 10, 0},
		{"above", 12, 0, 10, 10},
		{"at lower edge", 0, 0, 10, 0},
		{"at upper edge", 10, 0, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestSlope(t *testing.T) {
	tests := []struct {
		name       string
		prev, curr float64
		dt         time.Duration
		want       float64
	}{
		{"rising", 20, 25, 2 * time.Second, 2.5},
		{"falling", 30, 28, time.Second, -2},
		{"flat", 40, 40, time.Second, 0},
		{"zero interval", 20, 30, 0, 0},
		{"negative interval", 20, 30, -time.Second, 0},
		{"sub-second interval", 20, 21, 500 * time.Millisecond, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slope(tt.prev, tt.curr, tt.dt)
			if diff := got - tt.want; diff > 0.0001 || diff < -0.0001 {
				t.Errorf("Slope(%v, %v, %v) = %v, want %v", tt.prev, tt.curr, tt.dt, got, tt.want)
			}
		})
	}
}
