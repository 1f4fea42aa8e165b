package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -40000, min: -32768, max: 32767, expected: -32768},
		{name: "above", value: 40000, min: -32768, max: 32767, expected: 32767},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1) {
		t.Fatal("1 should be finite")
	}
	if IsFinite(math.NaN()) || IsFinite(math.Inf(1)) || IsFinite(math.Inf(-1)) {
		t.Fatal("NaN and Inf must not be finite")
	}
}

func TestMod(t *testing.T) {
	tests := []struct {
		k, n, want int
	}{
		{k: 5, n: 4, want: 1},
		{k: -1, n: 4, want: 3},
		{k: -8, n: 4, want: 0},
		{k: -9, n: 4, want: 3},
		{k: 0, n: 7, want: 0},
	}

	for _, tt := range tests {
		if got := Mod(tt.k, tt.n); got != tt.want {
			t.Fatalf("Mod(%d, %d) = %d, want %d", tt.k, tt.n, got, tt.want)
		}
	}
}

func TestLinearToDB(t *testing.T) {
	if db := LinearToDB(0.5); math.Abs(db+6.0206) > 1e-4 {
		t.Fatalf("LinearToDB(0.5) = %v, want -6.0206", db)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}
