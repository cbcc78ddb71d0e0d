package textutil

import (
	"math"
	"testing"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identical", "blue mug", "blue mug", 100},
		{"both empty", "", "", 0},
		{"left empty", "", "mug", 0},
		{"right empty", "mug", "", 0},
		{"disjoint", "abc", "xyz", 0},
		{"one substitution", "chair a", "chair b", 100 * 12.0 / 14.0},
		{"insertion", "mug photo red", "mug red", 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ratio(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTokenSortRatioIgnoresOrder(t *testing.T) {
	if got := TokenSortRatio("mug red", "red mug"); got != 100 {
		t.Fatalf("TokenSortRatio(reordered) = %v, want 100", got)
	}
	if got := TokenSortRatio("red mug photo", "red mug"); got != 70 {
		t.Fatalf("TokenSortRatio(extra token) = %v, want 70", got)
	}
}

func TestTokenSortRatioSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"oak table large", "large oak desk"},
		{"lamp", "floor lamp"},
		{"", "chair"},
	}
	for _, p := range pairs {
		ab := TokenSortRatio(p[0], p[1])
		ba := TokenSortRatio(p[1], p[0])
		if ab != ba {
			t.Errorf("TokenSortRatio not symmetric for %q/%q: %v vs %v", p[0], p[1], ab, ba)
		}
		if ab < 0 || ab > 100 {
			t.Errorf("TokenSortRatio(%q, %q) = %v out of range", p[0], p[1], ab)
		}
	}
}
