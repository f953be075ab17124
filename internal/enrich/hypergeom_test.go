package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSurvivalFunction(t *testing.T) {
	tests := []struct {
		name                        string
		k, universe, inTerm, sampled int
		want                        float64
	}{
		{"reference scenario", 4, 100, 10, 20, 0.1095718509592766},
		{"one fewer common", 3, 100, 10, 20, 0.31877993618231115},
		{"strong overlap", 5, 50, 8, 10, 0.0049515938098860885},
		{"small population", 2, 20, 5, 5, 0.36609907120743035},
		{"perfect overlap", 4, 10, 4, 4, 0.004761904761904762},
		{"single common locus", 1, 30, 4, 6, 0.6122605363984674},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SurvivalFunction(tt.k, tt.universe, tt.inTerm, tt.sampled)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestSurvivalFunctionBounds(t *testing.T) {
	// At least zero successes is certain
	assert.Equal(t, 1.0, SurvivalFunction(0, 100, 10, 20))

	// More successes than draws or than term members is impossible
	assert.Equal(t, 0.0, SurvivalFunction(21, 100, 10, 20))
	assert.Equal(t, 0.0, SurvivalFunction(11, 100, 10, 20))

	// Lower support bound: drawing 20 from 100 with 95 successes must
	// yield at least 15
	assert.Equal(t, 1.0, SurvivalFunction(15, 100, 95, 20))

	// A sample larger than the universe is contradictory; k above
	// min(sampled, inTerm) still reports impossible, not certain
	assert.Equal(t, 0.0, SurvivalFunction(4, 5, 3, 10))
}

func TestSurvivalFunctionMonotoneInK(t *testing.T) {
	prev := 1.0
	for k := 0; k <= 10; k++ {
		p := SurvivalFunction(k, 100, 10, 20)
		assert.LessOrEqual(t, p, prev, "tail must not grow with k")
		prev = p
	}
}
