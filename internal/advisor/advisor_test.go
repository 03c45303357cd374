// internal/advisor/advisor_test.go
package advisor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDrawsFromPool(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(1)))

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		rec := gen.Generate()
		seen[rec.Project] = true

		assert.True(t, rec.RequiresHumanApproval)
		assert.NotEmpty(t, rec.ID)
		assert.NotEmpty(t, rec.Suggestion)
		assert.GreaterOrEqual(t, rec.Confidence, 0.0)
		assert.LessOrEqual(t, rec.Confidence, 1.0)
	}

	// Both templates should appear in 50 uniform draws.
	assert.True(t, seen["Uniswap V4"])
	assert.True(t, seen["Pendle Finance"])
}

func TestGenerateConfidenceBands(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(7)))

	for i := 0; i < 200; i++ {
		rec := gen.Generate()
		switch rec.Project {
		case "Uniswap V4":
			assert.GreaterOrEqual(t, rec.Confidence, 0.85)
			assert.Less(t, rec.Confidence, 0.95)
			assert.Equal(t, RiskMedium, rec.RiskLevel)
		case "Pendle Finance":
			assert.GreaterOrEqual(t, rec.Confidence, 0.82)
			assert.Less(t, rec.Confidence, 0.94)
			assert.Equal(t, RiskMediumHigh, rec.RiskLevel)
		default:
			t.Fatalf("unexpected project %q", rec.Project)
		}
	}
}

func TestGenerateUniqueIDs(t *testing.T) {
	gen := NewGenerator(nil)

	a := gen.Generate()
	b := gen.Generate()
	require.NotEqual(t, a.ID, b.ID)
}
