package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSelection(t *testing.T, initial ...string) *Selection {
	t.Helper()
	s, err := NewSelection(testCatalog(t), initial...)
	require.NoError(t, err)
	return s
}

func TestNewSelection_RequiresValidSeed(t *testing.T) {
	_, err := NewSelection(testCatalog(t), "nope")
	assert.Error(t, err)

	s := testSelection(t, "personalized", "personalized")
	assert.Equal(t, []string{"personalized"}, s.IDs())
}

func TestToggle_AddRemove(t *testing.T) {
	s := testSelection(t, "personalized")

	got := s.Toggle("security")
	assert.Equal(t, []string{"personalized", "security"}, got)

	got = s.Toggle("personalized")
	assert.Equal(t, []string{"security"}, got)
}

func TestToggle_LastMemberIsNoOp(t *testing.T) {
	s := testSelection(t, "personalized")

	s.Toggle("personalized")
	s.Toggle("personalized")
	assert.Equal(t, []string{"personalized"}, s.IDs())
}

func TestToggle_UnknownIDIgnored(t *testing.T) {
	s := testSelection(t, "personalized")

	got := s.Toggle("quantum")
	assert.Equal(t, []string{"personalized"}, got)
}

func TestToggle_NeverEmpty(t *testing.T) {
	s := testSelection(t, "personalized")

	// Arbitrary toggle sequence over all known ids plus junk.
	sequence := []string{"security", "macro", "personalized", "security", "macro", "junk", "macro", "macro", "security", "personalized", "personalized"}
	for _, id := range sequence {
		s.Toggle(id)
		assert.GreaterOrEqual(t, s.Len(), 1)
	}
}

func TestIDs_ReturnsCopy(t *testing.T) {
	s := testSelection(t, "personalized", "security")

	snap := s.IDs()
	snap[0] = "mutated"
	assert.Equal(t, []string{"personalized", "security"}, s.IDs())
}

func TestDescribe(t *testing.T) {
	s := testSelection(t, "personalized")
	assert.Equal(t, "Single-dimensional analysis: Personal Intelligence", s.Describe())

	s.Toggle("security")
	assert.Equal(t, "Dual-dimensional synthesis: Personal Intelligence + Security Intelligence", s.Describe())

	s.Toggle("macro")
	assert.Equal(t, "Full-spectrum deep analysis: Personal Intelligence + Security Intelligence + Macro Narrative", s.Describe())
}

func TestDescribe_Idempotent(t *testing.T) {
	s := testSelection(t, "security", "macro")
	assert.Equal(t, s.Describe(), s.Describe())
}

func TestDepth(t *testing.T) {
	s := testSelection(t, "personalized")
	assert.Equal(t, "Focused Analysis", s.Depth())
	s.Toggle("security")
	assert.Equal(t, "Enhanced Analysis", s.Depth())
	s.Toggle("macro")
	assert.Equal(t, "Maximum Depth", s.Depth())
}

func TestSuggestions(t *testing.T) {
	s := testSelection(t, "security")
	single := s.Suggestions()
	require.NotEmpty(t, single)
	assert.Contains(t, single[0], "security risks")

	s.Toggle("macro")
	combo := s.Suggestions()
	assert.Equal(t, comboSuggestions, combo)

	// Returned slices are copies.
	combo[0] = "mutated"
	assert.NotEqual(t, "mutated", s.Suggestions()[0])
}
