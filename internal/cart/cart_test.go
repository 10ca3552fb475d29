package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mathLine() Line {
	return Line{LessonID: "l1", Subject: "Math", Location: "London", Price: 100, Spaces: 4}
}

func englishLine() Line {
	return Line{LessonID: "l2", Subject: "English", Location: "York", Price: 80, Spaces: 2}
}

// ============================================
// Line Sequence Tests
// ============================================

func TestCart_AddKeepsDuplicatesAsRepeatedEntries(t *testing.T) {
	c := New()
	c.Add(mathLine())
	c.Add(mathLine())

	assert.Equal(t, 2, c.Len())
	lines := c.Lines()
	assert.Equal(t, lines[0], lines[1])
}

func TestCart_RemoveAt(t *testing.T) {
	c := New()
	c.Add(mathLine())
	c.Add(englishLine())

	removed, err := c.RemoveAt(0)

	require.NoError(t, err)
	assert.Equal(t, "Math", removed.Subject)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, "English", c.Lines()[0].Subject)
}

func TestCart_RemoveAt_BadIndex(t *testing.T) {
	c := New()
	c.Add(mathLine())

	_, err := c.RemoveAt(1)
	assert.ErrorIs(t, err, ErrBadIndex)

	_, err = c.RemoveAt(-1)
	assert.ErrorIs(t, err, ErrBadIndex)

	assert.Equal(t, 1, c.Len())
}

func TestCart_RemoveFirstBySubject(t *testing.T) {
	c := New()
	c.Add(mathLine())
	c.Add(englishLine())
	c.Add(mathLine())

	removed, ok := c.RemoveFirstBySubject("Math")

	require.True(t, ok)
	assert.Equal(t, "l1", removed.LessonID)
	assert.Equal(t, 2, c.Len())
	// The later Math line survives.
	assert.Equal(t, "English", c.Lines()[0].Subject)
	assert.Equal(t, "Math", c.Lines()[1].Subject)
}

func TestCart_RemoveFirstBySubject_NoMatchIsNoop(t *testing.T) {
	c := New()
	c.Add(mathLine())

	_, ok := c.RemoveFirstBySubject("History")

	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestCart_LinesReturnsCopy(t *testing.T) {
	c := New()
	c.Add(mathLine())

	lines := c.Lines()
	lines[0].Subject = "Tampered"

	assert.Equal(t, "Math", c.Lines()[0].Subject)
}

func TestCart_Total(t *testing.T) {
	c := New()
	assert.Equal(t, 0.0, c.Total())

	c.Add(mathLine())
	c.Add(mathLine())
	c.Add(englishLine())

	assert.Equal(t, 280.0, c.Total())
}

// ============================================
// Grouped View Tests
// ============================================

func TestCart_Grouped_CountsBySubject(t *testing.T) {
	// [A, B, A, A] must yield exactly {A: 3, B: 1}.
	c := New()
	c.Add(mathLine())
	c.Add(englishLine())
	c.Add(mathLine())
	c.Add(mathLine())

	groups := c.Grouped()

	require.Len(t, groups, 2)
	assert.Equal(t, "Math", groups[0].Subject)
	assert.Equal(t, 3, groups[0].Count)
	assert.Equal(t, 100.0, groups[0].UnitPrice)
	assert.Equal(t, "English", groups[1].Subject)
	assert.Equal(t, 1, groups[1].Count)
}

func TestCart_Grouped_FirstSeenLineRepresentsGroup(t *testing.T) {
	c := New()
	first := mathLine()
	first.Spaces = 4
	later := mathLine()
	later.Spaces = 2

	c.Add(first)
	c.Add(later)

	groups := c.Grouped()
	require.Len(t, groups, 1)
	assert.Equal(t, 4, groups[0].Spaces)
	assert.Equal(t, 2, groups[0].Count)
}

func TestCart_Grouped_RecomputedAfterMutation(t *testing.T) {
	c := New()
	c.Add(mathLine())
	c.Add(mathLine())
	require.Equal(t, 2, c.Grouped()[0].Count)

	_, err := c.RemoveAt(0)
	require.NoError(t, err)

	groups := c.Grouped()
	require.Len(t, groups, 1)
	assert.Equal(t, 1, groups[0].Count)
}

func TestCart_Grouped_EmptyCart(t *testing.T) {
	c := New()
	assert.Empty(t, c.Grouped())
}

func TestCart_Clear(t *testing.T) {
	c := New()
	c.Add(mathLine())
	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Lines())
}
