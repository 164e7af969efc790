package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrewcsmith/scritto/internal/duration"
)

func TestETPitch(t *testing.T) {
	assert.Equal(t, "c", ETPitch(60).Pitch())
	assert.Equal(t, "a", ETPitch(69).Pitch())
	assert.Equal(t, "b", ETPitch(71).Pitch())
	assert.Equal(t, "c", ETPitch(72).Pitch())
	assert.Equal(t, "eflat", ETPitch(63).Pitch())
}

func TestSingleNote(t *testing.T) {
	n := NewSingle(ETPitch(62), duration.New(1, 4))
	assert.Equal(t, "d", n.Text())
	assert.True(t, n.Duration().Equal(duration.New(1, 4)))
	assert.Equal(t, "", n.Annotations())
}

func TestChordText(t *testing.T) {
	c := NewChord([]Pitch{ETPitch(60), ETPitch(64), ETPitch(67)}, duration.New(1, 2))
	assert.Equal(t, "<c e g>", c.Text())
}

func TestOneNoteChord(t *testing.T) {
	c := NewChord([]Pitch{ETPitch(60)}, duration.New(1, 4))
	assert.Equal(t, "<c>", c.Text())
}

func TestEmptyChordPanics(t *testing.T) {
	c := NewChord(nil, duration.New(1, 4))
	assert.Panics(t, func() { c.Text() })
}
