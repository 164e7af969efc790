package scrittore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewcsmith/scritto/internal/duration"
	"github.com/andrewcsmith/scritto/internal/notes"
	"github.com/andrewcsmith/scritto/internal/sequenza"
)

func quarterMeasure(beats int) *sequenza.Measure {
	children := make([]sequenza.Grouping, beats)
	for i := range children {
		children[i] = sequenza.NewBeat(1, 4)
	}
	return sequenza.NewMeasure(children...)
}

func TestFormatNote_FitsInGrouping(t *testing.T) {
	c, err := sequenza.NewController(sequenza.NewBeat(1, 4), sequenza.NewBeat(1, 4))
	require.NoError(t, err)
	w := NewWriter(c)

	out, err := w.FormatNote(notes.NewSingle(notes.ETPitch(60), duration.New(1, 4)))
	require.NoError(t, err)
	assert.Equal(t, "c4", out)
}

func TestFormatNote_HalfNoteSplitsAcrossBeats(t *testing.T) {
	c, err := sequenza.NewController(quarterMeasure(4))
	require.NoError(t, err)
	w := NewWriter(c)

	out, err := w.FormatNote(notes.NewSingle(notes.ETPitch(60), duration.New(1, 2)))
	require.NoError(t, err)
	assert.Equal(t, " %m. \n c4 ~ c4", out)
}

func TestFormatNotes_TieSplittingScenario(t *testing.T) {
	// A half note at the top of the measure followed by two quarter
	// notes: exactly one tie, and no barline until the measure ends.
	c, err := sequenza.NewController(quarterMeasure(4))
	require.NoError(t, err)
	w := NewWriter(c)

	out, err := w.FormatNotes([]notes.Note{
		notes.NewSingle(notes.ETPitch(60), duration.New(1, 2)),
		notes.NewSingle(notes.ETPitch(62), duration.New(1, 4)),
		notes.NewSingle(notes.ETPitch(64), duration.New(1, 4)),
	})
	require.NoError(t, err)
	assert.Equal(t, " %m. \n c4 ~ c4 d4 e4 |\n", out)
}

func TestFormatNote_RemainderFragment(t *testing.T) {
	c, err := sequenza.NewController(quarterMeasure(4))
	require.NoError(t, err)
	w := NewWriter(c)

	// 3/8 = one full beat plus an eighth of the next.
	out, err := w.FormatNote(notes.NewSingle(notes.ETPitch(60), duration.New(3, 8)))
	require.NoError(t, err)
	assert.Equal(t, " %m. \n c4 ~ c8", out)

	// The eighth was consumed, so the next eighth finishes the beat.
	left, err := c.Left()
	require.NoError(t, err)
	assert.True(t, left.Equal(duration.New(1, 8)))
}

func TestFormatNote_ChordAcrossBarline(t *testing.T) {
	c, err := sequenza.NewController(quarterMeasure(2), quarterMeasure(2))
	require.NoError(t, err)
	w := NewWriter(c)

	out, err := w.FormatNotes([]notes.Note{
		notes.NewChord([]notes.Pitch{notes.ETPitch(60), notes.ETPitch(64)}, duration.New(1, 2)),
		notes.NewSingle(notes.ETPitch(65), duration.New(1, 2)),
	})
	require.NoError(t, err)
	assert.Equal(t, " %m. \n <c e>4 ~ <c e>4 |\n  %m. \n f4 ~ f4 |\n", out)
}

func TestFormatNote_WholeNoteAcrossMeasures(t *testing.T) {
	c, err := sequenza.NewController(quarterMeasure(2), quarterMeasure(2))
	require.NoError(t, err)
	w := NewWriter(c)

	out, err := w.FormatNote(notes.NewSingle(notes.ETPitch(60), duration.New(1, 1)))
	require.NoError(t, err)
	assert.Equal(t, " %m. \n c4 ~ c4 ~  |\nc4 ~ c4 |\n", out)
}

func TestFormatNote_OnsetAnnotationOnlyOnFirstFragment(t *testing.T) {
	c, err := sequenza.NewController(quarterMeasure(4))
	require.NoError(t, err)
	w := NewWriter(c)

	n := notes.SingleNote{
		Pitch: notes.ETPitch(60),
		Dur:   duration.New(1, 2),
		Annot: "\\fermata",
	}
	out, err := w.FormatNote(n)
	require.NoError(t, err)
	assert.Equal(t, " %m. \n c4\\fermata ~ c4", out)
}

func TestFormatNote_UnsupportedDuration(t *testing.T) {
	c, err := sequenza.NewController(quarterMeasure(4))
	require.NoError(t, err)
	w := NewWriter(c)

	_, err = w.FormatNote(notes.NewSingle(notes.ETPitch(60), duration.New(1, 6)))
	assert.True(t, errors.Is(err, duration.ErrUnsupportedNotation))
}

func TestFormatNote_StructureExhausted(t *testing.T) {
	c, err := sequenza.NewController(sequenza.NewBeat(1, 4))
	require.NoError(t, err)
	w := NewWriter(c)

	_, err = w.FormatNote(notes.NewSingle(notes.ETPitch(60), duration.New(1, 2)))
	require.True(t, errors.Is(err, sequenza.ErrStructureExhausted))

	// The caller can feed more structure and re-issue the remainder.
	c.Extend(sequenza.NewBeat(1, 4))
	out, err := w.FormatNote(notes.NewSingle(notes.ETPitch(60), duration.New(1, 4)))
	require.NoError(t, err)
	assert.Equal(t, "c4", out)
}

func TestFormatNotes_ExactFitEndsWithBarline(t *testing.T) {
	c, err := sequenza.NewController(quarterMeasure(2))
	require.NoError(t, err)
	w := NewWriter(c)

	out, err := w.FormatNotes([]notes.Note{
		notes.NewSingle(notes.ETPitch(60), duration.New(1, 4)),
		notes.NewSingle(notes.ETPitch(62), duration.New(1, 4)),
	})
	require.NoError(t, err)
	assert.Equal(t, " %m. \n c4 d4 |\n", out)
}
