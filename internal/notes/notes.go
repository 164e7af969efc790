// Package notes models the musical events that get engraved: single notes
// and chords, each with a pitch (or pitches) and an exact rational duration.
package notes

import (
	"strings"

	"github.com/andrewcsmith/scritto/internal/duration"
)

// Note is any event with a duration that can be turned into notation text.
type Note interface {
	// Duration returns the total time of the event in whole-note units.
	Duration() duration.Duration

	// Text returns the event's display text excluding the duration token.
	// It is repeated on every tied fragment of a split event.
	Text() string

	// Annotations returns text attached to the event's first onset only.
	Annotations() string
}

// SingleNote is a single pitch with a duration.
type SingleNote struct {
	Pitch Pitch
	Dur   duration.Duration
	Annot string
}

// NewSingle returns a single note of the given pitch and duration.
func NewSingle(p Pitch, d duration.Duration) SingleNote {
	return SingleNote{Pitch: p, Dur: d}
}

func (n SingleNote) Duration() duration.Duration { return n.Dur }
func (n SingleNote) Text() string                { return n.Pitch.Pitch() }
func (n SingleNote) Annotations() string         { return n.Annot }

// Chord is a simultaneous set of pitches with one shared duration.
type Chord struct {
	Pitches []Pitch
	Dur     duration.Duration
	Annot   string
}

// NewChord returns a chord of the given pitches and duration.
func NewChord(pitches []Pitch, d duration.Duration) Chord {
	return Chord{Pitches: pitches, Dur: d}
}

func (c Chord) Duration() duration.Duration { return c.Dur }

// Text renders the chord as "<c e g>". An empty chord is a caller bug.
func (c Chord) Text() string {
	if len(c.Pitches) == 0 {
		panic("notes: empty chord")
	}
	names := make([]string, len(c.Pitches))
	for i, p := range c.Pitches {
		names[i] = p.Pitch()
	}
	return "<" + strings.Join(names, " ") + ">"
}

func (c Chord) Annotations() string { return c.Annot }
