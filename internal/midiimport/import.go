// Package midiimport converts standard MIDI files into engravable notes
// and a matching rhythmic structure. The model is linear: notes sound one
// after another, and simultaneous onsets of equal length become chords.
// Overlapping partial voices are not supported.
package midiimport

import (
	"fmt"
	"math"
	"slices"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/andrewcsmith/scritto/internal/duration"
	"github.com/andrewcsmith/scritto/internal/notes"
	"github.com/andrewcsmith/scritto/internal/sequenza"
)

// Result is the engravable content of a MIDI file.
type Result struct {
	Notes     []notes.Note
	Groupings []sequenza.Grouping
	// Time signature from the first meta time signature event, 4/4 when
	// the file has none.
	TimeNum, TimeDen uint32
}

// Time returns the time signature as display text, e.g. "4/4".
func (r *Result) Time() string {
	return fmt.Sprintf("%d/%d", r.TimeNum, r.TimeDen)
}

// ReadFile reads an SMF file and converts it.
func ReadFile(name string) (*Result, error) {
	mid, err := smf.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("smf.ReadFile(%q): %v", name, err)
	}
	return FromSMF(mid)
}

type key struct {
	ch, note uint8
}

type span struct {
	start  int64
	length int64
	note   uint8
}

// FromSMF converts an in-memory SMF to notes and groupings.
func FromSMF(mid *smf.SMF) (*Result, error) {
	mt, ok := mid.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("unsupported time format: %v", mid.TimeFormat)
	}
	whole := 4 * int64(mt)

	timeNum, timeDen := uint32(4), uint32(4)
	sawMeter := false

	starts := map[key]int64{}
	var spans []span
	var lastTime int64
	for _, t := range mid.Tracks {
		var time int64
		for _, ev := range t {
			time += int64(ev.Delta)
			var ch, note, vel uint8
			if ev.Message.GetNoteStart(&ch, &note, &vel) {
				starts[key{ch, note}] = time
				continue
			}
			if ev.Message.GetNoteEnd(&ch, &note) {
				k := key{ch, note}
				if start, ok := starts[k]; ok {
					if time > start {
						spans = append(spans, span{start: start, length: time - start, note: note})
					}
					if time > lastTime {
						lastTime = time
					}
					delete(starts, k)
				}
				continue
			}
			var num, denom, cpt, dsqpq uint8
			if ev.Message.GetMetaTimeSig(&num, &denom, &cpt, &dsqpq) && !sawMeter {
				timeNum, timeDen = uint32(num), uint32(denom)
				sawMeter = true
			}
		}
	}
	if len(starts) > 0 {
		return nil, fmt.Errorf("%d notes never released", len(starts))
	}

	slices.SortStableFunc(spans, func(a, b span) int {
		switch {
		case a.start < b.start:
			return -1
		case a.start > b.start:
			return +1
		case a.note < b.note:
			return -1
		case a.note > b.note:
			return +1
		}
		return 0
	})

	ns, err := spansToNotes(spans, whole)
	if err != nil {
		return nil, err
	}

	return &Result{
		Notes:     ns,
		Groupings: coveringMeasures(lastTime, whole, timeNum, timeDen),
		TimeNum:   timeNum,
		TimeDen:   timeDen,
	}, nil
}

// spansToNotes merges spans with identical onset and length into chords
// and converts tick lengths into exact rational durations.
func spansToNotes(spans []span, whole int64) ([]notes.Note, error) {
	var out []notes.Note
	for i := 0; i < len(spans); {
		j := i + 1
		for j < len(spans) && spans[j].start == spans[i].start && spans[j].length == spans[i].length {
			j++
		}
		d, err := tickDuration(spans[i].length, whole)
		if err != nil {
			return nil, fmt.Errorf("note at tick %d: %v", spans[i].start, err)
		}
		if j == i+1 {
			out = append(out, notes.NewSingle(notes.ETPitch(spans[i].note), d))
		} else {
			pitches := make([]notes.Pitch, 0, j-i)
			for _, s := range spans[i:j] {
				pitches = append(pitches, notes.ETPitch(s.note))
			}
			out = append(out, notes.NewChord(pitches, d))
		}
		i = j
	}
	return out, nil
}

// coveringMeasures builds enough measures of the time signature to span
// all sounding ticks.
func coveringMeasures(lastTime, whole int64, num, den uint32) []sequenza.Grouping {
	if lastTime == 0 {
		return nil
	}
	measureTicks := whole * int64(num) / int64(den)
	count := (lastTime + measureTicks - 1) / measureTicks
	groupings := make([]sequenza.Grouping, count)
	for i := range groupings {
		groupings[i] = sequenza.MeasureInTime(num, den)
	}
	return groupings
}

// tickDuration reduces a tick count against the whole-note tick length.
func tickDuration(ticks, whole int64) (duration.Duration, error) {
	if ticks <= 0 {
		return duration.Duration{}, fmt.Errorf("non-positive length %d", ticks)
	}
	g := gcd(ticks, whole)
	num, den := ticks/g, whole/g
	if num > math.MaxUint32 || den > math.MaxUint32 {
		return duration.Duration{}, fmt.Errorf("length %d/%d out of range", num, den)
	}
	return duration.New(uint32(num), uint32(den)), nil
}

func gcd(a, b int64) int64 {
	c := a % b
	if c == 0 {
		return b
	}
	return gcd(b, c)
}
