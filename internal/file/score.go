// Package file reads score documents from YAML and lowers them into the
// note and grouping values the engraving core consumes.
package file

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andrewcsmith/scritto/internal/duration"
	"github.com/andrewcsmith/scritto/internal/notes"
	"github.com/andrewcsmith/scritto/internal/sequenza"
)

// Event is one note or chord in a score document. Exactly one of Pitch
// and Pitches should be set; pitches are MIDI values.
type Event struct {
	Pitch      *int   `yaml:"pitch,omitempty"`
	Pitches    []int  `yaml:"pitches,omitempty"`
	Duration   string `yaml:"duration"`
	Annotation string `yaml:"annotation,omitempty"`
}

// Score is a complete engraving input document.
type Score struct {
	Title    string  `yaml:"title,omitempty"`
	Composer string  `yaml:"composer,omitempty"`
	Time     string  `yaml:"time"`
	Measures int     `yaml:"measures,omitempty"`
	Events   []Event `yaml:"events"`
}

// ReadScore reads and decodes a YAML score document.
func ReadScore(fsys fs.FS, name string) (*Score, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open: %v", err)
	}
	defer f.Close()
	var score Score
	if err := yaml.NewDecoder(f).Decode(&score); err != nil {
		return nil, fmt.Errorf("could not decode: %v", err)
	}
	return &score, nil
}

// WriteScore encodes a score document to a YAML file.
func WriteScore(name string, score *Score) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("could not create: %v", err)
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	defer enc.Close()
	if err := enc.Encode(score); err != nil {
		return fmt.Errorf("could not encode: %v", err)
	}
	return nil
}

// TimeSignature parses the score's "num/den" time signature.
func (s *Score) TimeSignature() (num, den uint32, err error) {
	if _, err := fmt.Sscanf(s.Time, "%d/%d", &num, &den); err != nil {
		return 0, 0, fmt.Errorf("bad time signature %q: %v", s.Time, err)
	}
	if num == 0 || den == 0 {
		return 0, 0, fmt.Errorf("bad time signature %q", s.Time)
	}
	return num, den, nil
}

// Groupings builds the score's rhythmic structure: measures of the time
// signature, subdivided into beats of the denominator. If the measure
// count is omitted, enough measures are built to cover all events.
func (s *Score) Groupings() ([]sequenza.Grouping, error) {
	num, den, err := s.TimeSignature()
	if err != nil {
		return nil, err
	}

	count := s.Measures
	if count == 0 {
		total, err := s.totalDuration()
		if err != nil {
			return nil, err
		}
		measure := duration.New(num, den)
		var covered duration.Duration
		for covered.Less(total) {
			covered = covered.Add(measure)
			count++
		}
	}

	groupings := make([]sequenza.Grouping, count)
	for i := range groupings {
		groupings[i] = sequenza.MeasureInTime(num, den)
	}
	return groupings, nil
}

// Notes lowers the score's events into engravable notes.
func (s *Score) Notes() ([]notes.Note, error) {
	out := make([]notes.Note, 0, len(s.Events))
	for i, ev := range s.Events {
		d, err := duration.Parse(ev.Duration)
		if err != nil {
			return nil, fmt.Errorf("event %d: %v", i, err)
		}
		switch {
		case ev.Pitch != nil && len(ev.Pitches) > 0:
			return nil, fmt.Errorf("event %d: both pitch and pitches set", i)
		case ev.Pitch != nil:
			out = append(out, notes.SingleNote{
				Pitch: notes.ETPitch(*ev.Pitch),
				Dur:   d,
				Annot: ev.Annotation,
			})
		case len(ev.Pitches) > 0:
			pitches := make([]notes.Pitch, len(ev.Pitches))
			for j, p := range ev.Pitches {
				pitches[j] = notes.ETPitch(p)
			}
			out = append(out, notes.Chord{
				Pitches: pitches,
				Dur:     d,
				Annot:   ev.Annotation,
			})
		default:
			return nil, fmt.Errorf("event %d: no pitch", i)
		}
	}
	return out, nil
}

func (s *Score) totalDuration() (duration.Duration, error) {
	var total duration.Duration
	for i, ev := range s.Events {
		d, err := duration.Parse(ev.Duration)
		if err != nil {
			return duration.Duration{}, fmt.Errorf("event %d: %v", i, err)
		}
		total = total.Add(d)
	}
	return total, nil
}
