// Package sequenza groups musical time into hierarchical subdivisions:
// beats, measures and regions. A GroupingController consumes arbitrary
// durations from the hierarchy and reports every boundary that consumption
// crosses, so a caller can emit ties and bar annotations at exactly the
// right points.
package sequenza

import (
	"github.com/andrewcsmith/scritto/internal/duration"
)

// Grouping is one hierarchical level of rhythmic time.
type Grouping interface {
	// Duration returns the total time spanned by the grouping.
	Duration() duration.Duration

	// Next removes and returns the next child in playback order, or nil
	// for a leaf or an exhausted composite.
	Next() Grouping

	// IsEmpty reports whether no children remain.
	IsEmpty() bool

	// StartAnnotation is emitted when the controller first descends into
	// the grouping.
	StartAnnotation() string

	// EndAnnotation is emitted when the grouping is fully exhausted.
	EndAnnotation() string
}

// Beat is the leaf grouping: a fixed span of time with no subdivisions.
type Beat struct {
	dur duration.Duration
}

// NewBeat returns a beat lasting num/den of a whole note.
func NewBeat(num, den uint32) *Beat {
	return &Beat{dur: duration.New(num, den)}
}

func (b *Beat) Duration() duration.Duration { return b.dur }
func (b *Beat) Next() Grouping              { return nil }
func (b *Beat) IsEmpty() bool               { return true }
func (b *Beat) StartAnnotation() string     { return "" }
func (b *Beat) EndAnnotation() string       { return "" }

// Measure is a composite grouping whose duration is the sum of its
// children. Children are consumed front to back as time elapses.
type Measure struct {
	dur duration.Duration
	// contents holds the children in reverse playback order, so that Next
	// can pop from the back.
	contents []Grouping
}

// NewMeasure builds a measure from children given in playback
// (left-to-right) order.
func NewMeasure(children ...Grouping) *Measure {
	var total duration.Duration
	contents := make([]Grouping, len(children))
	for i, c := range children {
		total = total.Add(c.Duration())
		contents[len(children)-1-i] = c
	}
	return &Measure{dur: total, contents: contents}
}

// MeasureInTime returns a measure of num beats of 1/den each, e.g.
// MeasureInTime(3, 4) for a bar of 3/4.
func MeasureInTime(num, den uint32) *Measure {
	children := make([]Grouping, num)
	for i := range children {
		children[i] = NewBeat(1, den)
	}
	return NewMeasure(children...)
}

func (m *Measure) Duration() duration.Duration { return m.dur }

func (m *Measure) Next() Grouping {
	if len(m.contents) == 0 {
		return nil
	}
	c := m.contents[len(m.contents)-1]
	m.contents = m.contents[:len(m.contents)-1]
	return c
}

func (m *Measure) IsEmpty() bool           { return len(m.contents) == 0 }
func (m *Measure) StartAnnotation() string { return " %m. \n " }
func (m *Measure) EndAnnotation() string   { return " |\n" }

// Region is a named composite spanning several measures, e.g. a rehearsal
// section. Its boundaries are marked with comments and a double barline.
type Region struct {
	name     string
	dur      duration.Duration
	contents []Grouping
}

// NewRegion builds a named region from children given in playback order.
func NewRegion(name string, children ...Grouping) *Region {
	var total duration.Duration
	contents := make([]Grouping, len(children))
	for i, c := range children {
		total = total.Add(c.Duration())
		contents[len(children)-1-i] = c
	}
	return &Region{name: name, dur: total, contents: contents}
}

func (r *Region) Name() string                { return r.name }
func (r *Region) Duration() duration.Duration { return r.dur }

func (r *Region) Next() Grouping {
	if len(r.contents) == 0 {
		return nil
	}
	c := r.contents[len(r.contents)-1]
	r.contents = r.contents[:len(r.contents)-1]
	return c
}

func (r *Region) IsEmpty() bool           { return len(r.contents) == 0 }
func (r *Region) StartAnnotation() string { return " % " + r.name + "\n " }
func (r *Region) EndAnnotation() string   { return " \\bar \"||\"\n" }
