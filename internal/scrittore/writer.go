// Package scrittore renders notes into engraving text. The Writer splits
// any note that crosses a rhythmic boundary into tied fragments, and the
// View layer wraps rendered music in templated output documents.
package scrittore

import (
	"strings"

	"github.com/andrewcsmith/scritto/internal/duration"
	"github.com/andrewcsmith/scritto/internal/notes"
	"github.com/andrewcsmith/scritto/internal/sequenza"
)

// tie joins two fragments of one logical note split across a boundary.
const tie = " ~ "

// Writer formats notes against a grouping controller. The controller is
// borrowed exclusively; formatting independent streams in parallel needs
// one controller per stream.
type Writer struct {
	controller *sequenza.GroupingController
}

// NewWriter returns a writer consuming time from c.
func NewWriter(c *sequenza.GroupingController) *Writer {
	return &Writer{controller: c}
}

// FormatNote renders one note, splitting it into tied fragments wherever
// it crosses a grouping boundary. Start annotations of freshly entered
// groupings precede the note; end annotations of groupings the note
// exhausts are interleaved at the boundary they close.
func (w *Writer) FormatNote(n notes.Note) (string, error) {
	left, err := w.controller.Left()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, a := range w.controller.StartAnnotations() {
		b.WriteString(a)
	}

	d := n.Duration()
	if !left.Less(d) {
		// The note fits inside the current grouping.
		if err := w.fragment(&b, n, d, n.Annotations()); err != nil {
			return "", err
		}
		if err := w.consume(&b, d); err != nil {
			return "", err
		}
		return b.String(), nil
	}

	// The note overflows the current grouping: emit a first fragment of
	// the remaining time, then tied fragments across each boundary.
	if err := w.fragment(&b, n, left, n.Annotations()); err != nil {
		return "", err
	}
	d = d.Sub(left)
	b.WriteString(tie)
	if err := w.consume(&b, left); err != nil {
		return "", err
	}

	for {
		left, err = w.controller.Left()
		if err != nil {
			return "", err
		}
		if d.Less(left) {
			break
		}
		if err := w.fragment(&b, n, left, ""); err != nil {
			return "", err
		}
		d = d.Sub(left)
		if !d.IsZero() {
			b.WriteString(tie)
		}
		if err := w.consume(&b, left); err != nil {
			return "", err
		}
		if d.IsZero() {
			return b.String(), nil
		}
	}

	// Remainder smaller than the current grouping.
	if err := w.fragment(&b, n, d, ""); err != nil {
		return "", err
	}
	if err := w.consume(&b, d); err != nil {
		return "", err
	}
	return b.String(), nil
}

// FormatNotes renders a sequence of notes, separated by single spaces.
func (w *Writer) FormatNotes(ns []notes.Note) (string, error) {
	parts := make([]string, 0, len(ns))
	for _, n := range ns {
		s, err := w.FormatNote(n)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " "), nil
}

// fragment writes one notated fragment: display text, duration token and
// any onset annotation.
func (w *Writer) fragment(b *strings.Builder, n notes.Note, d duration.Duration, annotations string) error {
	notation, err := d.Notation()
	if err != nil {
		return err
	}
	b.WriteString(n.Text())
	b.WriteString(notation)
	b.WriteString(annotations)
	return nil
}

// consume consumes d from the controller and writes the end annotations of
// every grouping the consumption exhausted, innermost first.
func (w *Writer) consume(b *strings.Builder, d duration.Duration) error {
	exhausted, err := w.controller.ConsumeTime(d)
	if err != nil {
		return err
	}
	for _, g := range exhausted {
		b.WriteString(g.EndAnnotation())
	}
	return nil
}
