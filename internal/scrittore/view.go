package scrittore

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig"

	"github.com/andrewcsmith/scritto/internal/notes"
)

//go:embed templates/*.tmpl
var templates embed.FS

// View renders notation data through a text template. By convention a view
// inserts its input into the context under a fixed key ("note", "chord" or
// "score") which the template refers to.
type View struct {
	tmpl *template.Template

	// Context holds values shared across renders, e.g. a title set once.
	Context map[string]any
}

// NewView returns a view named after one of the built-in templates. A
// non-empty source overrides the built-in template text.
func NewView(name, source string, context map[string]any) (*View, error) {
	if source == "" {
		b, err := templates.ReadFile("templates/" + name + ".tmpl")
		if err != nil {
			return nil, fmt.Errorf("no built-in template %q: %v", name, err)
		}
		source = string(b)
	}
	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Parse(source)
	if err != nil {
		return nil, fmt.Errorf("could not parse template %q: %v", name, err)
	}
	if context == nil {
		context = make(map[string]any)
	}
	return &View{tmpl: tmpl, Context: context}, nil
}

// NewNoteView returns a view rendering a single note under the "note" key.
func NewNoteView(source string) (*View, error) {
	return NewView("note", source, nil)
}

// NewChordView returns a view rendering a chord under the "chord" key.
func NewChordView(source string) (*View, error) {
	return NewView("chord", source, nil)
}

// NewScoreView returns a view wrapping formatted music in a complete
// output document under the "score" key.
func NewScoreView(source string) (*View, error) {
	return NewView("score", source, nil)
}

// Render inserts value into the context under key and executes the
// template against the full context.
func (v *View) Render(key string, value any) (string, error) {
	v.Context[key] = value
	var buf bytes.Buffer
	if err := v.tmpl.Execute(&buf, v.Context); err != nil {
		return "", fmt.Errorf("could not render template: %v", err)
	}
	return buf.String(), nil
}

// NoteContext lowers a note into the map shape the note and chord
// templates expect.
func NoteContext(n notes.Note) (map[string]any, error) {
	notation, err := n.Duration().Notation()
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"text":        n.Text(),
		"duration":    notation,
		"annotations": n.Annotations(),
	}, nil
}

// ScoreContext describes the fields of the score template.
type ScoreContext struct {
	Title    string
	Composer string
	Time     string
	Music    string
}

// RenderScore renders a complete output document around formatted music.
func (v *View) RenderScore(sc ScoreContext) (string, error) {
	return v.Render("score", map[string]any{
		"title":    sc.Title,
		"composer": sc.Composer,
		"time":     sc.Time,
		"music":    sc.Music,
	})
}
