package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/andrewcsmith/scritto/internal/file"
	"github.com/andrewcsmith/scritto/internal/scrittore"
	"github.com/andrewcsmith/scritto/internal/sequenza"
	"github.com/andrewcsmith/scritto/internal/version"
)

var (
	i           = flag.String("i", "", "input score file name (YAML)")
	o           = flag.String("o", "", "output file name (default: stdout)")
	tmpl        = flag.String("template", "", "score template file name (overrides the built-in template)")
	showVersion = flag.Bool("version", false, "print version and exit")
)

func Main() error {
	if *showVersion {
		fmt.Println(version.Version())
		return nil
	}
	if *i == "" {
		return fmt.Errorf("missing -i flag")
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %v", err)
	}
	fsys := os.DirFS(cwd)

	score, err := file.ReadScore(fsys, *i)
	if err != nil {
		return fmt.Errorf("failed to read score: %v", err)
	}

	groupings, err := score.Groupings()
	if err != nil {
		return fmt.Errorf("failed to build groupings: %v", err)
	}
	ns, err := score.Notes()
	if err != nil {
		return fmt.Errorf("failed to build notes: %v", err)
	}

	controller, err := sequenza.NewController(groupings...)
	if err != nil {
		return fmt.Errorf("failed to create controller: %v", err)
	}
	music, err := scrittore.NewWriter(controller).FormatNotes(ns)
	if err != nil {
		return fmt.Errorf("failed to format notes: %v", err)
	}

	var source string
	if *tmpl != "" {
		b, err := fs.ReadFile(fsys, *tmpl)
		if err != nil {
			return fmt.Errorf("failed to read template: %v", err)
		}
		source = string(b)
	}
	view, err := scrittore.NewScoreView(source)
	if err != nil {
		return fmt.Errorf("failed to create view: %v", err)
	}
	out, err := view.RenderScore(scrittore.ScoreContext{
		Title:    score.Title,
		Composer: score.Composer,
		Time:     score.Time,
		Music:    music,
	})
	if err != nil {
		return fmt.Errorf("failed to render score: %v", err)
	}

	if *o == "" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(*o, []byte(out), 0666); err != nil {
		return fmt.Errorf("failed to write %v: %v", *o, err)
	}
	return nil
}

func main() {
	flag.Parse()
	err := Main()
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
