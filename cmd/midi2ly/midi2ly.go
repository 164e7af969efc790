package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/andrewcsmith/scritto/internal/midiimport"
	"github.com/andrewcsmith/scritto/internal/scrittore"
	"github.com/andrewcsmith/scritto/internal/sequenza"
)

var (
	i     = flag.String("i", "", "input file name (SMF)")
	o     = flag.String("o", "", "output file name (default: stdout)")
	title = flag.String("title", "", "title for the score header")
)

func Main() error {
	if *i == "" {
		return fmt.Errorf("missing -i flag")
	}

	res, err := midiimport.ReadFile(*i)
	if err != nil {
		return fmt.Errorf("failed to import %v: %v", *i, err)
	}
	if len(res.Notes) == 0 {
		return fmt.Errorf("no notes in %v", *i)
	}

	controller, err := sequenza.NewController(res.Groupings...)
	if err != nil {
		return fmt.Errorf("failed to create controller: %v", err)
	}
	music, err := scrittore.NewWriter(controller).FormatNotes(res.Notes)
	if err != nil {
		return fmt.Errorf("failed to format notes: %v", err)
	}

	view, err := scrittore.NewScoreView("")
	if err != nil {
		return fmt.Errorf("failed to create view: %v", err)
	}
	out, err := view.RenderScore(scrittore.ScoreContext{
		Title: *title,
		Time:  res.Time(),
		Music: music,
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
