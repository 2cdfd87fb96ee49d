package main

import (
	"flag"
	"log"
	"path/filepath"

	"leaguelens/pkg/extract"
	"leaguelens/pkg/field"
	"leaguelens/pkg/layout"
	"leaguelens/pkg/manifest"
	"leaguelens/pkg/ocr"
)

func main() {
	input := flag.String("input", "screenshots", "directory holding the screenshots")
	manifestPath := flag.String("manifest", "", "screen manifest JSON (required)")
	out := flag.String("out", "out", "output directory")
	screen := flag.String("screen", "all", "screen type to run: all|roster|contracts|picks|standings")
	layoutPath := flag.String("layout", "", "region table TOML, overrides the built-in 1080p table")
	tablesPath := flag.String("tables", "", "correction tables TOML, overrides the built-in set")
	debug := flag.Bool("debug", false, "save intermediate line crops under <out>/debug")
	flag.Parse()
	if *manifestPath == "" {
		log.Fatalf("-manifest required")
	}

	entries, err := manifest.Load(*manifestPath)
	if err != nil {
		log.Fatalf("load manifest: %v", err)
	}
	lay := layout.Default()
	if *layoutPath != "" {
		if lay, err = layout.Load(*layoutPath); err != nil {
			log.Fatalf("load layout: %v", err)
		}
	}
	tables := field.DefaultTables()
	if *tablesPath != "" {
		if tables, err = field.LoadTables(*tablesPath); err != nil {
			log.Fatalf("load tables: %v", err)
		}
	}

	engine, err := ocr.NewTesseract()
	if err != nil {
		log.Fatalf("ocr: %v", err)
	}

	p := extract.New(engine, lay, tables, *input)
	if *debug {
		p.Debug = true
		p.DebugDir = filepath.Join(*out, "debug")
	}
	if err := extract.RunAll(p, entries, *screen, *out); err != nil {
		log.Fatalf("extract: %v", err)
	}
}
