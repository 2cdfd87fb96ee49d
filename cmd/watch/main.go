package main

import (
	"flag"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

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
	flag.Parse()
	if *manifestPath == "" {
		log.Fatalf("-manifest required")
	}

	engine, err := ocr.NewTesseract()
	if err != nil {
		log.Fatalf("ocr: %v", err)
	}
	p := extract.New(engine, layout.Default(), field.DefaultTables(), *input)

	if err := watch(p, *input, *manifestPath, *screen, *out); err != nil {
		log.Fatalf("watch: %v", err)
	}
}

// watch re-runs the extraction whenever a new screenshot lands in the input
// directory or the manifest is rewritten. Events are debounced so a burst of
// captures triggers one run.
func watch(p *extract.Pipeline, input, manifestPath, screen, out string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(input); err != nil {
		return err
	}
	if dir := filepath.Dir(manifestPath); dir != input {
		if err := w.Add(dir); err != nil {
			return err
		}
	}
	log.Printf("Watching %s (debounced) ...", input)

	runCh := make(chan struct{}, 1)
	go func() {
		var pending time.Time
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					close(runCh)
					return
				}
				if !triggers(ev, manifestPath) {
					continue
				}
				pending = time.Now()
			case <-ticker.C:
				if pending.IsZero() {
					continue
				}
				if time.Since(pending) > 300*time.Millisecond { // stable
					pending = time.Time{}
					select {
					case runCh <- struct{}{}:
					default:
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					close(runCh)
					return
				}
				log.Printf("watch error: %v", err)
			}
		}
	}()

	for range runCh {
		entries, err := manifest.Load(manifestPath)
		if err != nil {
			log.Printf("load manifest: %v", err)
			continue
		}
		if err := extract.RunAll(p, entries, screen, out); err != nil {
			log.Printf("extract: %v", err)
		}
	}
	return nil
}

func triggers(ev fsnotify.Event, manifestPath string) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return false
	}
	if ev.Name == manifestPath {
		return true
	}
	return isSupportedExt(filepath.Base(ev.Name))
}

func isSupportedExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
