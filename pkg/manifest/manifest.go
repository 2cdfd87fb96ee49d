// Package manifest reads the screen-classification manifest produced by the
// external classifier. Extractors only process entries whose screen type
// matches.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
)

// Screen types emitted by the classifier.
const (
	RosterViewer       = "RosterViewer"
	ContractExtensions = "ContractExtensions"
	FutureDraftPicks   = "FutureDraftPicks"
	TeamStandings      = "TeamStandings"
	Ignore             = "Ignore"
	Unreadable         = "Unreadable"
)

// Entry is one classified screenshot.
type Entry struct {
	File       string `json:"file"`
	ScreenType string `json:"screen_type"`
	HeaderText string `json:"header_text,omitempty"`
}

// Load reads a manifest file.
func Load(path string) ([]Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return entries, nil
}

// Filter keeps entries of one screen type, preserving manifest order.
// Entries without a filename are dropped.
func Filter(entries []Entry, screenType string) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.File == "" || e.ScreenType != screenType {
			continue
		}
		out = append(out, e)
	}
	return out
}
