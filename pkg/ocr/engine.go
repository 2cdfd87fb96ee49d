// Package ocr runs the OCR engine under an ordered list of configurations
// and votes the best-scoring candidate per text line. No single configuration
// is reliably best across the UI's fonts, sizes and icon occlusion; voting
// trades extra OCR calls for robustness.
package ocr

import (
	"errors"
	"image"
	"strings"
)

// ErrEngineUnavailable means the OCR engine cannot be reached or initialized.
// This is the only fatal condition in the pipeline: the whole run aborts.
var ErrEngineUnavailable = errors.New("ocr engine unavailable")

// Mode selects how the engine segments the page.
type Mode int

const (
	// SingleLine treats the image as one text line.
	SingleLine Mode = iota
	// SingleBlock treats the image as one uniform text block.
	SingleBlock
	// SparseText finds text in no particular order.
	SparseText
)

// Word is one recognized token with the engine's confidence heuristic,
// always within [0, 100].
type Word struct {
	Text       string
	Confidence float64
}

// Params configures a single recognition pass.
type Params struct {
	Mode Mode
	// Whitelist restricts the engine's character set when the field type is
	// known; empty means unrestricted.
	Whitelist string
}

// Engine is one OCR backend. Implementations must be safe for sequential
// reuse; the pipeline never calls Recognize concurrently on one Engine.
type Engine interface {
	Recognize(img image.Image, p Params) ([]Word, error)
}

// Strategy is one configuration attempt in a voting sequence. Order matters:
// ties keep the earliest strategy's result.
type Strategy struct {
	Tag       string
	Mode      Mode
	Whitelist string
}

// NameStrategies is the voting sequence for name-like columns: single line
// first, block and sparse as fallbacks, all letter-restricted.
func NameStrategies(whitelist string) []Strategy {
	return []Strategy{
		{Tag: "line", Mode: SingleLine, Whitelist: whitelist},
		{Tag: "block", Mode: SingleBlock, Whitelist: whitelist},
		{Tag: "sparse", Mode: SparseText, Whitelist: whitelist},
	}
}

// CellStrategies is the shorter sequence for small single-value cells.
func CellStrategies(whitelist string) []Strategy {
	return []Strategy{
		{Tag: "line", Mode: SingleLine, Whitelist: whitelist},
		{Tag: "block", Mode: SingleBlock, Whitelist: whitelist},
	}
}

// JoinWords concatenates recognized words with single spaces.
func JoinWords(words []Word) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		if t := strings.TrimSpace(w.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// AvgConfidence averages the per-word confidences; empty input scores 0.
func AvgConfidence(words []Word) float64 {
	if len(words) == 0 {
		return 0
	}
	sum := 0.0
	for _, w := range words {
		sum += clampConf(w.Confidence)
	}
	return sum / float64(len(words))
}

func clampConf(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
