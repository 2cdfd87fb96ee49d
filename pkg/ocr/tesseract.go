package ocr

import (
	"fmt"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"leaguelens/pkg/vision"
)

// Tesseract is the gosseract-backed Engine. A fresh client is created per
// recognition pass; whitelists and page-segmentation modes are per-client
// state in Tesseract and reusing one client across configurations leaks
// settings between passes.
type Tesseract struct {
	lang string
}

// NewTesseract probes the local Tesseract installation and returns the
// engine, or ErrEngineUnavailable when the library cannot be initialized.
func NewTesseract() (*Tesseract, error) {
	client := gosseract.NewClient()
	defer client.Close()
	if v := client.Version(); v == "" {
		return nil, ErrEngineUnavailable
	}
	return &Tesseract{lang: "eng"}, nil
}

func (t *Tesseract) Recognize(img image.Image, p Params) ([]Word, error) {
	raw, err := vision.EncodePNG(img)
	if err != nil {
		return nil, fmt.Errorf("encode line image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()
	_ = client.SetLanguage(t.lang)
	_ = client.SetPageSegMode(pageSegMode(p.Mode))
	if p.Whitelist != "" {
		_ = client.SetWhitelist(p.Whitelist)
	}
	if err := client.SetImageFromBytes(raw); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// Word iteration can fail on degenerate crops; the plain text call
		// still works there, just without per-word confidence.
		text, terr := client.Text()
		if terr != nil {
			return nil, fmt.Errorf("ocr text: %w", terr)
		}
		var out []Word
		for _, f := range strings.Fields(text) {
			out = append(out, Word{Text: f})
		}
		return out, nil
	}

	out := make([]Word, 0, len(boxes))
	for _, b := range boxes {
		w := strings.TrimSpace(b.Word)
		if w == "" {
			continue
		}
		out = append(out, Word{Text: w, Confidence: clampConf(b.Confidence)})
	}
	return out, nil
}

func pageSegMode(m Mode) gosseract.PageSegMode {
	switch m {
	case SingleBlock:
		return gosseract.PSM_SINGLE_BLOCK
	case SparseText:
		return gosseract.PSM_SPARSE_TEXT
	default:
		return gosseract.PSM_SINGLE_LINE
	}
}
