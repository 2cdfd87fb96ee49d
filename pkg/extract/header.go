package extract

import (
	"image"
	"log"
	"regexp"
	"strconv"
	"strings"

	"leaguelens/pkg/field"
	"leaguelens/pkg/layout"
)

var (
	headerCleanRE = regexp.MustCompile(`[^A-Za-z0-9\s]`)
	powerRankRE   = regexp.MustCompile(`(\d{1,2})(?:st|nd|rd|th)?`)
)

// teamFromHeader OCRs the team name plate (top-right, next to the logo) and
// resolves it against the league roster. Returns "Unknown" when nothing
// readable comes back, so grouping still has a bucket.
func (p *Pipeline) teamFromHeader(img image.Image, screen layout.Screen, file string) (string, error) {
	region, ok := screen.Header("team")
	if !ok {
		return "Unknown", nil
	}
	crop, err := layout.Crop(img, region)
	if err != nil {
		log.Printf("WARNING: team header of %s: %v", file, err)
		return "Unknown", nil
	}

	text, _, found, err := p.ocrCell(crop, cellWhitelist, cellShape())
	if err != nil {
		if fatal(err) {
			return "", err
		}
		log.Printf("WARNING: team header ocr %s: %v", file, err)
		return "Unknown", nil
	}
	if !found {
		return "Unknown", nil
	}

	text = field.CollapseSpaces(headerCleanRE.ReplaceAllString(text, ""))
	// The plate reads "CHI Bulls 24-18" on some screens; the last long word
	// is the franchise name.
	words := strings.Fields(text)
	last := ""
	for _, w := range words {
		if len(w) > 3 {
			last = w
		}
	}
	if last != "" {
		text = last
	}
	if m, ok := p.Teams.Resolve(text); ok {
		return m.Name, nil
	}
	if text == "" {
		return "Unknown", nil
	}
	return text, nil
}

// conferenceFromHeader reads the conference tab label. Empty string means
// the label was unreadable; callers fall back to per-team lookup.
func (p *Pipeline) conferenceFromHeader(img image.Image, screen layout.Screen, file string) (string, error) {
	region, ok := screen.Header("conference")
	if !ok {
		return "", nil
	}
	crop, err := layout.Crop(img, region)
	if err != nil {
		log.Printf("WARNING: conference header of %s: %v", file, err)
		return "", nil
	}
	text, _, found, err := p.ocrCell(crop, cellWhitelist, cellShape())
	if err != nil {
		if fatal(err) {
			return "", err
		}
		return "", nil
	}
	if !found {
		return "", nil
	}
	up := strings.ToUpper(text)
	switch {
	case strings.Contains(up, "WEST"):
		return "Western", nil
	case strings.Contains(up, "EAST"):
		return "Eastern", nil
	}
	return "", nil
}

// powerRankFromHeader reads the "Power Rank: 3rd" card. Zero means absent.
func (p *Pipeline) powerRankFromHeader(img image.Image, screen layout.Screen, file string) (int, error) {
	region, ok := screen.Header("power_rank")
	if !ok {
		return 0, nil
	}
	crop, err := layout.Crop(img, region)
	if err != nil {
		log.Printf("WARNING: power rank header of %s: %v", file, err)
		return 0, nil
	}
	text, _, found, err := p.ocrCell(crop, cellWhitelist, cellShape())
	if err != nil {
		if fatal(err) {
			return 0, err
		}
		return 0, nil
	}
	if !found {
		return 0, nil
	}
	m := powerRankRE.FindStringSubmatch(text)
	if m == nil {
		return 0, nil
	}
	n, _ := strconv.Atoi(m[1])
	if n < 1 || n > 30 {
		return 0, nil
	}
	return n, nil
}
