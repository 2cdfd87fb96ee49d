package field

import (
	"regexp"
	"strings"
)

var signStatusRE = regexp.MustCompile(`(\d+)\s*[Yy][Rr][Ss]?\s*(\+\s*\d+)?`)

// SignStatus normalizes a signing status read to forms like "1yr +1" or
// "4yrs".
func SignStatus(raw string) (string, bool) {
	m := signStatusRE.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", false
	}
	years := m[1]
	out := years + "yrs"
	if years == "1" {
		out = years + "yr"
	}
	if m[2] != "" {
		out += " " + strings.ReplaceAll(m[2], " ", "")
	}
	return out, true
}
