package field

import (
	"regexp"
	"strings"
)

// Salaries render as "$40.54M". The trailing M is a frequent misread (N),
// and the dollar sign often comes back as S.
var (
	salaryAmountRE  = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*[MN]`)
	salaryDecimalRE = regexp.MustCompile(`\d+\.\d+`)
	salaryStripper  = strings.NewReplacer("$", "", ",", "", "S", "")
)

// Currency normalizes a salary read to "$<amount>M", or ok=false when no
// amount can be found.
func Currency(raw string) (string, bool) {
	if strings.TrimSpace(raw) == "" {
		return "", false
	}
	t := strings.TrimSpace(salaryStripper.Replace(raw))

	if m := salaryAmountRE.FindStringSubmatch(t); m != nil {
		return "$" + m[1] + "M", true
	}
	if m := salaryDecimalRE.FindString(t); m != "" {
		return "$" + m + "M", true
	}
	return "", false
}
