package field

import (
	"fmt"
	"regexp"
	"strconv"
)

var winLossRE = regexp.MustCompile(`(\d{1,2})\s*-\s*(\d{1,2})`)

// WinLoss normalizes a standings record to "W-L" and returns the parsed
// counts alongside the canonical string.
func WinLoss(raw string) (record string, wins, losses int, ok bool) {
	m := winLossRE.FindStringSubmatch(raw)
	if m == nil {
		return "", 0, 0, false
	}
	wins, _ = strconv.Atoi(m[1])
	losses, _ = strconv.Atoi(m[2])
	return fmt.Sprintf("%d-%d", wins, losses), wins, losses, true
}
