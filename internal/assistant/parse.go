package assistant

import (
	"strings"
)

// MatchCategory maps a raw model reply onto one of categories. The first
// line naming a category wins; case, surrounding quotes, list markers and a
// trailing period are ignored. It returns "" when nothing matches.
func MatchCategory(raw string, categories []string) string {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		line = strings.TrimLeft(line, "-*• ")
		line = strings.TrimRight(line, ".")
		line = strings.Trim(line, "\"'`")
		line = strings.TrimSpace(line)
		if strings.EqualFold(line, NoneAnswer) {
			return ""
		}

		for _, c := range categories {
			if strings.EqualFold(line, c) {
				return c
			}
		}
	}

	return ""
}
