package filter

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/JeromeFabre77/SpotWork/internal/core/model"
)

// CriteriaKey derives a deterministic memo key for a criteria value.
// The readable segment is normalized and length-bounded; the xxhash
// suffix keeps distinct criteria distinct even after truncation.
func CriteriaKey(c model.Criteria) string {
	text := normalizedText(c)
	safe := sanitizeForKey(text)

	const maxTextLen = 120
	if len(safe) > maxTextLen {
		safe = safe[:maxTextLen]
	}

	sum := xxhash.Sum64String(text)
	return fmt.Sprintf("crit:%s:f=%016x", safe, sum)
}

func normalizedText(c model.Criteria) string {
	wifi := ""
	if c.Wifi != nil {
		if *c.Wifi {
			wifi = "true"
		} else {
			wifi = "false"
		}
	}
	parts := []string{
		"city=" + strings.ToLower(collapseWhitespace(c.City)),
		"cat=" + string(c.Category),
		"wifi=" + wifi,
		"q=" + strings.ToLower(collapseWhitespace(c.Search)),
	}
	return strings.Join(parts, "|")
}

func sanitizeForKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	for _, r := range s {
		var out rune
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			out = '_'
		case isAlphaNum(r) || r == ':' || r == '_' || r == '-' || r == '=' || r == '|':
			out = r
		default:
			// any other rune (including non-ASCII) becomes '-'
			out = '-'
		}
		if (out == '_' || out == '-') && out == prev {
			continue
		}
		b.WriteRune(out)
		prev = out
	}
	return b.String()
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isAlphaNum(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
