package weekly

import (
	"strings"

	"github.com/yanqian/skinsight/pkg/util"
)

const dedupePrefixRunes = 20

// MergeItems puts AI items first, then adds rule items whose lowercase
// 20-rune prefix does not appear in any kept item, capped at limit. Without
// AI items the rule list is returned unmodified.
func MergeItems(ai, rules []string, limit int) []string {
	if limit <= 0 {
		limit = defaultMaxItems
	}
	kept := util.NormalizeList(ai)
	if len(kept) == 0 {
		return append([]string{}, rules...)
	}
	lowered := make([]string, 0, len(kept)+len(rules))
	for _, item := range kept {
		lowered = append(lowered, strings.ToLower(item))
	}
	for _, item := range util.NormalizeList(rules) {
		prefix := prefixRunes(strings.ToLower(item), dedupePrefixRunes)
		duplicate := false
		for _, existing := range lowered {
			if strings.Contains(existing, prefix) {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		kept = append(kept, item)
		lowered = append(lowered, strings.ToLower(item))
	}
	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

func prefixRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
