package util

import "strings"

// StripCodeFences removes the markdown fences models like to wrap JSON in.
func StripCodeFences(raw string) string {
	sanitized := strings.TrimSpace(raw)
	sanitized = strings.TrimPrefix(sanitized, "```json")
	sanitized = strings.TrimSuffix(sanitized, "```")
	sanitized = strings.Trim(sanitized, "`")
	return strings.TrimSpace(strings.TrimPrefix(sanitized, "json"))
}

// NormalizeList trims items and drops blanks and exact duplicates, keeping order.
func NormalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{})
	for _, item := range items {
		clean := strings.TrimSpace(item)
		if clean == "" {
			continue
		}
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}
	return out
}
