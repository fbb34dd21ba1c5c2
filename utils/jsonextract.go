package utils

import "strings"

// ExtractJSON returns the JSON payload of a model reply, stripping an
// optional fenced code block (with or without a language tag such as
// "json") and surrounding whitespace. Input that is not fenced is
// returned trimmed as-is; parsing is left to the caller.
func ExtractJSON(text string) string {
	cleaned := strings.TrimSpace(text)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}
	cleaned = strings.TrimPrefix(cleaned, "```")

	if nl := strings.IndexByte(cleaned, '\n'); nl >= 0 {
		// Drop the rest of the fence line when it is a language tag,
		// not payload content.
		firstLine := strings.TrimSpace(cleaned[:nl])
		if firstLine == "" || !strings.ContainsAny(firstLine, "{[") {
			cleaned = cleaned[nl+1:]
		}
	} else {
		// Single-line fence, e.g. ```json {...}```
		cleaned = strings.TrimPrefix(strings.TrimSpace(cleaned), "json")
	}

	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
