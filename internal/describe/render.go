// Package describe expands the studio's default-description template into
// the final description text for one job.
package describe

import "strings"

// Placeholder tokens recognized in a description template. They are matched
// as verbatim substrings; no other substitution occurs.
const (
	KeywordPlaceholder = "KEYWORD"
	TitlePlaceholder   = "TITLE"
)

// Render substitutes every TITLE occurrence with title and every KEYWORD
// occurrence with the keywords cycled in order, wrapping when there are more
// occurrences than keywords.
//
// Empty-keyword policy: with no keywords, each KEYWORD placeholder is removed
// outright. A single space is swallowed at the seam so "a KEYWORD b" renders
// as "a b", and the final text is whitespace-trimmed. No fallback sentence is
// inserted.
//
// Substituted text is never rescanned, so a title containing a placeholder
// token passes through untouched.
func Render(template, title string, keywords []string) string {
	var b strings.Builder
	b.Grow(len(template))

	rest := template
	next := 0
	lastByte := byte(0)

	writeString := func(s string) {
		if s == "" {
			return
		}
		b.WriteString(s)
		lastByte = s[len(s)-1]
	}

	for {
		ki := strings.Index(rest, KeywordPlaceholder)
		ti := strings.Index(rest, TitlePlaceholder)
		if ki < 0 && ti < 0 {
			writeString(rest)
			break
		}

		idx, token := ki, KeywordPlaceholder
		if ki < 0 || (ti >= 0 && ti < ki) {
			idx, token = ti, TitlePlaceholder
		}

		writeString(rest[:idx])
		rest = rest[idx+len(token):]

		if token == TitlePlaceholder {
			writeString(title)
			continue
		}

		if len(keywords) == 0 {
			// Placeholder removal: swallow one space of a doubled seam.
			if lastByte == ' ' && strings.HasPrefix(rest, " ") {
				rest = rest[1:]
			}
			continue
		}

		writeString(keywords[next%len(keywords)])
		next++
	}

	out := b.String()
	if len(keywords) == 0 {
		out = strings.TrimSpace(out)
	}
	return out
}
