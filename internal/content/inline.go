package content

import "regexp"

// Inline markdown rules. Bold must run before italic so that **bold**
// is not partially consumed by the italic rule. The italic body must be
// non-empty and asterisk-free, otherwise an unterminated ** would match
// as an empty emphasis and the literal asterisks would vanish.
var (
	boldRe     = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe   = regexp.MustCompile(`\*([^*]+)\*`)
	linkRe     = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	codeRe     = regexp.MustCompile("`([^`]+)`")
	quoteRe    = regexp.MustCompile(`(?m)^>\s(.+)`)
	bulletRe   = regexp.MustCompile(`(?m)^\s*[-*]\s+(.+)`)
	numberedRe = regexp.MustCompile(`(?m)^\s*\d+\.\s+(.+)`)
)

// RenderInline converts a line of pseudo-markdown into HTML fragments.
// It is total: malformed markdown degrades into literal text, never an
// error. The output is unsanitized; callers pass it through
// SanitizeInline before handing it to the presentation layer.
func RenderInline(text string) string {
	if text == "" {
		return ""
	}

	out := boldRe.ReplaceAllString(text, "<strong>$1</strong>")
	out = italicRe.ReplaceAllString(out, "<em>$1</em>")
	out = linkRe.ReplaceAllString(out, `<a href="$2" target="_blank" rel="noopener noreferrer">$1</a>`)
	out = codeRe.ReplaceAllString(out, "<code>$1</code>")
	out = quoteRe.ReplaceAllString(out, "<blockquote>$1</blockquote>")
	out = bulletRe.ReplaceAllString(out, "<li>$1</li>")
	out = numberedRe.ReplaceAllString(out, "<li>$1</li>")

	return out
}
