package content

import "github.com/microcosm-cc/bluemonday"

// Post bodies come straight off the chain, so everything the renderer
// produces is filtered through an allow-list before display.

// inlinePolicy covers markup produced by RenderInline.
var inlinePolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("strong", "em", "code", "blockquote", "ul", "ol", "li",
		"h1", "h2", "h3", "h4", "h5", "h6", "p", "br")
	p.AllowAttrs("href", "target", "rel").OnElements("a")
	p.AllowStandardURLs()
	// Keep the renderer's rel attribute as-is instead of forcing nofollow
	p.RequireNoFollowOnLinks(false)
	p.RequireNoFollowOnFullyQualifiedLinks(false)
	return p
}()

// embedPolicy covers raw iframe embeds. Only the attributes a video
// embed actually needs survive.
var embedPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowAttrs("src", "width", "height", "frameborder", "allowfullscreen", "allow", "title").OnElements("iframe")
	p.AllowStandardURLs()
	return p
}()

// SanitizeInline filters rendered inline markup through the allow-list.
func SanitizeInline(html string) string {
	return inlinePolicy.Sanitize(html)
}

// SanitizeEmbed filters a raw iframe line through the embed allow-list.
func SanitizeEmbed(html string) string {
	return embedPolicy.Sanitize(html)
}
