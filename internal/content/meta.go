package content

import (
	"regexp"
	"strings"
)

const wordsPerMinute = 200

// DefaultTag is returned when a post body carries no hashtags.
const DefaultTag = "Blog"

var (
	htmlTagRe = regexp.MustCompile(`<[^>]*>`)
	hashtagRe = regexp.MustCompile(`#(\w+)`)
)

// ReadingTime estimates reading time in whole minutes at 200 words per
// minute, with a floor of one minute.
func ReadingTime(body string) int {
	if body == "" {
		return 1
	}

	text := htmlTagRe.ReplaceAllString(body, " ")
	words := len(strings.Fields(text))

	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// ExtractTags scans the body for #word hashtags, deduplicates them
// preserving first-seen order and truncates to limit. When no hashtag
// is found it returns the default tag.
func ExtractTags(body string, limit int) []string {
	matches := hashtagRe.FindAllStringSubmatch(body, -1)

	seen := make(map[string]bool)
	var tags []string
	for _, m := range matches {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		tags = append(tags, m[1])
		if len(tags) == limit {
			break
		}
	}

	if len(tags) == 0 {
		return []string{DefaultTag}
	}
	return tags
}

// Avatar is a deterministic letter-and-color placeholder for a user.
type Avatar struct {
	Letter string `json:"letter"`
	Color  string `json:"color"`
}

var avatarPalette = []string{
	"#3563E9", // primary
	"#8098F9", // secondary
	"#2E8B57", // forest green
	"#8B5CF6", // purple
	"#EC4899", // pink
	"#F59E0B", // amber
	"#EF4444", // red
}

// GenerateAvatar derives a stable avatar for a username: the uppercased
// first character plus a palette color picked by summing the name's
// code points. Same username, same avatar, every call.
func GenerateAvatar(username string) Avatar {
	if username == "" {
		return Avatar{Letter: "A", Color: avatarPalette[0]}
	}

	sum := 0
	for _, r := range username {
		sum += int(r)
	}

	runes := []rune(username)
	return Avatar{
		Letter: strings.ToUpper(string(runes[0])),
		Color:  avatarPalette[sum%len(avatarPalette)],
	}
}
