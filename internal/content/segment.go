package content

import (
	"regexp"
	"strings"

	"github.com/travelo-app/travelo/internal/models"
)

var (
	headingRe = regexp.MustCompile(`^(#{1,6})\s*(.*)$`)
	dividerRe = regexp.MustCompile(`^(-{3,}|\*{3,})$`)
	imageRe   = regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`)
)

// Segment scans a raw post body line by line and produces an ordered
// sequence of typed content blocks. Consecutive image-reference lines
// collapse into a single image group; blank-line-delimited runs of text
// collapse into one paragraph. Empty or whitespace-only input yields an
// empty sequence.
func Segment(raw string) []models.ContentBlock {
	blocks := []models.ContentBlock{}
	if strings.TrimSpace(raw) == "" {
		return blocks
	}

	lines := strings.Split(raw, "\n")
	var para []string

	flush := func() {
		text := strings.TrimSpace(strings.Join(para, " "))
		para = para[:0]
		if text == "" {
			return
		}
		blocks = append(blocks, models.ContentBlock{
			Type: models.BlockParagraph,
			HTML: SanitizeInline(RenderInline(text)),
		})
	}

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if strings.HasPrefix(line, "#") {
			if m := headingRe.FindStringSubmatch(line); m != nil {
				flush()
				blocks = append(blocks, models.ContentBlock{
					Type:  models.BlockHeading,
					Level: len(m[1]),
					HTML:  SanitizeInline(RenderInline(m[2])),
				})
				continue
			}
		}

		if dividerRe.MatchString(line) {
			flush()
			blocks = append(blocks, models.ContentBlock{Type: models.BlockDivider})
			continue
		}

		if m := imageRe.FindStringSubmatch(line); m != nil {
			flush()
			images := []models.Image{{Alt: m[1], URL: m[2]}}
			// Greedily consume immediately-following image lines into
			// the same group.
			for i+1 < len(lines) {
				next := imageRe.FindStringSubmatch(strings.TrimSpace(lines[i+1]))
				if next == nil {
					break
				}
				images = append(images, models.Image{Alt: next[1], URL: next[2]})
				i++
			}
			blocks = append(blocks, models.ContentBlock{Type: models.BlockImages, Images: images})
			continue
		}

		if strings.Contains(line, "<iframe") {
			flush()
			blocks = append(blocks, models.ContentBlock{
				Type: models.BlockIFrame,
				HTML: SanitizeEmbed(line),
			})
			continue
		}

		if line == "" {
			flush()
			continue
		}

		para = append(para, line)
	}

	flush()
	return blocks
}
