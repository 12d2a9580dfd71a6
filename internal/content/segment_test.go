package content

import (
	"strings"
	"testing"

	"github.com/travelo-app/travelo/internal/models"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []models.ContentBlock
	}{
		{
			name:     "empty input",
			raw:      "",
			expected: []models.ContentBlock{},
		},
		{
			name:     "whitespace only",
			raw:      "  \n\t\n   ",
			expected: []models.ContentBlock{},
		},
		{
			name: "single paragraph",
			raw:  "hello world",
			expected: []models.ContentBlock{
				{Type: models.BlockParagraph, HTML: "hello world"},
			},
		},
		{
			name: "multi-line paragraph joined with single spaces",
			raw:  "first line\nsecond line\nthird line",
			expected: []models.ContentBlock{
				{Type: models.BlockParagraph, HTML: "first line second line third line"},
			},
		},
		{
			name: "blank line splits paragraphs",
			raw:  "one\n\ntwo",
			expected: []models.ContentBlock{
				{Type: models.BlockParagraph, HTML: "one"},
				{Type: models.BlockParagraph, HTML: "two"},
			},
		},
		{
			name: "heading levels",
			raw:  "# Top\ntext\n### Deep",
			expected: []models.ContentBlock{
				{Type: models.BlockHeading, Level: 1, HTML: "Top"},
				{Type: models.BlockParagraph, HTML: "text"},
				{Type: models.BlockHeading, Level: 3, HTML: "Deep"},
			},
		},
		{
			name: "heading flushes accumulator",
			raw:  "intro text\n## Section",
			expected: []models.ContentBlock{
				{Type: models.BlockParagraph, HTML: "intro text"},
				{Type: models.BlockHeading, Level: 2, HTML: "Section"},
			},
		},
		{
			name: "dash divider",
			raw:  "above\n---\nbelow",
			expected: []models.ContentBlock{
				{Type: models.BlockParagraph, HTML: "above"},
				{Type: models.BlockDivider},
				{Type: models.BlockParagraph, HTML: "below"},
			},
		},
		{
			name: "asterisk divider",
			raw:  "*****",
			expected: []models.ContentBlock{
				{Type: models.BlockDivider},
			},
		},
		{
			name: "single image",
			raw:  "![beach](https://img.example/beach.jpg)",
			expected: []models.ContentBlock{
				{Type: models.BlockImages, Images: []models.Image{
					{Alt: "beach", URL: "https://img.example/beach.jpg"},
				}},
			},
		},
		{
			name: "consecutive images collapse into one group",
			raw:  "![a](https://x/a.jpg)\n![b](https://x/b.jpg)\n![c](https://x/c.jpg)\ntext after",
			expected: []models.ContentBlock{
				{Type: models.BlockImages, Images: []models.Image{
					{Alt: "a", URL: "https://x/a.jpg"},
					{Alt: "b", URL: "https://x/b.jpg"},
					{Alt: "c", URL: "https://x/c.jpg"},
				}},
				{Type: models.BlockParagraph, HTML: "text after"},
			},
		},
		{
			name: "image run at end of input still closes",
			raw:  "intro\n![a](https://x/a.jpg)\n![b](https://x/b.jpg)",
			expected: []models.ContentBlock{
				{Type: models.BlockParagraph, HTML: "intro"},
				{Type: models.BlockImages, Images: []models.Image{
					{Alt: "a", URL: "https://x/a.jpg"},
					{Alt: "b", URL: "https://x/b.jpg"},
				}},
			},
		},
		{
			name: "separated images produce separate groups",
			raw:  "![a](https://x/a.jpg)\n\nmiddle\n\n![b](https://x/b.jpg)",
			expected: []models.ContentBlock{
				{Type: models.BlockImages, Images: []models.Image{{Alt: "a", URL: "https://x/a.jpg"}}},
				{Type: models.BlockParagraph, HTML: "middle"},
				{Type: models.BlockImages, Images: []models.Image{{Alt: "b", URL: "https://x/b.jpg"}}},
			},
		},
		{
			name: "iframe embed",
			raw:  "before\n<iframe src=\"https://www.youtube.com/embed/abc\" allowfullscreen></iframe>\nafter",
			expected: []models.ContentBlock{
				{Type: models.BlockParagraph, HTML: "before"},
				{Type: models.BlockIFrame, HTML: "<iframe src=\"https://www.youtube.com/embed/abc\" allowfullscreen=\"\"></iframe>"},
				{Type: models.BlockParagraph, HTML: "after"},
			},
		},
		{
			name: "trailing accumulator flushed as final paragraph",
			raw:  "# Title\nclosing words",
			expected: []models.ContentBlock{
				{Type: models.BlockHeading, Level: 1, HTML: "Title"},
				{Type: models.BlockParagraph, HTML: "closing words"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.raw)
			if len(got) != len(tt.expected) {
				t.Fatalf("Segment() returned %d blocks, want %d: %+v", len(got), len(tt.expected), got)
			}
			for i := range got {
				if got[i].Type != tt.expected[i].Type {
					t.Errorf("block %d type = %q, want %q", i, got[i].Type, tt.expected[i].Type)
				}
				if got[i].Level != tt.expected[i].Level {
					t.Errorf("block %d level = %d, want %d", i, got[i].Level, tt.expected[i].Level)
				}
				if got[i].HTML != tt.expected[i].HTML {
					t.Errorf("block %d html = %q, want %q", i, got[i].HTML, tt.expected[i].HTML)
				}
				if len(got[i].Images) != len(tt.expected[i].Images) {
					t.Fatalf("block %d has %d images, want %d", i, len(got[i].Images), len(tt.expected[i].Images))
				}
				for j := range got[i].Images {
					if got[i].Images[j] != tt.expected[i].Images[j] {
						t.Errorf("block %d image %d = %+v, want %+v", i, j, got[i].Images[j], tt.expected[i].Images[j])
					}
				}
			}
		})
	}
}

func TestSegmentNeverYieldsAdjacentImageGroups(t *testing.T) {
	raw := strings.Join([]string{
		"![one](https://x/1.png)",
		"![two](https://x/2.png)",
		"![three](https://x/3.png)",
	}, "\n")

	blocks := Segment(raw)
	if len(blocks) != 1 {
		t.Fatalf("expected exactly one image group, got %d blocks", len(blocks))
	}
	if blocks[0].Type != models.BlockImages {
		t.Fatalf("expected image group, got %q", blocks[0].Type)
	}
	if len(blocks[0].Images) != 3 {
		t.Errorf("expected 3 images in group, got %d", len(blocks[0].Images))
	}
	// Order preserved
	if blocks[0].Images[0].Alt != "one" || blocks[0].Images[2].Alt != "three" {
		t.Errorf("image order not preserved: %+v", blocks[0].Images)
	}
}

func TestSegmentPreservesNonStructuralText(t *testing.T) {
	raw := "alpha beta\ngamma\n\n# Heading\ndelta epsilon"

	blocks := Segment(raw)

	var joined strings.Builder
	for _, b := range blocks {
		joined.WriteString(b.HTML)
		joined.WriteString(" ")
	}
	for _, word := range []string{"alpha", "beta", "gamma", "Heading", "delta", "epsilon"} {
		if !strings.Contains(joined.String(), word) {
			t.Errorf("word %q lost during segmentation", word)
		}
	}
}
