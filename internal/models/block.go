package models

// BlockType identifies a content block variant.
type BlockType string

const (
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockDivider   BlockType = "divider"
	BlockImages    BlockType = "imageGroup"
	BlockIFrame    BlockType = "iframe"
)

// Image is a single image reference inside an image group.
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// ContentBlock is one typed section of a segmented post body. The Type
// field selects the variant; only the fields for that variant are set.
// Block order always matches source order.
type ContentBlock struct {
	Type   BlockType `json:"type"`
	Level  int       `json:"level,omitempty"`  // heading only, 1..6
	HTML   string    `json:"html,omitempty"`   // heading, paragraph, iframe
	Images []Image   `json:"images,omitempty"` // imageGroup only
}
