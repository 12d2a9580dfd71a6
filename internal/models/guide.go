package models

import "time"

// Guide is a paid informational content bundle purchasable via an
// on-chain transfer to its author.
type Guide struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Preview     string  `json:"preview,omitempty"`
}

// GuideCatalog is the fixed set of guides offered for purchase.
var GuideCatalog = []Guide{
	{
		ID:          "bali-hidden-gems",
		Title:       "Bali Hidden Gems",
		Author:      "wanderlust-maya",
		Price:       5,
		Description: "Off-the-beaten-path temples, waterfalls and warungs across Bali.",
		Preview:     "Skip Kuta. Start in Sidemen.",
	},
	{
		ID:          "patagonia-trekking",
		Title:       "Patagonia Trekking Guide",
		Author:      "trailhead-sam",
		Price:       8,
		Description: "Route planning, refugios and weather windows for Torres del Paine and Fitz Roy.",
		Preview:     "The W circuit in five days, booked right.",
	},
	{
		ID:          "japan-rail-budget",
		Title:       "Japan by Rail on a Budget",
		Author:      "nomad-kenji",
		Price:       6,
		Description: "Rail pass math, regional passes and overnight routes that save a hotel night.",
		Preview:     "When the JR Pass is NOT worth it.",
	},
}

// GuideByID looks up a catalog guide; returns nil if unknown.
func GuideByID(id string) *Guide {
	for i := range GuideCatalog {
		if GuideCatalog[i].ID == id {
			return &GuideCatalog[i]
		}
	}
	return nil
}

// GuideReceipt records a confirmed guide purchase.
type GuideReceipt struct {
	GuideID     string    `json:"id"`
	PurchasedAt time.Time `json:"purchase_date"`
}
