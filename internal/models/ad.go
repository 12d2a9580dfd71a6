package models

import "time"

// AdPlan is an advertising tier. Plans gate image support and duration.
type AdPlan struct {
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	DurationHours int      `json:"duration_hours"`
	MaxImages     int      `json:"max_images"`
	Features      []string `json:"features"`
}

// The fixed advertising tiers offered on the home page.
var AdPlans = []AdPlan{
	{
		Name:          "Basic",
		Price:         10,
		DurationHours: 24,
		MaxImages:     0,
		Features:      []string{"Basic ad placement", "24-hour duration", "Text-only ad", "Basic analytics"},
	},
	{
		Name:          "Premium",
		Price:         25,
		DurationHours: 72,
		MaxImages:     1,
		Features:      []string{"Premium placement", "72-hour duration", "Image support", "Advanced analytics", "Target audience selection"},
	},
	{
		Name:          "Enterprise",
		Price:         50,
		DurationHours: 168,
		MaxImages:     10,
		Features:      []string{"Top placement", "7-day duration", "Multiple images", "Full analytics suite", "Priority support", "Custom targeting", "Category selection"},
	},
}

// PlanByName looks up an advertising plan; returns nil if unknown.
func PlanByName(name string) *AdPlan {
	for i := range AdPlans {
		if AdPlans[i].Name == name {
			return &AdPlans[i]
		}
	}
	return nil
}

// AdPlacement is a paid advertisement created after a confirmed payment.
// It is logically destroyed once ExpiresAt passes.
type AdPlacement struct {
	CompanyName    string    `json:"company_name"`
	Description    string    `json:"description"`
	WebsiteURL     string    `json:"website_url"`
	Budget         float64   `json:"budget"`
	Images         []string  `json:"images,omitempty"`
	TargetAudience string    `json:"target_audience,omitempty"`
	Category       string    `json:"category,omitempty"`
	Plan           string    `json:"plan"`
	DurationHours  int       `json:"duration_hours"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// Expired reports whether the placement has passed its expiry time.
func (a *AdPlacement) Expired(now time.Time) bool {
	return now.After(a.ExpiresAt)
}
