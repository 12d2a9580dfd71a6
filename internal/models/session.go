package models

// Session is the logged-in user state. Created on login, destroyed on
// logout; every orchestrator reads it as a precondition.
type Session struct {
	Username  string `json:"username"`
	PublicKey string `json:"public_key,omitempty"`
}

// LoggedIn reports whether a user is authenticated.
func (s *Session) LoggedIn() bool {
	return s != nil && s.Username != ""
}

// Draft is an unpublished blog post saved locally.
type Draft struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Tags          []string `json:"tags"`
	FeaturedImage string   `json:"featured_image,omitempty"`
	Excerpt       string   `json:"excerpt,omitempty"`
	Category      string   `json:"category,omitempty"`
}
