package feed

import (
	"strings"
	"sync"

	"github.com/travelo-app/travelo/internal/models"
)

// Paginator incrementally reveals pages of the filtered feed as the
// viewport approaches the end of the loaded list. The page counter is
// monotonically increasing; filtering always runs over the full set
// before slicing to the current page.
type Paginator struct {
	mu        sync.Mutex
	pageSize  int
	page      int
	term      string
	posts     []models.Post
	advancing bool
}

// NewPaginator creates a paginator starting at page one
func NewPaginator(pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = 9
	}
	return &Paginator{pageSize: pageSize, page: 1}
}

// SetPosts replaces the underlying post set
func (p *Paginator) SetPosts(posts []models.Post) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.posts = posts
}

// SetTerm updates the search term
func (p *Paginator) SetTerm(term string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.term = term
}

// matches reports whether a post matches the search term: a
// case-insensitive substring of its title or body.
func matches(post models.Post, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(post.Title), needle) ||
		strings.Contains(strings.ToLower(post.Body), needle)
}

func (p *Paginator) filteredLocked() []models.Post {
	if p.term == "" {
		return p.posts
	}
	filtered := make([]models.Post, 0, len(p.posts))
	for _, post := range p.posts {
		if matches(post, p.term) {
			filtered = append(filtered, post)
		}
	}
	return filtered
}

// Visible returns the first page*pageSize elements of the filtered set
func (p *Paginator) Visible() []models.Post {
	p.mu.Lock()
	defer p.mu.Unlock()

	filtered := p.filteredLocked()
	limit := p.page * p.pageSize
	if limit > len(filtered) {
		limit = len(filtered)
	}
	return filtered[:limit]
}

// HasMore reports whether more filtered posts exist beyond the visible set
func (p *Paginator) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.filteredLocked()) > p.page*p.pageSize
}

// Page returns the current page counter
func (p *Paginator) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// TryAdvance increments the page in response to a viewport-proximity
// signal. It refuses while a previous advance is still in flight or
// when everything filtered is already visible. Callers must invoke
// FinishAdvance once the revealed page has rendered.
func (p *Paginator) TryAdvance() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.advancing {
		return false
	}
	if len(p.filteredLocked()) <= p.page*p.pageSize {
		return false
	}

	p.advancing = true
	p.page++
	return true
}

// FinishAdvance marks the in-flight page advance as complete
func (p *Paginator) FinishAdvance() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advancing = false
}
