package feed

import (
	"fmt"
	"testing"

	"github.com/travelo-app/travelo/internal/models"
)

func makePosts(n int) []models.Post {
	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, models.Post{
			Author:   fmt.Sprintf("author%d", i),
			Permlink: fmt.Sprintf("post-%d", i),
			Title:    fmt.Sprintf("Adventure %d", i),
			Body:     fmt.Sprintf("body text %d", i),
		})
	}
	return posts
}

func TestPaginatorVisible(t *testing.T) {
	p := NewPaginator(9)
	p.SetPosts(makePosts(25))

	if got := len(p.Visible()); got != 9 {
		t.Errorf("Expected first page of 9, got %d", got)
	}
	if !p.HasMore() {
		t.Error("Expected more posts beyond the first page")
	}

	if !p.TryAdvance() {
		t.Fatal("Expected advance to succeed")
	}
	p.FinishAdvance()

	if got := len(p.Visible()); got != 18 {
		t.Errorf("Expected 18 visible after one advance, got %d", got)
	}
}

func TestPaginatorAdvanceGuards(t *testing.T) {
	p := NewPaginator(9)
	p.SetPosts(makePosts(12))

	// First advance reveals the remainder
	if !p.TryAdvance() {
		t.Fatal("Expected advance to succeed")
	}

	// In-flight guard: no second advance until FinishAdvance
	if p.TryAdvance() {
		t.Error("Expected advance to be refused while one is in flight")
	}
	p.FinishAdvance()

	// Everything visible now: no further advance
	if p.TryAdvance() {
		t.Error("Expected advance to be refused when all posts are visible")
	}
	if got := len(p.Visible()); got != 12 {
		t.Errorf("Expected all 12 visible, got %d", got)
	}
}

func TestPaginatorFilter(t *testing.T) {
	p := NewPaginator(9)
	p.SetPosts([]models.Post{
		{Title: "Beach Days", Body: "sand and sun"},
		{Title: "Mountain Trek", Body: "snow and ice"},
		{Title: "City Guide", Body: "the BEACH bars downtown"},
	})

	p.SetTerm("beach")
	visible := p.Visible()
	if len(visible) != 2 {
		t.Fatalf("Expected 2 matches for %q, got %d", "beach", len(visible))
	}
	// Case-insensitive over title and body, source order preserved
	if visible[0].Title != "Beach Days" || visible[1].Title != "City Guide" {
		t.Errorf("Unexpected filtered posts: %+v", visible)
	}

	p.SetTerm("")
	if len(p.Visible()) != 3 {
		t.Error("Expected clearing the term to restore the full set")
	}
}

func TestPaginatorFilterAppliesBeforeSlicing(t *testing.T) {
	p := NewPaginator(2)
	posts := makePosts(10)
	// Make posts 5..9 match a term the others do not
	for i := 5; i < 10; i++ {
		posts[i].Title = fmt.Sprintf("Hidden Gem %d", i)
	}
	p.SetPosts(posts)
	p.SetTerm("hidden")

	visible := p.Visible()
	if len(visible) != 2 {
		t.Fatalf("Expected page-sized slice of matches, got %d", len(visible))
	}
	// The slice comes from the filtered set, not the raw set
	if visible[0].Title != "Hidden Gem 5" {
		t.Errorf("Filter was applied after slicing: %+v", visible)
	}
}
