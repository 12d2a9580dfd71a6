package models

// SelectionSet is a set of posts picked for batch tipping, keyed by
// author: at most one post per unique author, in selection order.
type SelectionSet struct {
	posts []Post
}

// Toggle adds the post's author to the selection, or removes the author
// if one of their posts is already selected.
func (s *SelectionSet) Toggle(post Post) {
	for i, p := range s.posts {
		if p.Author == post.Author {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return
		}
	}
	s.posts = append(s.posts, post)
}

// Selected reports whether any post by this author is selected.
func (s *SelectionSet) Selected(author string) bool {
	for _, p := range s.posts {
		if p.Author == author {
			return true
		}
	}
	return false
}

// Authors returns the unique authors in selection order.
func (s *SelectionSet) Authors() []string {
	authors := make([]string, 0, len(s.posts))
	for _, p := range s.posts {
		authors = append(authors, p.Author)
	}
	return authors
}

// Len returns the number of selected authors.
func (s *SelectionSet) Len() int {
	return len(s.posts)
}

// Clear empties the selection.
func (s *SelectionSet) Clear() {
	s.posts = nil
}
