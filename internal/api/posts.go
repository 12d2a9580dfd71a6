package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/travelo-app/travelo/internal/content"
	"github.com/travelo-app/travelo/internal/feed"
	"github.com/travelo-app/travelo/internal/models"
)

// feedItem is one post as rendered on the feed and profile views.
type feedItem struct {
	Author      string         `json:"author"`
	Permlink    string         `json:"permlink"`
	Title       string         `json:"title"`
	Excerpt     string         `json:"excerpt"`
	CoverImage  string         `json:"cover_image,omitempty"`
	Created     time.Time      `json:"created"`
	ReadingTime int            `json:"reading_time"`
	Tags        []string       `json:"tags"`
	Avatar      content.Avatar `json:"avatar"`
}

func toFeedItem(p models.Post) feedItem {
	tags := p.Metadata().Tags
	if len(tags) == 0 {
		tags = content.ExtractTags(p.Body, 5)
	}
	return feedItem{
		Author:      p.Author,
		Permlink:    p.Permlink,
		Title:       p.Title,
		Excerpt:     excerpt(p.Body, 160),
		CoverImage:  p.CoverImage(),
		Created:     p.Created,
		ReadingTime: content.ReadingTime(p.Body),
		Tags:        tags,
		Avatar:      content.GenerateAvatar(p.Author),
	}
}

// excerpt takes the leading plain text of a body, skipping lines
// consumed by image or heading syntax.
func excerpt(body string, max int) string {
	var parts []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "![") {
			continue
		}
		parts = append(parts, line)
	}
	text := strings.Join(parts, " ")
	if len(text) > max {
		cut := max
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text
}

func (r *Router) feedHandler(c *gin.Context) {
	refresh := c.Query("refresh") == "true"
	term := c.Query("q")
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	posts, err := r.feed.GetPosts(c.Request.Context(), refresh)
	if err != nil {
		r.writeError(c, err)
		return
	}

	p := feed.NewPaginator(r.cfg.Feed.PageSize)
	p.SetPosts(posts)
	p.SetTerm(term)
	for p.Page() < page && p.TryAdvance() {
		p.FinishAdvance()
	}

	visible := p.Visible()
	items := make([]feedItem, 0, len(visible))
	for _, post := range visible {
		items = append(items, toFeedItem(post))
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":    items,
		"page":     p.Page(),
		"has_more": p.HasMore(),
		"status":   r.feed.Status(),
	})
}

func (r *Router) postHandler(c *gin.Context) {
	author := c.Param("author")
	permlink := c.Param("permlink")

	post, err := r.findPost(c, author, permlink)
	if err != nil {
		r.writeError(c, err)
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, errorBody{Error: "post not found", Code: "not_found"})
		return
	}

	item := toFeedItem(*post)
	c.JSON(http.StatusOK, gin.H{
		"author":       post.Author,
		"permlink":     post.Permlink,
		"title":        post.Title,
		"created":      post.Created,
		"blocks":       content.Segment(post.Body),
		"reading_time": item.ReadingTime,
		"tags":         item.Tags,
		"avatar":       item.Avatar,
		"upvoted":      r.actions.Upvoted(c.Request.Context(), post.Author, post.Permlink),
	})
}

// findPost looks in the cached feed first, then in the author's blog.
func (r *Router) findPost(c *gin.Context, author, permlink string) (*models.Post, error) {
	posts, err := r.feed.GetPosts(c.Request.Context(), false)
	if err == nil {
		for i := range posts {
			if posts[i].Author == author && posts[i].Permlink == permlink {
				return &posts[i], nil
			}
		}
	} else {
		r.logger.Warn("Feed lookup failed, falling back to blog fetch", zap.Error(err))
	}

	blog, err := r.feed.ProfilePosts(c.Request.Context(), author, r.cfg.Feed.Limit)
	if err != nil {
		return nil, err
	}
	for i := range blog {
		if blog[i].Permlink == permlink {
			return &blog[i], nil
		}
	}
	return nil, nil
}

func (r *Router) profileHandler(c *gin.Context) {
	account := c.Param("account")

	posts, err := r.feed.ProfilePosts(c.Request.Context(), account, r.cfg.Feed.Limit)
	if err != nil {
		r.writeError(c, err)
		return
	}

	items := make([]feedItem, 0, len(posts))
	for _, post := range posts {
		items = append(items, toFeedItem(post))
	}

	c.JSON(http.StatusOK, gin.H{
		"account": account,
		"avatar":  content.GenerateAvatar(account),
		"posts":   items,
	})
}

func (r *Router) publishHandler(c *gin.Context) {
	var draft models.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body", Code: "validation"})
		return
	}

	result, err := r.actions.Publish(c.Request.Context(), draft)
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (r *Router) draftGetHandler(c *gin.Context) {
	draft, err := r.actions.Draft(c.Request.Context())
	if err != nil {
		r.writeError(c, err)
		return
	}
	if draft == nil {
		c.JSON(http.StatusNotFound, errorBody{Error: "no saved draft", Code: "not_found"})
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (r *Router) draftSaveHandler(c *gin.Context) {
	var draft models.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body", Code: "validation"})
		return
	}
	if err := r.actions.SaveDraft(c.Request.Context(), draft); err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

func (r *Router) draftDeleteHandler(c *gin.Context) {
	if err := r.actions.DiscardDraft(c.Request.Context()); err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
