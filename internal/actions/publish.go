package actions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/travelo-app/travelo/internal/content"
	"github.com/travelo-app/travelo/internal/models"
	"github.com/travelo-app/travelo/internal/wallet"
	"github.com/travelo-app/travelo/pkg/telemetry"
)

const (
	maxBodyLength = 64000
	maxTagCount   = 5
	// Payout settings applied to every published post
	maxAcceptedPayout = "1000000.000 HBD"
	percentHBD        = 10000
)

// postMetadata is the json_metadata attached to a published post.
type postMetadata struct {
	Tags        []string `json:"tags"`
	App         string   `json:"app"`
	Format      string   `json:"format"`
	Description string   `json:"description"`
	Image       []string `json:"image,omitempty"`
}

// commentOptions carries payout and curation settings alongside the
// comment operation.
type commentOptions struct {
	Author               string        `json:"author"`
	Permlink             string        `json:"permlink"`
	MaxAcceptedPayout    string        `json:"max_accepted_payout"`
	PercentHBD           int           `json:"percent_hbd"`
	AllowVotes           bool          `json:"allow_votes"`
	AllowCurationRewards bool          `json:"allow_curation_rewards"`
	Extensions           []interface{} `json:"extensions"`
}

// PublishResult reports where the new post landed.
type PublishResult struct {
	Author   string `json:"author"`
	Permlink string `json:"permlink"`
}

// Publish broadcasts a blog post through the wallet. The permlink is a
// time-based unique token, an attribution line is appended to the body,
// and the saved draft is cleared once the wallet confirms.
func (s *Service) Publish(ctx context.Context, draft models.Draft) (PublishResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "actions.publish")
	defer span.End()

	draft.Title = strings.TrimSpace(draft.Title)
	if draft.Title == "" {
		return PublishResult{}, &ValidationError{Field: "title", Reason: "title is required"}
	}
	if strings.TrimSpace(draft.Content) == "" {
		return PublishResult{}, &ValidationError{Field: "content", Reason: "content is required"}
	}

	sess, err := s.session(ctx)
	if err != nil {
		return PublishResult{}, err
	}
	if err := s.requireWallet(); err != nil {
		return PublishResult{}, err
	}

	body := draft.Content + fmt.Sprintf("\n\nPublished by @%s on Hive.", sess.Username)
	if len(body) > maxBodyLength {
		return PublishResult{}, &ValidationError{
			Field:  "content",
			Reason: fmt.Sprintf("body exceeds %d characters", maxBodyLength),
		}
	}

	tags := draft.Tags
	if len(tags) == 0 {
		tags = content.ExtractTags(draft.Content, maxTagCount)
	}

	permlink := fmt.Sprintf("hive-blog-%d", s.now().UnixMilli())

	meta := postMetadata{
		Tags:        tags,
		App:         s.cfg.Platform.App,
		Format:      "markdown",
		Description: truncate(draft.Title, 160),
	}
	if draft.FeaturedImage != "" {
		meta.Image = []string{draft.FeaturedImage}
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return PublishResult{}, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	optsJSON, err := json.Marshal(commentOptions{
		Author:               sess.Username,
		Permlink:             permlink,
		MaxAcceptedPayout:    maxAcceptedPayout,
		PercentHBD:           percentHBD,
		AllowVotes:           true,
		AllowCurationRewards: true,
		Extensions:           []interface{}{},
	})
	if err != nil {
		return PublishResult{}, fmt.Errorf("failed to marshal comment options: %w", err)
	}

	category := draft.Category
	if category == "" {
		category = s.cfg.Platform.Category
	}

	// Advisory pre-check
	if accounts, err := s.gateway.GetAccounts(ctx, []string{sess.Username}); err != nil {
		s.logger.Warn("Author pre-check failed", zap.Error(err))
	} else if len(accounts) == 0 {
		s.logger.Warn("Author not found on chain, proceeding",
			zap.String("author", sess.Username))
	}

	resp, err := s.bridge.Post(ctx, wallet.PostPayload{
		Username:       sess.Username,
		Title:          draft.Title,
		Body:           body,
		ParentAuthor:   "",
		ParentPermlink: category,
		JSONMetadata:   string(metaJSON),
		Permlink:       permlink,
		CommentOptions: string(optsJSON),
	})
	if err != nil {
		return PublishResult{}, fmt.Errorf("failed to reach wallet: %w", err)
	}
	if !resp.Success {
		return PublishResult{}, &RemoteRejection{Op: "publish", Reason: resp.Reason()}
	}

	if err := s.state.ClearDraft(ctx); err != nil {
		s.logger.Warn("Failed to clear draft after publish", zap.Error(err))
	}

	s.logger.Info("Post published",
		zap.String("author", sess.Username),
		zap.String("permlink", permlink))

	return PublishResult{Author: sess.Username, Permlink: permlink}, nil
}

// SaveDraft stores an unpublished post for later editing
func (s *Service) SaveDraft(ctx context.Context, draft models.Draft) error {
	if strings.TrimSpace(draft.Title) == "" && strings.TrimSpace(draft.Content) == "" {
		return &ValidationError{Field: "draft", Reason: "draft is empty"}
	}
	return s.state.SetDraft(ctx, draft)
}

// Draft returns the saved draft, or nil when none exists
func (s *Service) Draft(ctx context.Context) (*models.Draft, error) {
	return s.state.Draft(ctx)
}

// DiscardDraft removes the saved draft
func (s *Service) DiscardDraft(ctx context.Context) error {
	return s.state.ClearDraft(ctx)
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
