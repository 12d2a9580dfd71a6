package hive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/travelo-app/travelo/internal/models"
	"github.com/travelo-app/travelo/pkg/config"
	"github.com/travelo-app/travelo/pkg/logging"
	"github.com/travelo-app/travelo/pkg/telemetry"
)

// Hive timestamps carry no zone suffix
const createdLayout = "2006-01-02T15:04:05"

// Gateway is the read-only surface the rest of the application depends
// on; it is satisfied by Client and by test fakes.
type Gateway interface {
	GetDiscussionsByCreated(ctx context.Context, tag string, limit int) ([]models.Post, error)
	GetDiscussionsByBlog(ctx context.Context, account string, limit int) ([]models.Post, error)
	GetActiveVotes(ctx context.Context, author, permlink string) ([]Vote, error)
	GetAccounts(ctx context.Context, names []string) ([]Account, error)
}

// Vote is one entry of an active-votes lookup
type Vote struct {
	Voter   string `json:"voter"`
	Percent int    `json:"percent"`
}

// Account is the subset of on-chain account data the app reads
type Account struct {
	Name string `json:"name"`
}

// Client wraps the Hive RPC client
type Client struct {
	rpc    *RPCClient
	logger *zap.Logger
}

// New creates a new Hive gateway client
func New(cfg *config.HiveConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("hive_url is required")
	}

	logger := logging.GetLogger().With(zap.String("component", "hive-client"))

	client := &Client{
		rpc:    NewRPCClient(cfg.URL, cfg.Timeout, cfg.RateEvery, logger),
		logger: logger,
	}

	logger.Info("Hive client initialized", zap.String("url", cfg.URL))

	return client, nil
}

// postEnvelope is the wire shape of a condenser post. json_metadata
// arrives either as a JSON-encoded string or, occasionally, as a bare
// object; both are normalized to a string.
type postEnvelope struct {
	Author       string          `json:"author"`
	Permlink     string          `json:"permlink"`
	Title        string          `json:"title"`
	Body         string          `json:"body"`
	Created      string          `json:"created"`
	JSONMetadata json.RawMessage `json:"json_metadata"`
}

func (e *postEnvelope) toPost() models.Post {
	created, err := time.Parse(createdLayout, e.Created)
	if err != nil {
		created = time.Time{}
	}

	meta := string(e.JSONMetadata)
	if len(meta) > 0 && meta[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(e.JSONMetadata, &unquoted); err == nil {
			meta = unquoted
		}
	}

	return models.Post{
		Author:       e.Author,
		Permlink:     e.Permlink,
		Title:        e.Title,
		Body:         e.Body,
		Created:      created,
		JSONMetadata: meta,
	}
}

func envelopesToPosts(raw json.RawMessage) ([]models.Post, error) {
	var envelopes []postEnvelope
	if err := json.Unmarshal(raw, &envelopes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal posts: %w", err)
	}

	posts := make([]models.Post, 0, len(envelopes))
	for i := range envelopes {
		posts = append(posts, envelopes[i].toPost())
	}
	return posts, nil
}

// GetDiscussionsByCreated fetches the newest posts under a tag
func (c *Client) GetDiscussionsByCreated(ctx context.Context, tag string, limit int) ([]models.Post, error) {
	ctx, span := telemetry.StartSpan(ctx, "hive.get_discussions_by_created")
	defer span.End()

	result, err := c.rpc.Call(ctx, "condenser_api", "get_discussions_by_created", []interface{}{
		map[string]interface{}{
			"tag":   tag,
			"limit": limit,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get discussions by created: %w", err)
	}

	return envelopesToPosts(result)
}

// GetDiscussionsByBlog fetches an account's own blog posts
func (c *Client) GetDiscussionsByBlog(ctx context.Context, account string, limit int) ([]models.Post, error) {
	ctx, span := telemetry.StartSpan(ctx, "hive.get_discussions_by_blog")
	defer span.End()

	if account == "" {
		return nil, fmt.Errorf("account name is required")
	}

	result, err := c.rpc.Call(ctx, "condenser_api", "get_discussions_by_blog", []interface{}{
		map[string]interface{}{
			"tag":   account,
			"limit": limit,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get discussions by blog: %w", err)
	}

	return envelopesToPosts(result)
}

// GetActiveVotes fetches the active votes on a post
func (c *Client) GetActiveVotes(ctx context.Context, author, permlink string) ([]Vote, error) {
	ctx, span := telemetry.StartSpan(ctx, "hive.get_active_votes")
	defer span.End()

	result, err := c.rpc.Call(ctx, "condenser_api", "get_active_votes", []interface{}{author, permlink})
	if err != nil {
		return nil, fmt.Errorf("failed to get active votes: %w", err)
	}

	var votes []Vote
	if err := json.Unmarshal(result, &votes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal votes: %w", err)
	}

	return votes, nil
}

// GetAccounts fetches account data for the given names
func (c *Client) GetAccounts(ctx context.Context, names []string) ([]Account, error) {
	ctx, span := telemetry.StartSpan(ctx, "hive.get_accounts")
	defer span.End()

	if len(names) == 0 {
		return nil, fmt.Errorf("no account names provided")
	}
	if len(names) > 1000 {
		return nil, fmt.Errorf("too many accounts: %d (max: 1000)", len(names))
	}

	result, err := c.rpc.Call(ctx, "condenser_api", "get_accounts", []interface{}{names})
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}

	var accounts []Account
	if err := json.Unmarshal(result, &accounts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal accounts: %w", err)
	}

	return accounts, nil
}

// AccountExists reports whether the named account exists on chain
func (c *Client) AccountExists(ctx context.Context, name string) (bool, error) {
	accounts, err := c.GetAccounts(ctx, []string{name})
	if err != nil {
		return false, err
	}
	return len(accounts) > 0, nil
}
