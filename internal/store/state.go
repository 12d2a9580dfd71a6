package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/travelo-app/travelo/internal/models"
)

// State wraps a Store with typed accessors for each persisted record.
type State struct {
	store Store
}

// NewState creates typed state accessors over a backend
func NewState(s Store) *State {
	return &State{store: s}
}

// Session reads the stored session; an absent session is a zero value,
// not an error.
func (s *State) Session(ctx context.Context) (models.Session, error) {
	var sess models.Session

	username, err := s.store.Get(ctx, KeyUsername)
	if errors.Is(err, ErrNotFound) {
		return sess, nil
	}
	if err != nil {
		return sess, fmt.Errorf("failed to read session: %w", err)
	}
	sess.Username = string(username)

	if key, err := s.store.Get(ctx, KeyPublicKey); err == nil {
		sess.PublicKey = string(key)
	}
	return sess, nil
}

// SetSession persists a session after a successful login
func (s *State) SetSession(ctx context.Context, sess models.Session) error {
	if err := s.store.Set(ctx, KeyUsername, []byte(sess.Username)); err != nil {
		return fmt.Errorf("failed to store username: %w", err)
	}
	if err := s.store.Set(ctx, KeyPublicKey, []byte(sess.PublicKey)); err != nil {
		return fmt.Errorf("failed to store public key: %w", err)
	}
	return nil
}

// ClearSession destroys the session on logout
func (s *State) ClearSession(ctx context.Context) error {
	if err := s.store.Delete(ctx, KeyUsername); err != nil {
		return err
	}
	return s.store.Delete(ctx, KeyPublicKey)
}

// FeedSnapshot reads the cached feed; nil when none is stored.
func (s *State) FeedSnapshot(ctx context.Context) (*models.FeedSnapshot, error) {
	raw, err := s.store.Get(ctx, KeyCachedFeed)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached feed: %w", err)
	}

	var snap models.FeedSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		// A corrupt cache entry behaves like no cache entry.
		return nil, nil
	}
	return &snap, nil
}

// SetFeedSnapshot stores a fresh feed snapshot
func (s *State) SetFeedSnapshot(ctx context.Context, snap models.FeedSnapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal feed snapshot: %w", err)
	}
	return s.store.Set(ctx, KeyCachedFeed, raw)
}

// CurrentAd reads the active ad placement. Expired placements are
// removed and reported as absent.
func (s *State) CurrentAd(ctx context.Context, now time.Time) (*models.AdPlacement, error) {
	raw, err := s.store.Get(ctx, KeyCurrentAd)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read current ad: %w", err)
	}

	var ad models.AdPlacement
	if err := json.Unmarshal(raw, &ad); err != nil {
		return nil, nil
	}

	if ad.Expired(now) {
		_ = s.store.Delete(ctx, KeyCurrentAd)
		return nil, nil
	}
	return &ad, nil
}

// SetCurrentAd stores a newly paid ad placement
func (s *State) SetCurrentAd(ctx context.Context, ad models.AdPlacement) error {
	raw, err := json.Marshal(ad)
	if err != nil {
		return fmt.Errorf("failed to marshal ad placement: %w", err)
	}
	return s.store.Set(ctx, KeyCurrentAd, raw)
}

// Draft reads the saved blog draft; nil when none is stored.
func (s *State) Draft(ctx context.Context) (*models.Draft, error) {
	raw, err := s.store.Get(ctx, KeyDraft)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}

	var draft models.Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, nil
	}
	return &draft, nil
}

// SetDraft saves a blog draft
func (s *State) SetDraft(ctx context.Context, draft models.Draft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	return s.store.Set(ctx, KeyDraft, raw)
}

// ClearDraft removes the saved draft
func (s *State) ClearDraft(ctx context.Context) error {
	return s.store.Delete(ctx, KeyDraft)
}

// Receipts reads the purchased-guide receipts
func (s *State) Receipts(ctx context.Context) ([]models.GuideReceipt, error) {
	raw, err := s.store.Get(ctx, KeyPurchasedGuides)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read receipts: %w", err)
	}

	var receipts []models.GuideReceipt
	if err := json.Unmarshal(raw, &receipts); err != nil {
		return nil, nil
	}
	return receipts, nil
}

// AppendReceipt records a confirmed guide purchase
func (s *State) AppendReceipt(ctx context.Context, receipt models.GuideReceipt) error {
	receipts, err := s.Receipts(ctx)
	if err != nil {
		return err
	}
	receipts = append(receipts, receipt)

	raw, err := json.Marshal(receipts)
	if err != nil {
		return fmt.Errorf("failed to marshal receipts: %w", err)
	}
	return s.store.Set(ctx, KeyPurchasedGuides, raw)
}

// MarkUpvoted records that the session user upvoted a post
func (s *State) MarkUpvoted(ctx context.Context, author, permlink string) error {
	return s.store.Set(ctx, keyUpvotedPrefix+author+"/"+permlink, []byte("1"))
}

// Upvoted reports whether the session user already upvoted a post
func (s *State) Upvoted(ctx context.Context, author, permlink string) bool {
	_, err := s.store.Get(ctx, keyUpvotedPrefix+author+"/"+permlink)
	return err == nil
}
