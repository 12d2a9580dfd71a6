package actions

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/travelo-app/travelo/internal/wallet"
	"github.com/travelo-app/travelo/pkg/telemetry"
)

// Full-strength upvote; partial weights are not offered.
const voteWeight = 10000

// Vote broadcasts a 100% upvote on the given post. An already-cast
// vote detected by the advisory pre-check is logged but does not block
// the dispatch; the chain treats a repeat vote as an update.
func (s *Service) Vote(ctx context.Context, author, permlink string) error {
	ctx, span := telemetry.StartSpan(ctx, "actions.vote")
	defer span.End()

	if author == "" || permlink == "" {
		return &ValidationError{Field: "post", Reason: "author and permlink are required"}
	}

	sess, err := s.session(ctx)
	if err != nil {
		return err
	}
	if err := s.requireWallet(); err != nil {
		return err
	}

	// Advisory pre-check
	if votes, err := s.gateway.GetActiveVotes(ctx, author, permlink); err != nil {
		s.logger.Warn("Active-votes pre-check failed",
			zap.String("author", author),
			zap.String("permlink", permlink),
			zap.Error(err))
	} else {
		for _, v := range votes {
			if v.Voter == sess.Username {
				s.logger.Info("Vote already cast, proceeding",
					zap.String("voter", sess.Username),
					zap.String("permlink", permlink))
				break
			}
		}
	}

	resp, err := s.bridge.Vote(ctx, wallet.VotePayload{
		Username: sess.Username,
		Permlink: permlink,
		Author:   author,
		Weight:   voteWeight,
	})
	if err != nil {
		return fmt.Errorf("failed to reach wallet: %w", err)
	}
	if !resp.Success {
		return &RemoteRejection{Op: "vote", Reason: resp.Reason()}
	}

	if err := s.state.MarkUpvoted(ctx, author, permlink); err != nil {
		s.logger.Warn("Failed to record upvote locally", zap.Error(err))
	}

	s.logger.Info("Vote broadcast",
		zap.String("voter", sess.Username),
		zap.String("author", author),
		zap.String("permlink", permlink))
	return nil
}

// Upvoted reports whether the session user already upvoted the post,
// from the local record only.
func (s *Service) Upvoted(ctx context.Context, author, permlink string) bool {
	return s.state.Upvoted(ctx, author, permlink)
}
