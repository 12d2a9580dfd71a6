package actions

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/travelo-app/travelo/internal/models"
	"github.com/travelo-app/travelo/internal/wallet"
	"github.com/travelo-app/travelo/pkg/telemetry"
)

// Login asks the wallet to sign a challenge with the account's posting
// key; a successful signature proves control of the account. The
// resulting session is persisted with the public key the wallet
// reports.
func (s *Service) Login(ctx context.Context, username string) (models.Session, error) {
	ctx, span := telemetry.StartSpan(ctx, "actions.login")
	defer span.End()

	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" {
		return models.Session{}, &ValidationError{Field: "username", Reason: "username is required"}
	}

	if err := s.requireWallet(); err != nil {
		return models.Session{}, err
	}

	resp, err := s.bridge.Login(ctx, wallet.LoginPayload{
		Username: username,
		Message:  fmt.Sprintf("login-%d", s.now().UnixMilli()),
		Method:   wallet.KeyTypePosting,
		Title:    "Login Request",
	})
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to reach wallet: %w", err)
	}
	if !resp.Success {
		return models.Session{}, &RemoteRejection{Op: "login", Reason: resp.Reason()}
	}

	sess := models.Session{
		Username:  username,
		PublicKey: resp.Data.Key,
	}
	if err := s.state.SetSession(ctx, sess); err != nil {
		return models.Session{}, err
	}

	s.logger.Info("User logged in", zap.String("username", username))
	return sess, nil
}

// Logout destroys the persisted session
func (s *Service) Logout(ctx context.Context) error {
	ctx, span := telemetry.StartSpan(ctx, "actions.logout")
	defer span.End()

	if err := s.state.ClearSession(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	s.logger.Info("User logged out")
	return nil
}
