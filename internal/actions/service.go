package actions

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/travelo-app/travelo/internal/hive"
	"github.com/travelo-app/travelo/internal/models"
	"github.com/travelo-app/travelo/internal/store"
	"github.com/travelo-app/travelo/internal/wallet"
	"github.com/travelo-app/travelo/pkg/config"
	"github.com/travelo-app/travelo/pkg/logging"
)

// Service orchestrates every blockchain-writing workflow. Each
// operation follows the same shape: session precondition, wallet
// availability, optional advisory remote check, dispatch to the wallet,
// then local state mutation on success.
//
// Remote pre-checks are uniformly advisory: a failed or negative check
// is logged and the dispatch proceeds, since the wallet enforces its
// own checks at signing time.
type Service struct {
	bridge  wallet.Bridge
	gateway hive.Gateway
	state   *store.State
	cfg     *config.Config
	logger  *zap.Logger
	now     func() time.Time
}

// New creates the action orchestrator
func New(bridge wallet.Bridge, gateway hive.Gateway, state *store.State, cfg *config.Config) *Service {
	return &Service{
		bridge:  bridge,
		gateway: gateway,
		state:   state,
		cfg:     cfg,
		logger:  logging.GetLogger().With(zap.String("component", "actions")),
		now:     time.Now,
	}
}

// Session returns the current session; a logged-out state is a zero
// value, not an error.
func (s *Service) Session(ctx context.Context) (models.Session, error) {
	return s.state.Session(ctx)
}

// session returns the current session, or ErrUnauthenticated when no
// user is logged in.
func (s *Service) session(ctx context.Context) (models.Session, error) {
	sess, err := s.state.Session(ctx)
	if err != nil {
		return models.Session{}, err
	}
	if !sess.LoggedIn() {
		return models.Session{}, ErrUnauthenticated
	}
	return sess, nil
}

// requireWallet fails fast when the wallet extension is unreachable.
// This is an expected condition, not a fault: the user is directed to
// install the wallet.
func (s *Service) requireWallet() error {
	if !s.bridge.Available() {
		return wallet.ErrUnavailable
	}
	return nil
}
