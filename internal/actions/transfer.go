package actions

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/travelo-app/travelo/internal/wallet"
	"github.com/travelo-app/travelo/pkg/telemetry"
)

const defaultTransferMemo = "Supporting the author"

// TransferInput is a user-entered transfer request.
type TransferInput struct {
	To       string
	Amount   float64
	Memo     string
	Currency string // HIVE or HBD, defaults to HIVE
}

// Transfer sends currency to another account through the wallet. The
// recipient-exists pre-check is advisory; the wallet performs its own
// enforced checks at signing time.
func (s *Service) Transfer(ctx context.Context, in TransferInput) error {
	ctx, span := telemetry.StartSpan(ctx, "actions.transfer")
	defer span.End()

	in.To = strings.TrimSpace(strings.ToLower(in.To))
	if in.To == "" {
		return &ValidationError{Field: "recipient", Reason: "recipient is required"}
	}
	if in.Amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "amount must be positive"}
	}
	switch in.Currency {
	case "":
		in.Currency = "HIVE"
	case "HIVE", "HBD":
	default:
		return &ValidationError{Field: "currency", Reason: "currency must be HIVE or HBD"}
	}
	if in.Memo == "" {
		in.Memo = defaultTransferMemo
	}

	sess, err := s.session(ctx)
	if err != nil {
		return err
	}
	if err := s.requireWallet(); err != nil {
		return err
	}

	// Advisory pre-check
	if accounts, err := s.gateway.GetAccounts(ctx, []string{in.To}); err != nil {
		s.logger.Warn("Recipient pre-check failed",
			zap.String("recipient", in.To),
			zap.Error(err))
	} else if len(accounts) == 0 {
		s.logger.Warn("Recipient not found on chain, proceeding",
			zap.String("recipient", in.To))
	}

	resp, err := s.bridge.Transfer(ctx, wallet.TransferPayload{
		From:          sess.Username,
		To:            in.To,
		Amount:        wallet.FormatAmount(in.Amount),
		Memo:          in.Memo,
		Currency:      in.Currency,
		EnforceChecks: true,
	})
	if err != nil {
		return fmt.Errorf("failed to reach wallet: %w", err)
	}
	if !resp.Success {
		return &RemoteRejection{Op: "transfer", Reason: resp.Reason()}
	}

	s.logger.Info("Transfer broadcast",
		zap.String("from", sess.Username),
		zap.String("to", in.To),
		zap.Float64("amount", in.Amount),
		zap.String("currency", in.Currency))
	return nil
}
