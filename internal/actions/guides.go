package actions

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/travelo-app/travelo/internal/models"
	"github.com/travelo-app/travelo/internal/wallet"
	"github.com/travelo-app/travelo/pkg/telemetry"
)

// PurchaseGuide pays a guide's author through the wallet and records
// the receipt locally.
func (s *Service) PurchaseGuide(ctx context.Context, guide models.Guide) (*models.GuideReceipt, error) {
	ctx, span := telemetry.StartSpan(ctx, "actions.purchase_guide")
	defer span.End()

	if guide.ID == "" || guide.Author == "" {
		return nil, &ValidationError{Field: "guide", Reason: "guide id and author are required"}
	}
	if guide.Price <= 0 {
		return nil, &ValidationError{Field: "guide", Reason: "guide price must be positive"}
	}

	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.requireWallet(); err != nil {
		return nil, err
	}

	resp, err := s.bridge.Transfer(ctx, wallet.TransferPayload{
		From:          sess.Username,
		To:            guide.Author,
		Amount:        wallet.FormatAmount(guide.Price),
		Memo:          fmt.Sprintf("Purchase of guide: %s", guide.Title),
		Currency:      "HIVE",
		EnforceChecks: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reach wallet: %w", err)
	}
	if !resp.Success {
		return nil, &RemoteRejection{Op: "guide purchase", Reason: resp.Reason()}
	}

	receipt := models.GuideReceipt{
		GuideID:     guide.ID,
		PurchasedAt: s.now(),
	}
	if err := s.state.AppendReceipt(ctx, receipt); err != nil {
		return nil, fmt.Errorf("payment succeeded but failed to store receipt: %w", err)
	}

	s.logger.Info("Guide purchased",
		zap.String("guide", guide.ID),
		zap.String("author", guide.Author))

	return &receipt, nil
}

// Receipts lists the locally recorded guide purchases
func (s *Service) Receipts(ctx context.Context) ([]models.GuideReceipt, error) {
	return s.state.Receipts(ctx)
}
