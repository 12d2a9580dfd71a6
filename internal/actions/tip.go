package actions

import (
	"context"

	"go.uber.org/zap"

	"github.com/travelo-app/travelo/internal/models"
	"github.com/travelo-app/travelo/internal/wallet"
	"github.com/travelo-app/travelo/pkg/telemetry"
)

const tipMemo = "Thank you for your content!"

// TipFailure records one author whose tip did not go through.
type TipFailure struct {
	Author string `json:"author"`
	Reason string `json:"reason"`
}

// TipReport is the aggregate outcome of a batch tip run.
type TipReport struct {
	Attempted int          `json:"attempted"`
	Succeeded int          `json:"succeeded"`
	Failures  []TipFailure `json:"failures,omitempty"`
}

// BatchTip sends the same tip to every author in the selection,
// strictly one at a time in selection order. A failure for one author
// never aborts the remaining attempts; the report accounts for all of
// them. The selection is cleared when at least one tip succeeded.
func (s *Service) BatchTip(ctx context.Context, selection *models.SelectionSet, amount float64, currency string) (TipReport, error) {
	ctx, span := telemetry.StartSpan(ctx, "actions.batch_tip")
	defer span.End()

	var report TipReport

	if selection == nil || selection.Len() == 0 {
		return report, &ValidationError{Field: "selection", Reason: "no authors selected"}
	}
	if amount <= 0 {
		return report, &ValidationError{Field: "amount", Reason: "amount must be positive"}
	}
	switch currency {
	case "":
		currency = "HIVE"
	case "HIVE", "HBD":
	default:
		return report, &ValidationError{Field: "currency", Reason: "currency must be HIVE or HBD"}
	}

	sess, err := s.session(ctx)
	if err != nil {
		return report, err
	}
	if err := s.requireWallet(); err != nil {
		return report, err
	}

	for _, author := range selection.Authors() {
		report.Attempted++

		resp, err := s.bridge.Transfer(ctx, wallet.TransferPayload{
			From:          sess.Username,
			To:            author,
			Amount:        wallet.FormatAmount(amount),
			Memo:          tipMemo,
			Currency:      currency,
			EnforceChecks: true,
		})
		if err != nil {
			s.logger.Warn("Tip dispatch failed",
				zap.String("author", author),
				zap.Error(err))
			report.Failures = append(report.Failures, TipFailure{Author: author, Reason: err.Error()})
			continue
		}
		if !resp.Success {
			s.logger.Warn("Tip rejected",
				zap.String("author", author),
				zap.String("reason", resp.Reason()))
			report.Failures = append(report.Failures, TipFailure{Author: author, Reason: resp.Reason()})
			continue
		}

		report.Succeeded++
	}

	if report.Succeeded > 0 {
		selection.Clear()
	}

	s.logger.Info("Batch tip finished",
		zap.Int("attempted", report.Attempted),
		zap.Int("succeeded", report.Succeeded))

	return report, nil
}
