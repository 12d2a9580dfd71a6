package actions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/travelo-app/travelo/internal/models"
	"github.com/travelo-app/travelo/internal/wallet"
	"github.com/travelo-app/travelo/pkg/telemetry"
)

const maxAdImageBytes = 5 << 20

// AdImage is an uploaded ad image with its declared size.
type AdImage struct {
	URL       string `json:"url"`
	SizeBytes int64  `json:"size_bytes"`
}

// AdRequest is a user-submitted advertisement order.
type AdRequest struct {
	CompanyName    string    `json:"company_name"`
	Description    string    `json:"description"`
	WebsiteURL     string    `json:"website_url"`
	Plan           string    `json:"plan"`
	Images         []AdImage `json:"images,omitempty"`
	TargetAudience string    `json:"target_audience,omitempty"`
	Category       string    `json:"category,omitempty"`
}

// PlaceAd validates an ad order against its plan, collects payment to
// the platform account through the wallet, and persists the placement
// with its computed expiry.
func (s *Service) PlaceAd(ctx context.Context, req AdRequest) (*models.AdPlacement, error) {
	ctx, span := telemetry.StartSpan(ctx, "actions.place_ad")
	defer span.End()

	req.CompanyName = strings.TrimSpace(req.CompanyName)
	if req.CompanyName == "" {
		return nil, &ValidationError{Field: "company_name", Reason: "company name is required"}
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, &ValidationError{Field: "description", Reason: "description is required"}
	}
	if strings.TrimSpace(req.WebsiteURL) == "" {
		return nil, &ValidationError{Field: "website_url", Reason: "website URL is required"}
	}

	plan := models.PlanByName(req.Plan)
	if plan == nil {
		return nil, &ValidationError{Field: "plan", Reason: fmt.Sprintf("unknown plan %q", req.Plan)}
	}
	if len(req.Images) > plan.MaxImages {
		if plan.MaxImages == 0 {
			return nil, &ValidationError{Field: "images", Reason: fmt.Sprintf("%s plan does not include image support", plan.Name)}
		}
		return nil, &ValidationError{Field: "images", Reason: fmt.Sprintf("%s plan allows at most %d images", plan.Name, plan.MaxImages)}
	}
	for _, img := range req.Images {
		if img.SizeBytes > maxAdImageBytes {
			return nil, &ValidationError{Field: "images", Reason: "each image must be 5MB or smaller"}
		}
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
		To:            s.cfg.Platform.AdAccount,
		Amount:        wallet.FormatAmount(plan.Price),
		Memo:          fmt.Sprintf("Ad payment for: %s - %s Plan", req.CompanyName, plan.Name),
		Currency:      "HIVE",
		EnforceChecks: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reach wallet: %w", err)
	}
	if !resp.Success {
		return nil, &RemoteRejection{Op: "ad payment", Reason: resp.Reason()}
	}

	urls := make([]string, 0, len(req.Images))
	for _, img := range req.Images {
		urls = append(urls, img.URL)
	}

	placement := models.AdPlacement{
		CompanyName:    req.CompanyName,
		Description:    req.Description,
		WebsiteURL:     req.WebsiteURL,
		Budget:         plan.Price,
		Images:         urls,
		TargetAudience: req.TargetAudience,
		Category:       req.Category,
		Plan:           plan.Name,
		DurationHours:  plan.DurationHours,
		ExpiresAt:      s.now().Add(time.Duration(plan.DurationHours) * time.Hour),
	}
	if err := s.state.SetCurrentAd(ctx, placement); err != nil {
		return nil, fmt.Errorf("payment succeeded but failed to store placement: %w", err)
	}

	s.logger.Info("Ad placed",
		zap.String("company", req.CompanyName),
		zap.String("plan", plan.Name),
		zap.Time("expires_at", placement.ExpiresAt))

	return &placement, nil
}

// CurrentAd returns the active placement, dropping it when expired
func (s *Service) CurrentAd(ctx context.Context) (*models.AdPlacement, error) {
	return s.state.CurrentAd(ctx, s.now())
}
