package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/travelo-app/travelo/pkg/config"
	"github.com/travelo-app/travelo/pkg/logging"
)

// Keychain talks to the Hive Keychain extension through its local
// companion endpoint. The endpoint is opaque: requests go out, a
// success/failure response comes back once the user has acted. A
// request can wait a long time on the user, so the HTTP timeout is
// generous.
type Keychain struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewKeychain creates a bridge to the keychain companion endpoint. An
// empty URL yields a bridge that reports itself unavailable, which is
// the normal state when the extension is not installed.
func NewKeychain(cfg *config.WalletConfig) *Keychain {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Keychain{
		url:        cfg.URL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.GetLogger().With(zap.String("component", "keychain")),
	}
}

// Available reports whether the extension endpoint answers a ping.
func (k *Keychain) Available() bool {
	if k.url == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.url+"/ping", nil)
	if err != nil {
		return false
	}
	resp, err := k.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Login requests a signed login challenge
func (k *Keychain) Login(ctx context.Context, p LoginPayload) (*Response, error) {
	return k.request(ctx, "login", p)
}

// Vote requests an upvote broadcast
func (k *Keychain) Vote(ctx context.Context, p VotePayload) (*Response, error) {
	return k.request(ctx, "vote", p)
}

// Transfer requests a currency transfer
func (k *Keychain) Transfer(ctx context.Context, p TransferPayload) (*Response, error) {
	return k.request(ctx, "transfer", p)
}

// Post requests a comment broadcast
func (k *Keychain) Post(ctx context.Context, p PostPayload) (*Response, error) {
	return k.request(ctx, "post", p)
}

func (k *Keychain) request(ctx context.Context, op string, payload interface{}) (*Response, error) {
	if k.url == "" {
		return nil, ErrUnavailable
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, k.url+"/"+op, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := k.httpClient.Do(req)
	if err != nil {
		k.logger.Warn("Wallet bridge unreachable", zap.String("op", op), zap.Error(err))
		return nil, ErrUnavailable
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wallet returned status %d", httpResp.StatusCode)
	}

	var resp Response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode wallet response: %w", err)
	}

	return &resp, nil
}
