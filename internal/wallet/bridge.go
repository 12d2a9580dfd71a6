package wallet

import (
	"context"
	"errors"
	"strconv"
)

// ErrUnavailable is returned when the wallet extension cannot be
// reached. This is a normal, expected condition: the user simply has
// not installed or started the wallet.
var ErrUnavailable = errors.New("wallet bridge unavailable")

// Key types accepted by the wallet for login
const (
	KeyTypePosting = "Posting"
	KeyTypeActive  = "Active"
)

// LoginPayload asks the wallet to prove control of an account key.
type LoginPayload struct {
	Username string `json:"username"`
	Message  string `json:"message"`
	Method   string `json:"method"`
	Title    string `json:"title"`
}

// VotePayload requests an upvote broadcast.
type VotePayload struct {
	Username string `json:"username"`
	Permlink string `json:"permlink"`
	Author   string `json:"author"`
	Weight   int    `json:"weight"`
}

// TransferPayload requests a currency transfer. Amount is a decimal
// string fixed to 3 places; Currency is HIVE or HBD.
type TransferPayload struct {
	From          string `json:"from"`
	To            string `json:"to"`
	Amount        string `json:"amount"`
	Memo          string `json:"memo"`
	Currency      string `json:"currency"`
	EnforceChecks bool   `json:"enforce_transfer_checks"`
}

// PostPayload requests a comment (blog post) broadcast.
type PostPayload struct {
	Username       string `json:"username"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	ParentAuthor   string `json:"parent_author"`
	ParentPermlink string `json:"parent_perm"`
	JSONMetadata   string `json:"json_metadata"`
	Permlink       string `json:"permlink"`
	CommentOptions string `json:"comment_options"`
}

// ResponseData carries operation-specific success data.
type ResponseData struct {
	Key string `json:"key,omitempty"` // public key returned by login
}

// Response is the wallet's reply to any request. When Success is false
// the wallet attaches a human-readable reason in Error or Message.
type Response struct {
	Success bool         `json:"success"`
	Error   string       `json:"error,omitempty"`
	Message string       `json:"message,omitempty"`
	Data    ResponseData `json:"data,omitempty"`
}

// Reason returns the wallet's reported failure reason, or a generic
// message when none was provided.
func (r *Response) Reason() string {
	if r == nil {
		return "no response from wallet"
	}
	if r.Error != "" {
		return r.Error
	}
	if r.Message != "" {
		return r.Message
	}
	return "operation failed"
}

// Bridge is the wallet extension boundary. All blockchain-writing
// operations go through it; the implementation holds the user's keys,
// the application never sees them. Calls block until the user approves
// or rejects the request inside the wallet.
type Bridge interface {
	// Available reports whether the wallet extension is reachable.
	Available() bool

	Login(ctx context.Context, p LoginPayload) (*Response, error)
	Vote(ctx context.Context, p VotePayload) (*Response, error)
	Transfer(ctx context.Context, p TransferPayload) (*Response, error)
	Post(ctx context.Context, p PostPayload) (*Response, error)
}

// FormatAmount renders a transfer amount as the wallet expects it:
// a decimal string fixed to 3 places.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 3, 64)
}
