package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Creditor moves authorized funds into a user's spendable balance. The ledger
// only records the intent; implementations own the actual transfer.
type Creditor interface {
	CreditWallet(ctx context.Context, userID string, amountC int64, reason string) error
}

// HTTPCreditor posts credit requests to an external wallet service.
type HTTPCreditor struct {
	endpoint string
	apiKey   string
	inner    *http.Client
}

func NewHTTPCreditor(endpoint, apiKey string, timeout time.Duration) *HTTPCreditor {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPCreditor{
		endpoint: endpoint,
		apiKey:   apiKey,
		inner:    &http.Client{Timeout: timeout},
	}
}

type creditRequest struct {
	UserID  string `json:"user_id"`
	AmountC int64  `json:"amount_c"`
	Reason  string `json:"reason"`
}

func (c *HTTPCreditor) CreditWallet(ctx context.Context, userID string, amountC int64, reason string) error {
	raw, err := json.Marshal(creditRequest{UserID: userID, AmountC: amountC, Reason: reason})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.inner.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return fmt.Errorf("wallet credit failed with status %d", resp.StatusCode)
}
