package woocommerce

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"stock-sync/core/reconcile"
	"stock-sync/core/transport"

	"go.uber.org/zap"
)

const productsPath = "/wp-json/wc/v3/products/"

// DefaultTimeout is the request ceiling when none is configured.
const DefaultTimeout = 20 * time.Second

const (
	StatusInStock    = "instock"
	StatusOutOfStock = "outofstock"
)

// Payload is the body of a stock update. It is a full-state overwrite, so
// sending it twice has the same effect as sending it once.
type Payload struct {
	StockQuantity int64  `json:"stock_quantity"`
	ManageStock   bool   `json:"manage_stock"`
	StockStatus   string `json:"stock_status"`
}

// BuildPayload truncates quantity to whole units and derives the stock status
// from quantity > 0. Stock management is always switched on.
func BuildPayload(quantity float64) Payload {
	status := StatusOutOfStock
	if quantity > 0 {
		status = StatusInStock
	}
	return Payload{
		StockQuantity: int64(quantity),
		ManageStock:   true,
		StockStatus:   status,
	}
}

// Client pushes stock updates. Authentication is stateless: every request
// carries its own Basic authorization header.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

var _ reconcile.Sink = (*Client)(nil)

// NewClient creates a WooCommerce client with a bounded request timeout.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	timeout := transport.Seconds(cfg.TimeoutSeconds)
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := transport.NewClient(timeout)
	// A redirected PUT is replayed as a GET, so a 3xx must surface as-is.
	httpClient.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &Client{
		cfg:    cfg,
		http:   httpClient,
		logger: logger,
	}
}

// PushQuantity sets the absolute stock of product sinkID. It never returns an
// error; every failure is classified in the result and logged.
func (c *Client) PushQuantity(ctx context.Context, sinkID int64, quantity float64, displayName string) reconcile.UpdateResult {
	result := reconcile.UpdateResult{
		SinkID:      sinkID,
		DisplayName: displayName,
		Quantity:    quantity,
	}
	log := c.logger.With(zap.Int64("wc_id", sinkID), zap.String("name", displayName))

	req, err := c.newRequest(ctx, sinkID, BuildPayload(quantity))
	if err != nil {
		result.Outcome = reconcile.UpdateTransportError
		result.Error = err.Error()
		log.Error("WooCommerce update failed", zap.Error(err))
		return result
	}

	resp, err := c.http.Do(req)
	if err != nil {
		result.Outcome = reconcile.UpdateTransportError
		result.Error = err.Error()
		log.Error("WooCommerce update failed", zap.Error(err))
		return result
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused by the next item.
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	result.StatusCode = resp.StatusCode
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		result.Outcome = reconcile.UpdateSuccess
		log.Info("WooCommerce stock updated", zap.Int64("quantity", int64(quantity)))
	case resp.StatusCode == http.StatusNotFound:
		result.Outcome = reconcile.UpdateNotFound
		result.Error = "product not found"
		log.Warn("WooCommerce product not found", zap.Int("status_code", resp.StatusCode))
	default:
		result.Outcome = reconcile.UpdateHTTPError
		result.Error = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		log.Error("WooCommerce update rejected",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", strings.TrimSpace(string(body))),
		)
	}
	return result
}

func (c *Client) newRequest(ctx context.Context, sinkID int64, payload Payload) (*http.Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	url := fmt.Sprintf("%s%s%d", strings.TrimRight(c.cfg.URL, "/"), productsPath, sinkID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Basic "+basicAuth(c.cfg.ConsumerKey, c.cfg.ConsumerSecret))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func basicAuth(key, secret string) string {
	return base64.StdEncoding.EncodeToString([]byte(key + ":" + secret))
}
