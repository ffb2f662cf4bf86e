package odoo

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"stock-sync/core/reconcile"
	"stock-sync/core/transport"
	"stock-sync/core/utils"

	"github.com/kolo/xmlrpc"
	"go.uber.org/zap"
)

const (
	commonPath = "/xmlrpc/2/common"
	objectPath = "/xmlrpc/2/object"

	productModel = "product.product"
)

// productFields is the projection requested for every lookup.
var productFields = []string{"id", "name", "barcode", "qty_available"}

// rpcClient is the subset of *xmlrpc.Client used here.
type rpcClient interface {
	Call(serviceMethod string, args any, reply any) error
	Close() error
}

// Client talks to Odoo over XML-RPC. One authenticated session lives for the
// whole run; it is not safe for concurrent use.
type Client struct {
	cfg        Config
	locationID int
	logger     *zap.Logger
	transport  http.RoundTripper

	baseURL string
	object  rpcClient
	uid     int64
}

var _ reconcile.Source = (*Client)(nil)

// NewClient creates an unconnected client. The stock location is resolved here
// so an invalid value is reported once at startup.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	return &Client{
		cfg:        cfg,
		locationID: cfg.ParseLocationID(logger),
		logger:     logger,
		transport:  transport.New(transport.Seconds(cfg.TimeoutSeconds)),
	}
}

// LocationID returns the stock location used for quantity lookups.
func (c *Client) LocationID() int {
	return c.locationID
}

// Connect queries the server version and authenticates. Missing settings fail
// before any network I/O with a *MissingConfigError.
func (c *Client) Connect(ctx context.Context) error {
	if missing := c.cfg.Missing(); len(missing) > 0 {
		return &MissingConfigError{Missing: missing}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	baseURL := strings.TrimRight(c.cfg.URL, "/")
	c.logger.Info("Connecting to Odoo",
		zap.String("url", baseURL),
		zap.String("db", c.cfg.DB),
		zap.String("user", c.cfg.Username),
	)

	common, err := xmlrpc.NewClient(baseURL+commonPath, c.transport)
	if err != nil {
		return fmt.Errorf("failed to create common endpoint client: %w", err)
	}
	defer common.Close()

	var version any
	if err := common.Call("version", nil, &version); err != nil {
		return fmt.Errorf("version request failed: %w", err)
	}
	c.logger.Info("Odoo version", zap.String("server_version", serverVersion(version)))

	var uid any
	if err := common.Call("authenticate", []any{c.cfg.DB, c.cfg.Username, c.cfg.Password, map[string]any{}}, &uid); err != nil {
		return fmt.Errorf("authenticate request failed: %w", err)
	}
	id, ok := utils.ToInt64(uid)
	if utils.IsFalsy(uid) || !ok {
		return ErrInvalidCredentials
	}

	object, err := xmlrpc.NewClient(baseURL+objectPath, c.transport)
	if err != nil {
		return fmt.Errorf("failed to create object endpoint client: %w", err)
	}

	c.Close()
	c.baseURL = baseURL
	c.object = object
	c.uid = id
	c.logger.Info("Connected to Odoo", zap.Int64("uid", id))
	return nil
}

// FetchQuantity reads the product with the given barcode and its available
// quantity at the configured stock location.
func (c *Client) FetchQuantity(ctx context.Context, barcode string) reconcile.FetchResult {
	if c.object == nil {
		return c.failed(barcode, ErrNotConnected)
	}
	if err := ctx.Err(); err != nil {
		return c.failed(barcode, err)
	}

	domain := []any{[]any{"barcode", "=", barcode}}
	kwargs := map[string]any{
		"fields":  productFields,
		"limit":   1,
		"context": map[string]any{"location": c.locationID},
	}
	args := []any{c.cfg.DB, c.uid, c.cfg.Password, productModel, "search_read", []any{domain}, kwargs}

	var reply any
	if err := c.object.Call("execute_kw", args, &reply); err != nil {
		c.reopen()
		return c.failed(barcode, err)
	}

	rows, _ := reply.([]any)
	if len(rows) == 0 {
		c.logger.Warn("Product not found in Odoo", zap.String("barcode", barcode))
		return reconcile.FetchResult{Outcome: reconcile.FetchNotFound}
	}

	row, ok := rows[0].(map[string]any)
	if !ok {
		return c.failed(barcode, fmt.Errorf("unexpected search_read row %T", rows[0]))
	}

	id, _ := utils.ToInt64(row["id"])
	return reconcile.FetchResult{
		Outcome: reconcile.FetchFound,
		Record: reconcile.StockRecord{
			SourceKey:   barcode,
			SourceID:    id,
			DisplayName: utils.ToString(row["name"]),
			Quantity:    utils.ToFloat(row["qty_available"]),
		},
	}
}

// Close releases the session's object endpoint client.
func (c *Client) Close() error {
	if c.object == nil {
		return nil
	}
	err := c.object.Close()
	c.object = nil
	return err
}

// reopen replaces the object endpoint client after a failed call. A bad HTTP
// status shuts down the underlying rpc client, and the next item must still
// get its own attempt.
func (c *Client) reopen() {
	object, err := xmlrpc.NewClient(c.baseURL+objectPath, c.transport)
	if err != nil {
		return
	}
	_ = c.object.Close()
	c.object = object
}

func (c *Client) failed(barcode string, err error) reconcile.FetchResult {
	c.logger.Error("Failed to fetch product from Odoo",
		zap.String("barcode", barcode),
		zap.Error(err),
	)
	return reconcile.FetchResult{Outcome: reconcile.FetchFailed, Err: err}
}

func serverVersion(v any) string {
	info, ok := v.(map[string]any)
	if !ok {
		return "unknown"
	}
	if s := utils.ToString(info["server_version"]); s != "" {
		return s
	}
	return "unknown"
}
