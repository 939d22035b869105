// Package ledgerapi talks to the remote record-keeping API that owns the
// inventory, orders, laborers and expenses.
package ledgerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"oak-ledger/internal/model"
	"oak-ledger/pkg/logger"
	"oak-ledger/prometheus"
)

// TokenSource supplies the bearer token attached to each call
type TokenSource interface {
	Token() string
}

// Client represents a client for the record-keeping API
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
	tokens     TokenSource
}

// LoginResponse represents the response from the login endpoint
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// MessageResponse carries the message returned by account updates
type MessageResponse struct {
	Msg string `json:"msg"`
}

// Report is a downloaded export. Body is opaque.
type Report struct {
	Filename    string
	ContentType string
	Body        []byte
}

// NewClient creates a new API client. tokens may be nil for anonymous calls.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		Logger:     log,
		tokens:     tokens,
	}
}

func (c *Client) ListInventory(ctx context.Context) ([]model.InventoryItem, error) {
	return list[model.InventoryItem](ctx, c, "/inventory", "list_inventory")
}

func (c *Client) CreateInventoryItem(ctx context.Context, item model.InventoryItem) error {
	item.ID = ""
	_, _, err := c.call(ctx, http.MethodPost, "/inventory", item, "create_inventory")
	return err
}

func (c *Client) UpdateInventoryItem(ctx context.Context, item model.InventoryItem) error {
	_, _, err := c.call(ctx, http.MethodPut, "/inventory/"+url.PathEscape(item.ID), item, "update_inventory")
	return err
}

func (c *Client) DeleteInventoryItem(ctx context.Context, id string) error {
	_, _, err := c.call(ctx, http.MethodDelete, "/inventory/"+url.PathEscape(id), nil, "delete_inventory")
	return err
}

func (c *Client) ListOrders(ctx context.Context) ([]model.Order, error) {
	return list[model.Order](ctx, c, "/orders", "list_orders")
}

func (c *Client) CreateOrder(ctx context.Context, order model.Order) error {
	order.ID = ""
	_, _, err := c.call(ctx, http.MethodPost, "/orders", order, "create_order")
	return err
}

func (c *Client) ListLaborers(ctx context.Context) ([]model.Laborer, error) {
	return list[model.Laborer](ctx, c, "/laborers", "list_laborers")
}

func (c *Client) CreateLaborer(ctx context.Context, l model.Laborer) error {
	l.ID = ""
	l.History = nil
	_, _, err := c.call(ctx, http.MethodPost, "/laborers", l, "create_laborer")
	return err
}

func (c *Client) UpdateLaborer(ctx context.Context, l model.Laborer) error {
	l.History = nil
	_, _, err := c.call(ctx, http.MethodPut, "/laborers/"+url.PathEscape(l.ID), l, "update_laborer")
	return err
}

func (c *Client) DeleteLaborer(ctx context.Context, id string) error {
	_, _, err := c.call(ctx, http.MethodDelete, "/laborers/"+url.PathEscape(id), nil, "delete_laborer")
	return err
}

func (c *Client) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	return list[model.Expense](ctx, c, "/expenses", "list_expenses")
}

func (c *Client) CreateExpense(ctx context.Context, e model.Expense) error {
	e.ID = ""
	_, _, err := c.call(ctx, http.MethodPost, "/expenses", e, "create_expense")
	return err
}

// Login exchanges credentials for an access token
func (c *Client) Login(ctx context.Context, creds model.Credentials) (string, error) {
	log := logger.Ctx(ctx, c.Logger)
	log.Info("Requesting access token", zap.String("email", creds.Email))

	body, _, err := c.call(ctx, http.MethodPost, "/auth/login", creds, "login")
	if err != nil {
		return "", err
	}

	var resp LoginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Error("Failed to parse login response", zap.Error(err))
		return "", fmt.Errorf("parse login response: %w", err)
	}
	if resp.AccessToken == "" {
		return "", &APIError{StatusCode: http.StatusBadGateway, Message: "login response carried no access token"}
	}
	return resp.AccessToken, nil
}

// UpdateAccount changes the account email and, optionally, the password
func (c *Client) UpdateAccount(ctx context.Context, upd model.AccountUpdate) (string, error) {
	body, _, err := c.call(ctx, http.MethodPost, "/auth/update", upd, "update_account")
	if err != nil {
		return "", err
	}

	var resp MessageResponse
	if len(body) > 0 {
		if err := json.Unmarshal(body, &resp); err != nil {
			logger.Ctx(ctx, c.Logger).Warn("Account update response was not JSON", zap.Error(err))
		}
	}
	return resp.Msg, nil
}

// ExportReport asks the server to build a spreadsheet and returns it untouched
func (c *Client) ExportReport(ctx context.Context, req model.ReportRequest) (*Report, error) {
	body, header, err := c.call(ctx, http.MethodPost, "/reports/export", req, "export_report")
	if err != nil {
		return nil, err
	}

	report := &Report{
		ContentType: header.Get("Content-Type"),
		Body:        body,
	}
	if cd := header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			report.Filename = params["filename"]
		}
	}
	return report, nil
}

func list[T any](ctx context.Context, c *Client, path, operation string) ([]T, error) {
	body, _, err := c.call(ctx, http.MethodGet, path, nil, operation)
	if err != nil {
		return nil, err
	}

	out := []T{}
	if len(bytes.TrimSpace(body)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(body, &out); err != nil {
		logger.Ctx(ctx, c.Logger).Error("Failed to parse list response",
			zap.String("path", path),
			zap.Error(err))
		return nil, fmt.Errorf("parse %s response: %w", path, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// call performs one request and returns the body of a 2xx answer
func (c *Client) call(ctx context.Context, method, path string, in any, operation string) (respBody []byte, header http.Header, err error) {
	done := prometheus.TrackRemoteCall(operation)
	defer func() { done(err) }()

	log := logger.Ctx(ctx, c.Logger)
	log.Debug("Making API call",
		zap.String("method", method),
		zap.String("path", path))

	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, nil, fmt.Errorf("encode %s request: %w", operation, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		log.Error("Failed to create request", zap.Error(err))
		return nil, nil, err
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	requestID := logger.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	req.Header.Set(logger.RequestIDKey, requestID)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Error("API request failed", zap.String("path", path), zap.Error(err))
		return nil, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return nil, nil, err
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errResp ErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil {
			apiErr.Message = errResp.message()
		}
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		log.Warn("API request returned error status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return nil, nil, apiErr
	}

	log.Debug("API call successful", zap.String("path", path), zap.Int("status", resp.StatusCode))
	return respBody, resp.Header, nil
}
