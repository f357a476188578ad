package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yuzvak/pos-service/internal/domain/catalog"
	domainErrors "github.com/yuzvak/pos-service/internal/domain/errors"
	"github.com/yuzvak/pos-service/internal/domain/report"
	"github.com/yuzvak/pos-service/internal/domain/transaction"
	"github.com/yuzvak/pos-service/internal/infrastructure/monitoring"
	"github.com/yuzvak/pos-service/internal/pkg/logger"
)

const (
	itemsPath        = "/api/items"
	transactionsPath = "/api/transactions"
	recapPath        = "/api/rekapitulasi"
	historyPath      = "/api/transactions_history"
	dashboardPath    = "/api/dashboard"

	idempotencyHeader = "Idempotency-Key"
	maxErrorBody      = 64 << 10
)

// APIError is a non-2xx answer from the inventory service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("inventory service returned %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return domainErrors.ErrInventoryRejected
}

type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		log: log,
	}
}

func (c *Client) ListItems(ctx context.Context) ([]catalog.Item, error) {
	var dtos []itemDTO
	if err := c.do(ctx, "list_items", http.MethodGet, itemsPath, nil, nil, nil, &dtos); err != nil {
		return nil, err
	}

	items := make([]catalog.Item, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, d.toDomain())
	}
	return items, nil
}

func (c *Client) RecordTransaction(ctx context.Context, tx transaction.Transaction, idempotencyKey string) error {
	header := http.Header{}
	if idempotencyKey != "" {
		header.Set(idempotencyHeader, idempotencyKey)
	}
	return c.do(ctx, "record_transaction", http.MethodPost, transactionsPath, nil, header, newTransactionDTO(tx), nil)
}

func (c *Client) CreateItem(ctx context.Context, item catalog.NewItem) error {
	return c.do(ctx, "create_item", http.MethodPost, itemsPath, nil, nil, newNewItemDTO(item), nil)
}

func (c *Client) Rekapitulasi(ctx context.Context, period report.Period) ([]report.StockRecap, error) {
	var rows []report.StockRecap
	if err := c.do(ctx, "rekapitulasi", http.MethodGet, recapPath, period.Query(), nil, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) TransactionHistory(ctx context.Context, period report.Period) ([]report.HistoryEntry, error) {
	var entries []report.HistoryEntry
	if err := c.do(ctx, "transactions_history", http.MethodGet, historyPath, period.Query(), nil, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) Dashboard(ctx context.Context) (*report.Dashboard, error) {
	var dashboard report.Dashboard
	if err := c.do(ctx, "dashboard", http.MethodGet, dashboardPath, nil, nil, nil, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

func (c *Client) do(
	ctx context.Context,
	endpoint, method, path string,
	query url.Values,
	header http.Header,
	body, out interface{},
) (err error) {
	observe := monitoring.TimeInventoryRequest(endpoint)
	defer func() {
		outcome := "success"
		var apiErr *APIError
		switch {
		case errors.As(err, &apiErr):
			outcome = "rejected"
		case err != nil:
			outcome = "error"
		}
		observe(outcome)
	}()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := readAPIError(resp)
		c.log.Warn("Inventory service rejected request",
			"endpoint", endpoint,
			"status", apiErr.Status,
			"message", apiErr.Message)
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

func readAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil {
		var body errorDTO
		if json.Unmarshal(raw, &body) == nil {
			apiErr.Message = body.Message
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	if apiErr.Message == "" {
		apiErr.Message = "request failed"
	}
	return apiErr
}
