// Package ledger is the client for the parish accounting REST API. It pages
// through journal entries and accounts and normalizes period-lock payloads.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/parishworks/vestry/internal/common"
	"github.com/parishworks/vestry/internal/model"
	"github.com/parishworks/vestry/internal/service"
)

const defaultPageSize = 200

// Config holds the connection settings for the ledger API.
type Config struct {
	BaseURL  string
	APIKey   string
	PageSize int
	Timeout  time.Duration
}

// Client talks to the ledger API. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	progress   func(fetched int)
	baseURL    string
	apiKey     string
	pageSize   int
}

var _ service.LedgerSource = (*Client)(nil)

// NewClient creates a ledger API client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, common.ErrMissingConfig
	}
	if cfg.PageSize <= 0 || cfg.PageSize > defaultPageSize {
		cfg.PageSize = defaultPageSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		pageSize:   cfg.PageSize,
	}, nil
}

// OnProgress registers a callback invoked with the cumulative record count
// after each fetched page.
func (c *Client) OnProgress(fn func(fetched int)) {
	c.progress = fn
}

// API payload types.

type journalEntryPayload struct {
	EntryDate    string               `json:"entry_date"`
	Memo         string               `json:"memo"`
	ReferenceNo  string               `json:"reference_no"`
	SourceModule string               `json:"source_module"`
	CurrencyCode string               `json:"currency_code"`
	PostedAt     *time.Time           `json:"posted_at"`
	LockedAt     *time.Time           `json:"locked_at"`
	Lines        []journalLinePayload `json:"lines"`
	ID           int64                `json:"id"`
	EntryNo      int64                `json:"entry_no"`
	IsLocked     bool                 `json:"is_locked"`
}

type journalLinePayload struct {
	AccountID   int64   `json:"account_id"`
	AccountCode string  `json:"account_code"`
	AccountName string  `json:"account_name"`
	Description string  `json:"description"`
	Debit       amount  `json:"debit"`
	Credit      amount  `json:"credit"`
	LineNo      int     `json:"line_no"`
}

// amount decodes the API's NUMERIC columns, which arrive either as JSON
// numbers or as decimal strings depending on server version.
type amount float64

func (a *amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("failed to parse amount %q: %w", s, err)
	}
	*a = amount(v)
	return nil
}

type accountPayload struct {
	ID       int64  `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Kind     string `json:"kind"`
	Group    string `json:"group"`
	IsActive bool   `json:"is_active"`
}

// GetJournalEntries pages through /gl/journal for the date range. Paging
// stops at the first short page.
func (c *Client) GetJournalEntries(ctx context.Context, from, to time.Time) ([]model.JournalEntry, error) {
	var entries []model.JournalEntry
	offset := 0

	for {
		q := url.Values{}
		q.Set("date_from", from.Format("2006-01-02"))
		q.Set("date_to", to.Format("2006-01-02"))
		q.Set("limit", strconv.Itoa(c.pageSize))
		q.Set("offset", strconv.Itoa(offset))

		var page []journalEntryPayload
		if err := c.getJSON(ctx, "/gl/journal", q, &page); err != nil {
			return nil, fmt.Errorf("failed to fetch journal entries: %w", err)
		}

		for _, payload := range page {
			entry, err := payload.toModel()
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}

		if c.progress != nil {
			c.progress(len(entries))
		}
		if len(page) < c.pageSize {
			return entries, nil
		}
		offset += len(page)
	}
}

// GetAccounts pages through /gl/accounts.
func (c *Client) GetAccounts(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	offset := 0

	for {
		q := url.Values{}
		q.Set("limit", strconv.Itoa(c.pageSize))
		q.Set("offset", strconv.Itoa(offset))

		var page []accountPayload
		if err := c.getJSON(ctx, "/gl/accounts", q, &page); err != nil {
			return nil, fmt.Errorf("failed to fetch accounts: %w", err)
		}

		for _, payload := range page {
			accounts = append(accounts, model.Account{
				ID:       payload.ID,
				Code:     payload.Code,
				Name:     payload.Name,
				Type:     model.CanonicalAccountType(payload.Type, payload.Kind, payload.Group),
				IsActive: payload.IsActive,
			})
		}

		if c.progress != nil {
			c.progress(len(accounts))
		}
		if len(page) < c.pageSize {
			return accounts, nil
		}
		offset += len(page)
	}
}

// GetPeriodLocks fetches /gl/locks/status and normalizes whatever shape the
// server responds with; see locks.go.
func (c *Client) GetPeriodLocks(ctx context.Context, from, to time.Time) ([]model.PeriodLock, error) {
	q := url.Values{}
	q.Set("from", from.Format("2006-01-02"))
	q.Set("to", to.Format("2006-01-02"))

	var raw json.RawMessage
	if err := c.getJSON(ctx, "/gl/locks/status", q, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch lock status: %w", err)
	}
	return NormalizeLocks(raw), nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	op := func() error {
		u, err := url.Parse(c.baseURL + path)
		if err != nil {
			return fmt.Errorf("failed to parse URL: %w", err)
		}
		u.RawQuery = query.Encode()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		if c.apiKey != "" {
			req.Header.Set("X-API-Key", c.apiKey)
		}

		slog.Debug("Requesting ledger API", "path", path, "query", u.RawQuery)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return &common.RetryableError{Err: fmt.Errorf("%w: %v", common.ErrAPIConnection, err), Retryable: true}
		}
		defer func() { _ = resp.Body.Close() }()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return common.ErrRateLimit
		case resp.StatusCode != http.StatusOK:
			body, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("ledger API error: %d - %s", resp.StatusCode, string(body))
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	return common.WithRetry(ctx, op, service.RetryOptions{MaxAttempts: 3})
}

func (p journalEntryPayload) toModel() (model.JournalEntry, error) {
	date, err := time.Parse("2006-01-02", p.EntryDate)
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("failed to parse entry date %q: %w", p.EntryDate, err)
	}

	entry := model.JournalEntry{
		Date:         date,
		PostedAt:     p.PostedAt,
		LockedAt:     p.LockedAt,
		ID:           p.ID,
		EntryNo:      p.EntryNo,
		Memo:         p.Memo,
		ReferenceNo:  p.ReferenceNo,
		SourceModule: p.SourceModule,
		CurrencyCode: p.CurrencyCode,
		IsLocked:     p.IsLocked,
	}
	for _, line := range p.Lines {
		entry.Lines = append(entry.Lines, model.JournalLine{
			AccountID:   line.AccountID,
			AccountCode: line.AccountCode,
			AccountName: line.AccountName,
			Description: line.Description,
			Debit:       float64(line.Debit),
			Credit:      float64(line.Credit),
			LineNo:      line.LineNo,
		})
	}
	return entry, nil
}
