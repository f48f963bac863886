package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/acoruss/acoruss.github.io/internal/models"
	"github.com/shopspring/decimal"
)

// SourceName identifies open.er-api.com in conversion snapshots.
const SourceName = "open.er-api.com"

// Source returns every rate quoted against base.
type Source interface {
	Latest(ctx context.Context, base models.Currency) (map[string]decimal.Decimal, error)
}

// OpenERAPI fetches rates from https://open.er-api.com/v6/latest/{base}.
// No API key is needed.
type OpenERAPI struct {
	BaseURL string
	Client  *http.Client
}

func NewOpenERAPI(baseURL string, timeout time.Duration) *OpenERAPI {
	return &OpenERAPI{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

type latestResponse struct {
	Result    string                     `json:"result"`
	ErrorType string                     `json:"error-type"`
	BaseCode  string                     `json:"base_code"`
	Rates     map[string]decimal.Decimal `json:"rates"`
}

func (s *OpenERAPI) Latest(ctx context.Context, base models.Currency) (map[string]decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s", s.BaseURL, strings.ToUpper(string(base)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("exchange rate request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading exchange rate response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exchange rate API returned HTTP %d: %s", resp.StatusCode, truncate(string(body), 300))
	}

	var data latestResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("decoding exchange rate response: %w", err)
	}
	if data.Result != "success" {
		return nil, fmt.Errorf("exchange rate API error: %s", data.ErrorType)
	}
	if len(data.Rates) == 0 {
		return nil, fmt.Errorf("exchange rate API returned no rates for %s", base)
	}
	return data.Rates, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
