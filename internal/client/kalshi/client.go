package kalshi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const DefaultHost = "https://api.elections.kalshi.com/trade-api/v2"

// Client reads raw market pages from the public Kalshi trade API.
type Client struct {
	host       string
	httpClient *http.Client
}

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("kalshi API error (%d): %s", e.Status, e.Body)
}

func NewClient(httpClient *http.Client, host string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if host == "" {
		host = DefaultHost
	}
	return &Client{
		host:       strings.TrimRight(host, "/"),
		httpClient: httpClient,
	}
}

type GetMarketsParams struct {
	Limit       int
	Cursor      string
	Status      string
	EventTicker string
}

// MarketsPage is one cursor page. Cursor is empty on the last page.
type MarketsPage struct {
	Markets []map[string]any
	Cursor  string
}

func (c *Client) GetMarketsRaw(ctx context.Context, params GetMarketsParams) (MarketsPage, error) {
	query := url.Values{}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Cursor != "" {
		query.Set("cursor", params.Cursor)
	}
	if params.Status != "" {
		query.Set("status", params.Status)
	}
	if params.EventTicker != "" {
		query.Set("event_ticker", params.EventTicker)
	}
	body, err := c.doRequest(ctx, "/markets", query)
	if err != nil {
		return MarketsPage{}, err
	}
	var payload struct {
		Markets []map[string]any `json:"markets"`
		Cursor  string           `json:"cursor"`
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return MarketsPage{}, fmt.Errorf("decode markets: %w", err)
	}
	return MarketsPage{Markets: payload.Markets, Cursor: payload.Cursor}, nil
}

func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.host + path
	if len(query) > 0 {
		fullURL = fullURL + "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
