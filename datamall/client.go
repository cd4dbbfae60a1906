package datamall

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ph-dataviz/gtfs-sg/config"
)

// Client fetches paginated datasets from the LTA DataMall API. The API caps
// responses at a fixed page size and pages via the $skip query parameter;
// the client walks pages with a small delay between requests to stay under
// the rate limit.
type Client struct {
	httpClient *http.Client
	baseURL    string
	accountKey string
	pageSize   int
	delay      time.Duration
	logger     *zap.Logger
}

// NewClient creates a DataMall client from configuration.
func NewClient(logger *zap.Logger, cfg config.DataMallConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond},
		baseURL:    cfg.BaseURL,
		accountKey: cfg.AccountKey,
		pageSize:   cfg.PageSize,
		delay:      time.Duration(cfg.DelayMS) * time.Millisecond,
		logger:     logger,
	}
}

// BusStops fetches all bus stop records.
func (c *Client) BusStops(ctx context.Context) ([]BusStop, error) {
	var out []BusStop
	err := c.fetchAllPages(ctx, "BusStops", func(page json.RawMessage) (int, error) {
		return appendPage(page, &out)
	})
	return out, err
}

// BusServices fetches all bus service records.
func (c *Client) BusServices(ctx context.Context) ([]BusService, error) {
	var out []BusService
	err := c.fetchAllPages(ctx, "BusServices", func(page json.RawMessage) (int, error) {
		return appendPage(page, &out)
	})
	return out, err
}

// BusRoutes fetches all bus route calling-point records.
func (c *Client) BusRoutes(ctx context.Context) ([]BusRoute, error) {
	var out []BusRoute
	err := c.fetchAllPages(ctx, "BusRoutes", func(page json.RawMessage) (int, error) {
		return appendPage(page, &out)
	})
	return out, err
}

func appendPage[T any](page json.RawMessage, out *[]T) (int, error) {
	var records []T
	if err := json.Unmarshal(page, &records); err != nil {
		return 0, err
	}
	*out = append(*out, records...)
	return len(records), nil
}

// fetchAllPages walks a paginated endpoint until a short page signals the
// end of the dataset.
func (c *Client) fetchAllPages(ctx context.Context, path string, consume func(json.RawMessage) (int, error)) error {
	skip := 0
	total := 0
	for {
		page, err := c.fetchPage(ctx, path, skip)
		if err != nil {
			return fmt.Errorf("fetching %s at skip=%d: %w", path, skip, err)
		}

		n, err := consume(page)
		if err != nil {
			return fmt.Errorf("decoding %s at skip=%d: %w", path, skip, err)
		}
		total += n

		if n < c.pageSize {
			break
		}
		skip += c.pageSize

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.delay):
		}
	}
	c.logger.Info("fetched dataset",
		zap.String("endpoint", path),
		zap.Int("records", total),
	)
	return nil
}

func (c *Client) fetchPage(ctx context.Context, path string, skip int) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("AccountKey", c.accountKey)
	req.Header.Set("accept", "application/json")

	q := req.URL.Query()
	q.Set("$skip", strconv.Itoa(skip))
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, req.URL)
	}

	var body struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body.Value, nil
}
