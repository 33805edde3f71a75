package invoice

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// UpstreamError carries the document service's failure through unchanged
// so handlers can relay the original status code and body.
type UpstreamError struct {
	StatusCode  int
	ContentType string
	Body        string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("invoice service returned %d: %s", e.StatusCode, e.Body)
}

// Document is a rendered artifact relayed from the upstream service.
type Document struct {
	ContentType string
	Data        []byte
}

// Client talks to the external invoice-generation service. It holds no
// state and performs no business logic.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// NewClient builds a Client for the service at baseURL.
func NewClient(baseURL string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// Generate asks the upstream to render the invoice PDF for an order and
// returns the binary document.
func (c *Client) Generate(ctx context.Context, orderID int64) (*Document, error) {
	url := fmt.Sprintf("%s/invoice/generate/%d", c.baseURL, orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("invoice client: generate order_id=%d error=%v", orderID, err)
		return nil, fmt.Errorf("call invoice service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read invoice response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Printf("invoice client: generate order_id=%d upstream status=%d", orderID, resp.StatusCode)
		return nil, &UpstreamError{
			StatusCode:  resp.StatusCode,
			ContentType: resp.Header.Get("Content-Type"),
			Body:        string(body),
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}
	return &Document{ContentType: contentType, Data: body}, nil
}

// FetchOrder relays the upstream's JSON view of an order, used by invoice
// preview screens.
func (c *Client) FetchOrder(ctx context.Context, orderID int64) ([]byte, error) {
	url := fmt.Sprintf("%s/invoice/orders/%d", c.baseURL, orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("invoice client: fetch order_id=%d error=%v", orderID, err)
		return nil, fmt.Errorf("call invoice service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read invoice response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{
			StatusCode:  resp.StatusCode,
			ContentType: resp.Header.Get("Content-Type"),
			Body:        string(body),
		}
	}
	return body, nil
}
