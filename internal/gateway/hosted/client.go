// Package hosted implements the entity gateway against the hosted entity
// service over HTTP. Every call is a single request with a bounded timeout;
// failures surface as generic gateway errors with no retries.
package hosted

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/quickdesk/quickdesk/internal/config"
	"github.com/quickdesk/quickdesk/internal/gateway"
)

// Client talks to the hosted entity service. One client serves all entity
// types; typed gateways are thin views over it.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds a client from gateway configuration.
func NewClient(cfg config.GatewayConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout()},
		logger:  logger,
	}
}

// Gateways returns the per-entity gateway views backed by this client.
func (c *Client) Gateways() gateway.Gateways {
	return gateway.Gateways{
		Tickets:     &ticketGateway{c},
		Users:       &userGateway{c},
		Categories:  &categoryGateway{c},
		Invitations: &invitationGateway{c},
	}
}

// Ping verifies the entity service is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return err
	}
	c.addHeaders(req)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("entity service health: status %d", resp.StatusCode)
	}
	return nil
}

type filterRequest struct {
	Predicate gateway.Fields `json:"predicate"`
	Sort      string         `json:"sort,omitempty"`
}

func (c *Client) list(ctx context.Context, entity, sortKey string, out any) error {
	endpoint := c.entityURL(entity)
	if sortKey != "" {
		endpoint += "?sort=" + url.QueryEscape(sortKey)
	}
	return c.do(ctx, http.MethodGet, endpoint, nil, out)
}

func (c *Client) filter(ctx context.Context, entity string, predicate gateway.Fields, sortKey string, out any) error {
	body := filterRequest{Predicate: predicate, Sort: sortKey}
	return c.do(ctx, http.MethodPost, c.entityURL(entity)+"/filter", body, out)
}

func (c *Client) get(ctx context.Context, entity, id string, out any) error {
	return c.do(ctx, http.MethodGet, c.entityURL(entity)+"/"+url.PathEscape(id), nil, out)
}

func (c *Client) create(ctx context.Context, entity string, fields gateway.Fields, out any) error {
	return c.do(ctx, http.MethodPost, c.entityURL(entity), fields, out)
}

func (c *Client) update(ctx context.Context, entity, id string, fields gateway.Fields, out any) error {
	return c.do(ctx, http.MethodPatch, c.entityURL(entity)+"/"+url.PathEscape(id), fields, out)
}

func (c *Client) entityURL(entity string) string {
	return c.baseURL + "/api/entities/" + entity
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	c.addHeaders(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("entity service request failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("entity service: %s %s: status %d: %s", method, endpoint, resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) addHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}
	req.Header.Set("Accept", "application/json")
}
