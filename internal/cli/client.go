package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"immotycoon/internal/game"
)

// Client is the thin JSON client the immo CLI talks to the API with.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type StateResponse struct {
	State game.State `json:"state"`
}

type AdvanceResponse struct {
	Summary game.MonthSummary `json:"summary"`
	State   game.State        `json:"state"`
}

type CandidatesResponse struct {
	Candidates []game.Tenant `json:"candidates"`
}

type SellResponse struct {
	SalePrice int64      `json:"sale_price"`
	State     game.State `json:"state"`
}

func (c *Client) State(ctx context.Context) (StateResponse, error) {
	var out StateResponse
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/state", nil, &out)
	return out, err
}

func (c *Client) NewGame(ctx context.Context) (StateResponse, error) {
	var out StateResponse
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/game/new", nil, &out)
	return out, err
}

func (c *Client) AdvanceMonth(ctx context.Context) (AdvanceResponse, error) {
	var out AdvanceResponse
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/advance", nil, &out)
	return out, err
}

func (c *Client) BuyProperty(ctx context.Context, propertyID int) (StateResponse, error) {
	var out StateResponse
	err := c.jsonRequest(ctx, http.MethodPost, fmt.Sprintf("/v1/properties/%d/buy", propertyID), nil, &out)
	return out, err
}

func (c *Client) RenovateProperty(ctx context.Context, propertyID int) (StateResponse, error) {
	var out StateResponse
	err := c.jsonRequest(ctx, http.MethodPost, fmt.Sprintf("/v1/properties/%d/renovate", propertyID), nil, &out)
	return out, err
}

func (c *Client) TenantCandidates(ctx context.Context, propertyID int) (CandidatesResponse, error) {
	var out CandidatesResponse
	err := c.jsonRequest(ctx, http.MethodGet, fmt.Sprintf("/v1/properties/%d/tenants", propertyID), nil, &out)
	return out, err
}

func (c *Client) AssignTenant(ctx context.Context, propertyID, tenantID int) (StateResponse, error) {
	var out StateResponse
	err := c.jsonRequest(ctx, http.MethodPost, fmt.Sprintf("/v1/properties/%d/tenants", propertyID), map[string]any{
		"tenant_id": tenantID,
	}, &out)
	return out, err
}

func (c *Client) CancelTenantSelection(ctx context.Context, propertyID int) error {
	return c.jsonRequest(ctx, http.MethodDelete, fmt.Sprintf("/v1/properties/%d/tenants", propertyID), nil, nil)
}

func (c *Client) SellProperty(ctx context.Context, propertyID int) (SellResponse, error) {
	var out SellResponse
	err := c.jsonRequest(ctx, http.MethodPost, fmt.Sprintf("/v1/properties/%d/sell", propertyID), nil, &out)
	return out, err
}

func (c *Client) BuyUpgrade(ctx context.Context, upgradeID string) (StateResponse, error) {
	var out StateResponse
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/upgrades/"+upgradeID+"/buy", nil, &out)
	return out, err
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("api error: %s", strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
