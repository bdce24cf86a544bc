package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	sessionnav "github.com/ubillmobile/sessionnav"
)

// ErrRequestFailed is returned when the backend answers with a non-2xx
// status.
var ErrRequestFailed = errors.New("api request failed")

const (
	endpointLogin          = "/login"
	endpointApprovedClient = "/get-approved-client"
	endpointOwnerBuildings = "/get-owner-buildings"

	defaultTimeout = 15 * time.Second
)

// Config defines the backend endpoints and transport limits.
type Config struct {
	BaseURL string
	// Timeout bounds each request end to end. Zero applies the default.
	Timeout time.Duration
}

// Client is a stateless HTTP client for the billing backend. It is safe
// for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Building is the minimal addressable view of one owner-building list
// item, after wire-level alias resolution.
type Building struct {
	ID      int64
	Name    string
	Address string
}

// The lookup endpoint spells its fields inconsistently across backend
// versions; resolve the aliases at the wire only.
type ownerBuildingWire struct {
	ID           json.Number `json:"Id"`
	BuildingID   json.Number `json:"BuildingId"`
	Name         string      `json:"Name"`
	BuildingName string      `json:"BuildingName"`
	Address      string      `json:"Address"`
}

// NewClient creates a backend client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Login authenticates with the backend and returns the raw payload for
// the normalizer. The credential names are the backend's, not ours.
func (c *Client) Login(ctx context.Context, userID, password string) (sessionnav.RawPayload, error) {
	body := map[string]string{
		"UserId":   userID,
		"Password": password,
	}

	var payload sessionnav.RawPayload
	if err := c.postJSON(ctx, endpointLogin, "", body, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ApprovedClient fetches the profile payload for an authenticated client.
// The shape differs from the login payload; both go through the same
// normalizer.
func (c *Client) ApprovedClient(ctx context.Context, clientID int64) (sessionnav.RawPayload, error) {
	params := url.Values{}
	params.Set("userId", fmt.Sprintf("%d", clientID))

	var payload sessionnav.RawPayload
	if err := c.getJSON(ctx, endpointApprovedClient, params, "", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// OwnerBuildings lists the buildings an owner may select, authenticated
// by the session's login key.
func (c *Client) OwnerBuildings(ctx context.Context, loginKey string) ([]Building, error) {
	var wire []ownerBuildingWire
	if err := c.getJSON(ctx, endpointOwnerBuildings, nil, loginKey, &wire); err != nil {
		return nil, err
	}

	buildings := make([]Building, 0, len(wire))
	for _, w := range wire {
		b := Building{
			Name:    w.Name,
			Address: w.Address,
		}
		if b.Name == "" {
			b.Name = w.BuildingName
		}
		if id, err := w.ID.Int64(); err == nil && id != 0 {
			b.ID = id
		} else if id, err := w.BuildingID.Int64(); err == nil {
			b.ID = id
		}
		buildings = append(buildings, b)
	}
	return buildings, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, loginKey string, out any) error {
	target := c.baseURL + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}

	return c.do(req, loginKey, out)
}

func (c *Client) postJSON(ctx context.Context, endpoint, loginKey string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}

	return c.do(req, loginKey, out)
}

func (c *Client) do(req *http.Request, loginKey string, out any) error {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if loginKey != "" {
		req.Header.Set("Authorization", "Bearer "+loginKey)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("%w: %s %s: status %d", ErrRequestFailed, req.Method, req.URL.Path, res.StatusCode)
	}

	return json.NewDecoder(res.Body).Decode(out)
}
