// Package identity resolves bearer tokens against the auth collaborator.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Resolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

type Client struct {
	baseURL    string
	serviceKey string
	client     *http.Client
}

func NewClient(baseURL, serviceKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type userResponse struct {
	ID string `json:"id"`
}

// Resolve returns the user id the token authenticates, or an error if the
// auth service rejects it.
func (c *Client) Resolve(ctx context.Context, token string) (string, error) {
	endpoint := c.baseURL + "/auth/v1/user"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.serviceKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		msg := strings.TrimSpace(string(body))
		if msg != "" {
			return "", fmt.Errorf("identity http status %d: %s", resp.StatusCode, msg)
		}
		return "", fmt.Errorf("identity http status %d", resp.StatusCode)
	}

	var user userResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", err
	}
	if user.ID == "" {
		return "", errors.New("identity response missing user id")
	}
	return user.ID, nil
}

var _ Resolver = (*Client)(nil)
