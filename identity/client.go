package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleSysop Role = "SYSOP"
	RoleStaff Role = "STAFF"
	RoleUser  Role = "USER"
)

// UserInfo mirrors the user service's read payload.
type UserInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	IsActive bool   `json:"isActive"`
}

// IsAdmin reports whether the user holds the elevated role that bypasses
// ownership checks.
func (u UserInfo) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type apiResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      *UserInfo `json:"data"`
	ErrorCode string    `json:"errorCode"`
}

// Client calls the user service's read endpoint.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchUser looks up a single user. The authorization header is forwarded
// as given; any transport failure, non-2xx status, malformed body, or
// explicit failure envelope is returned as an error.
func (c *Client) FetchUser(ctx context.Context, userID uint, authHeader string) (*UserInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/api/v1/users/%d", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", authHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user service returned status %d for user %d", resp.StatusCode, userID)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode user service response: %w", err)
	}
	if !body.Success || body.Data == nil {
		return nil, fmt.Errorf("user service reported failure for user %d: %s", userID, body.Message)
	}

	return body.Data, nil
}
