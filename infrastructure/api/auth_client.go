// Package api calls the application's HTTP authentication endpoint and checks
// its responses against the documented contract.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"ui_automation/domain/entities"
	"ui_automation/domain/errs"
)

const (
	TokenTypeBearer = "Bearer"
	RoleUser        = "ROLE_USER"
)

// AuthClient posts credentials to the login endpoint
type AuthClient struct {
	baseURL string
	client  *http.Client
	logger  *logrus.Logger
}

// NewAuthClient - creates a client for the login_base_url endpoint
func NewAuthClient(baseURL string, logger *logrus.Logger) (*AuthClient, error) {
	if baseURL == "" {
		return nil, errs.InvalidArgumentf("login_base_url", "not configured")
	}
	return &AuthClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}, nil
}

// BaseURL - returns the login endpoint
func (c *AuthClient) BaseURL() string {
	return c.baseURL
}

// CreateAuthPayload - builds a login body; rememberMe is always set
func CreateAuthPayload(email, password string) entities.AuthPayload {
	return entities.AuthPayload{
		Email:      email,
		Password:   password,
		RememberMe: true,
	}
}

// LoginResult holds the raw and decoded login response
type LoginResult struct {
	StatusCode int
	Body       []byte
	Response   entities.AuthResponse
}

// Login - posts the payload as JSON. Any status other than 200 is an error,
// returned together with the result so callers can inspect the body.
func (c *AuthClient) Login(ctx context.Context, payload entities.AuthPayload) (*LoginResult, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal auth payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Infof("Logging in as %s via %s", payload.Email, c.baseURL)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read login response: %w", err)
	}

	result := &LoginResult{StatusCode: resp.StatusCode, Body: body}
	if resp.StatusCode != http.StatusOK {
		return result, fmt.Errorf("unexpected status code: %s - %s", resp.Status, string(body))
	}
	if err := json.Unmarshal(body, &result.Response); err != nil {
		return result, fmt.Errorf("failed to decode login response: %w", err)
	}
	return result, nil
}

// Check - asserts the response belongs to the user in payload and carries a bearer token
func (r *LoginResult) Check(payload entities.AuthPayload) error {
	res := r.Response
	switch {
	case res.Token == "":
		return fmt.Errorf("token missing or empty")
	case res.Email != payload.Email:
		return fmt.Errorf("returned email %q does not match %q", res.Email, payload.Email)
	case res.FullName == "":
		return fmt.Errorf("user name missing in response")
	case len(res.ID) == 0 || string(res.ID) == "null":
		return fmt.Errorf("login response does not contain id")
	case res.Type != TokenTypeBearer:
		return fmt.Errorf("expected token type %q, got %q", TokenTypeBearer, res.Type)
	case res.Role != RoleUser:
		return fmt.Errorf("role mismatch: expected %q, got %q", RoleUser, res.Role)
	}
	return nil
}
