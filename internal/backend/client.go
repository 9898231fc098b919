package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lia/internal/models"
)

// Client talks to a hosted backend. Every operation maps to
// POST /api/<operation> with a JSON body; the bearer token identifies the
// caller and an X-Request-Id header ties log lines to backend traces.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(baseURL, token string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
		log:        log,
	}
}

type rejectBody struct {
	Error string `json:"error"`
}

// call posts the request body and decodes the response into out (skipped
// when out is nil). Non-2xx responses carrying a JSON error become
// *RejectError; everything else is a transport failure.
func (c *Client) call(ctx context.Context, op string, in, out any) error {
	payload := []byte("{}")
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/"+op, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-Request-Id", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("backend call failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var reject rejectBody
		if json.Unmarshal(body, &reject) == nil && reject.Error != "" {
			c.log.Warn("backend rejected call",
				zap.String("op", op), zap.String("reason", reject.Error))
			return &RejectError{Op: op, Reason: reject.Error}
		}
		return fmt.Errorf("%s: backend returned %d", op, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) AddTool(ctx context.Context, tool models.Tool) error {
	return c.call(ctx, "addTool", tool, nil)
}

func (c *Client) GetTools(ctx context.Context) ([]models.Tool, error) {
	var tools []models.Tool
	if err := c.call(ctx, "getTools", nil, &tools); err != nil {
		return nil, err
	}
	return tools, nil
}

func (c *Client) GetConciergeTools(ctx context.Context) ([]models.Tool, error) {
	var tools []models.Tool
	if err := c.call(ctx, "getConciergeTools", nil, &tools); err != nil {
		return nil, err
	}
	return tools, nil
}

func (c *Client) GetConversationHistory(ctx context.Context) ([]models.Message, error) {
	var msgs []models.Message
	if err := c.call(ctx, "getConversationHistory", nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (c *Client) SaveMessage(ctx context.Context, msg models.Message) error {
	return c.call(ctx, "saveMessage", msg, nil)
}

func (c *Client) GetCallerUserProfile(ctx context.Context) (*models.UserProfile, error) {
	var profile *models.UserProfile
	if err := c.call(ctx, "getCallerUserProfile", nil, &profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (c *Client) SaveCallerUserProfile(ctx context.Context, profile models.UserProfile) error {
	return c.call(ctx, "saveCallerUserProfile", profile, nil)
}

func (c *Client) GetCallerUserRole(ctx context.Context) (models.UserRole, error) {
	var role models.UserRole
	if err := c.call(ctx, "getCallerUserRole", nil, &role); err != nil {
		return "", err
	}
	return role, nil
}

func (c *Client) IsCallerAdmin(ctx context.Context) (bool, error) {
	var admin bool
	if err := c.call(ctx, "isCallerAdmin", nil, &admin); err != nil {
		return false, err
	}
	return admin, nil
}

func (c *Client) AssignCallerUserRole(ctx context.Context, principal string, role models.UserRole) error {
	in := struct {
		User string          `json:"user"`
		Role models.UserRole `json:"role"`
	}{principal, role}
	return c.call(ctx, "assignCallerUserRole", in, nil)
}

func (c *Client) GetUserProfile(ctx context.Context, principal string) (*models.UserProfile, error) {
	in := struct {
		User string `json:"user"`
	}{principal}
	var profile *models.UserProfile
	if err := c.call(ctx, "getUserProfile", in, &profile); err != nil {
		return nil, err
	}
	return profile, nil
}
