package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/freelancehub/internal/client/models"
	"github.com/dmitrijs2005/freelancehub/internal/common"
	"github.com/google/uuid"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPClient talks to the API rooted at baseURL, e.g.
// "http://127.0.0.1:8080/api".
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) getToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do sends body (if any) as JSON and decodes a 2xx response into out.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(common.RequestIDHeader, uuid.NewString())
	if t := c.getToken(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(status int, data []byte) error {
	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	msg := http.StatusText(status)
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		msg = body.Error
		if body.Details != "" {
			msg += ": " + body.Details
		}
	}
	return &APIError{StatusCode: status, Message: msg}
}

func (c *HTTPClient) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return err
	}
	if out.Status != "ok" {
		return fmt.Errorf("%w: status %q", ErrUnavailable, out.Status)
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, mobile string, password []byte) (*models.Session, error) {
	in := map[string]string{"mobileNumber": mobile, "password": string(password)}

	var out struct {
		Success bool        `json:"success"`
		User    models.User `json:"user"`
		Token   string      `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", in, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, errors.New("login rejected")
	}

	c.SetToken(out.Token)
	return &models.Session{User: out.User, Token: out.Token}, nil
}

func (c *HTTPClient) CheckMobile(ctx context.Context, mobile string) (bool, string, error) {
	var out struct {
		Exists   bool    `json:"exists"`
		UserType *string `json:"userType"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/check-mobile", map[string]string{"mobileNumber": mobile}, &out); err != nil {
		return false, "", err
	}
	if out.UserType == nil {
		return out.Exists, "", nil
	}
	return out.Exists, *out.UserType, nil
}

func (c *HTTPClient) CategoryCounts(ctx context.Context) (map[string]int, error) {
	var out struct {
		Categories map[string]int `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/freelancers/categories", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

func (c *HTTPClient) FeaturedJobs(ctx context.Context) ([]models.Job, error) {
	var out struct {
		Jobs []models.Job `json:"jobs"`
	}
	if err := c.do(ctx, http.MethodGet, "/jobs/featured", nil, &out); err != nil {
		return nil, err
	}
	return out.Jobs, nil
}

func (c *HTTPClient) ClientJobs(ctx context.Context, clientID string) ([]models.Job, error) {
	var out struct {
		Jobs []models.Job `json:"jobs"`
	}
	if err := c.do(ctx, http.MethodGet, "/jobs/client/"+url.PathEscape(clientID), nil, &out); err != nil {
		return nil, err
	}
	return out.Jobs, nil
}

func (c *HTTPClient) RegisterFreelancer(ctx context.Context, f *models.Freelancer) error {
	return c.do(ctx, http.MethodPost, "/freelancers", f, nil)
}

func (c *HTTPClient) RegisterClient(ctx context.Context, cl *models.Client) error {
	return c.do(ctx, http.MethodPost, "/clients", cl, nil)
}

func (c *HTTPClient) PostJob(ctx context.Context, j *models.Job) (string, error) {
	var out struct {
		JobID string `json:"jobId"`
	}
	if err := c.do(ctx, http.MethodPost, "/jobs", j, &out); err != nil {
		return "", err
	}
	return out.JobID, nil
}
