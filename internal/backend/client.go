// Package backend is the HTTP client for the remote lessons/orders
// store. It owns no retry or cancellation protocol: every call is a
// single request, and a non-2xx status or transport error surfaces as
// an *APIError for the caller to report.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/example/lesson-shop/internal/catalog"
	"github.com/example/lesson-shop/internal/order"
)

// APIError is a failed call to the remote store.
type APIError struct {
	Status int
	Body   string
	Err    error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend request failed: %v", e.Err)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Body)
}

func (e *APIError) Unwrap() error { return e.Err }

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListLessons fetches the full catalog.
func (c *Client) ListLessons(ctx context.Context) ([]catalog.Lesson, error) {
	var lessons []catalog.Lesson
	if err := c.do(ctx, http.MethodGet, "/Lessons", nil, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

// CreateLesson stores a new lesson and returns it with its assigned id.
func (c *Client) CreateLesson(ctx context.Context, lesson catalog.Lesson) (catalog.Lesson, error) {
	var created catalog.Lesson
	if err := c.do(ctx, http.MethodPost, "/Lessons", lesson, &created); err != nil {
		return catalog.Lesson{}, err
	}
	return created, nil
}

// UpdateLesson replaces a lesson's fields. Callers refetch the catalog
// after a successful update; there is no optimistic merge.
func (c *Client) UpdateLesson(ctx context.Context, id string, lesson catalog.Lesson) error {
	return c.do(ctx, http.MethodPut, "/Lessons/"+id, lesson, nil)
}

// UpdateSpaces writes only a lesson's remaining capacity.
func (c *Client) UpdateSpaces(ctx context.Context, id string, spaces int) error {
	body := map[string]int{"spaces": spaces}
	return c.do(ctx, http.MethodPut, "/Lessons/"+id, body, nil)
}

// DeleteLesson removes a lesson. Callers refetch afterward.
func (c *Client) DeleteLesson(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/Lessons/"+id, nil, nil)
}

// SubmitOrder posts a built order to the orders store.
func (c *Client) SubmitOrder(ctx context.Context, o *order.Order) error {
	return c.do(ctx, http.MethodPost, "/Orders", o, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{Status: resp.StatusCode, Body: string(snippet)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
