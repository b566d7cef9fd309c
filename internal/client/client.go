// Package client talks to the collections API. Each call returns an error
// instead of swallowing it, so the console can show backend failures.
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

	"github.com/MadinaDev2107/Group-Manager/internal/response"
)

// Error describes a failed collection call. StatusCode is zero when the request
// never got a response.
type Error struct {
	Op         string
	Collection string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
	}
	return fmt.Sprintf("%s %s: %s (status %d)", e.Op, e.Collection, e.Message, e.StatusCode)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a client for baseURL (e.g. http://localhost:8080/api/v1).
// A nil httpClient uses http.DefaultClient.
func New(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// ListAll decodes every row of collection into dst.
func (c *Client) ListAll(ctx context.Context, collection string, dst interface{}) error {
	return c.do(ctx, "select", http.MethodGet, collection, nil, nil, dst)
}

// ListWhere decodes the rows where field equals value into dst. A value that does
// not fit the column's type yields no rows, not an error.
func (c *Client) ListWhere(ctx context.Context, collection, field string, value interface{}, dst interface{}) error {
	return c.do(ctx, "select", http.MethodGet, collection, eq(field, value), nil, dst)
}

func (c *Client) Insert(ctx context.Context, collection string, record interface{}) error {
	return c.do(ctx, "insert", http.MethodPost, collection, nil, []interface{}{record}, nil)
}

// Update writes the full field set of record to the rows where field equals value.
func (c *Client) Update(ctx context.Context, collection string, record interface{}, field string, value interface{}) error {
	return c.do(ctx, "update", http.MethodPatch, collection, eq(field, value), record, nil)
}

func (c *Client) Remove(ctx context.Context, collection, field string, value interface{}) error {
	return c.do(ctx, "delete", http.MethodDelete, collection, eq(field, value), nil, nil)
}

func eq(field string, value interface{}) url.Values {
	return url.Values{field: []string{"eq." + fmt.Sprint(value)}}
}

func (c *Client) do(ctx context.Context, op, method, collection string, query url.Values, body, dst interface{}) error {
	fail := func(err error) error {
		return &Error{Op: op, Collection: collection, Err: err}
	}

	endpoint := c.baseURL + "/" + url.PathEscape(collection)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fail(err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fail(err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(err)
	}
	defer resp.Body.Close()

	var env response.Envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 || decodeErr != nil || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		if decodeErr != nil && resp.StatusCode >= 200 && resp.StatusCode <= 299 {
			return fail(fmt.Errorf("decode response: %w", decodeErr))
		}
		return &Error{Op: op, Collection: collection, StatusCode: resp.StatusCode, Message: msg}
	}

	if dst == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		return fail(fmt.Errorf("decode %s rows: %w", collection, err))
	}
	return nil
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.StatusCode
	}
	return 0
}
