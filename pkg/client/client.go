// Package client talks to the scheduler HTTP API.
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
	"strconv"
	"strings"

	"cpu-scheduler-sim/internal/requests"
	"cpu-scheduler-sim/internal/responses"
)

var ErrRequestFailed = errors.New("scheduler request failed")

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
	}
}

// Schedule runs one algorithm ("fcfs", "sjf", "psjf", "priority", "ppriority", "rr").
func (c *Client) Schedule(ctx context.Context, algorithm string, request requests.ScheduleRequests) (responses.ScheduleResponse, error) {
	var response responses.ScheduleResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/"+url.PathEscape(algorithm), request, &response)
	return response, err
}

func (c *Client) ScheduleAll(ctx context.Context, request requests.ScheduleRequests) ([]responses.ScheduleResponse, error) {
	var response []responses.ScheduleResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/all", request, &response)
	return response, err
}

func (c *Client) Generate(ctx context.Context, count int, seed int64) (requests.ScheduleRequests, error) {
	query := url.Values{}
	query.Set("count", strconv.Itoa(count))
	query.Set("seed", strconv.FormatInt(seed, 10))
	var response requests.ScheduleRequests
	err := c.do(ctx, http.MethodGet, "/api/v1/generate?"+query.Encode(), nil, &response)
	return response, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr responses.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%w: %d %s", ErrRequestFailed, resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("%w: %d", ErrRequestFailed, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
