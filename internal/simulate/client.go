package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/okian/courtside/internal/domain/types"
)

// defaultRetryAfter is used when a 429 carries no usable Retry-After.
const defaultRetryAfter = 100 * time.Millisecond

// Client talks to the scorekeeper HTTP API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	http       *http.Client
	maxRetries int

	// sleep waits between rate-limited attempts; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error

	rateLimited atomic.Int64
}

// NewClient returns a client for baseURL.
func NewClient(baseURL string, timeout time.Duration, maxRetries int) *Client {
	return &Client{
		baseURL:    baseURL,
		http:       &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
		sleep:      sleepCtx,
	}
}

// scoreBody mirrors the POST /matches/{id}/scores request.
type scoreBody struct {
	EventID     string `json:"event_id"`
	Side        string `json:"side"`
	Contributor int    `json:"contributor"`
	Points      int    `json:"points"`
}

type startBody struct {
	TeamA int `json:"team_a"`
	TeamB int `json:"team_b"`
}

// RateLimited returns how many 429 answers the client has retried.
func (c *Client) RateLimited() int {
	return int(c.rateLimited.Load())
}

// Health checks GET /healthz.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, http.StatusOK, nil)
}

// Teams fetches the roster.
func (c *Client) Teams(ctx context.Context) ([]types.Team, error) {
	var teams []types.Team
	err := c.do(ctx, http.MethodGet, "/teams", nil, http.StatusOK, &teams)
	return teams, err
}

// StartMatch starts a match between two roster indices.
func (c *Client) StartMatch(ctx context.Context, teamA, teamB int) (types.Match, error) {
	var m types.Match
	err := c.do(ctx, http.MethodPost, "/matches", startBody{TeamA: teamA, TeamB: teamB}, http.StatusCreated, &m)
	return m, err
}

// Match fetches the current state of a match.
func (c *Client) Match(ctx context.Context, id string) (types.Match, error) {
	var m types.Match
	err := c.do(ctx, http.MethodGet, "/matches/"+id, nil, http.StatusOK, &m)
	return m, err
}

// Score posts one scoring event.
func (c *Client) Score(ctx context.Context, matchID string, body scoreBody) (types.ScoreResult, error) {
	var res types.ScoreResult
	err := c.do(ctx, http.MethodPost, "/matches/"+matchID+"/scores", body, http.StatusOK, &res)
	return res, err
}

// Finalize finalizes a match.
func (c *Client) Finalize(ctx context.Context, id string) (types.Outcome, error) {
	var o types.Outcome
	err := c.do(ctx, http.MethodPost, "/matches/"+id+"/finalize", nil, http.StatusOK, &o)
	return o, err
}

// do sends a request, retrying while the server answers 429, and decodes a
// response with status want into out.
func (c *Client) do(ctx context.Context, method, path string, in any, want int, out any) error {
	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
	}

	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("build %s %s: %w", method, path, err)
		}
		if in != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return fmt.Errorf("read %s %s: %w", method, path, err)
		}

		if resp.StatusCode == http.StatusTooManyRequests && attempt < c.maxRetries {
			c.rateLimited.Add(1)
			if err := c.sleep(ctx, retryAfter(resp.Header.Get("Retry-After"), attempt)); err != nil {
				return err
			}
			continue
		}
		if resp.StatusCode != want {
			return fmt.Errorf("%w: %s %s: status %d: %s", ErrUnexpected, method, path, resp.StatusCode, bytes.TrimSpace(body))
		}
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
		return nil
	}
}

// retryAfter honours a Retry-After in seconds, else backs off linearly from
// defaultRetryAfter.
func retryAfter(header string, attempt int) time.Duration {
	if secs, err := strconv.Atoi(header); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultRetryAfter * time.Duration(attempt+1)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
