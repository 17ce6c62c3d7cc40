// Package httpclient talks to the poll backend over HTTP. The backend owns
// persistence and vote integrity; this client only moves records.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
)

const (
	DefaultRateLimit = 10
	DefaultTimeout   = 10 * time.Second
)

// StatusError is returned for any non-2xx answer other than 404.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: backend returned %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s: backend returned %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Unwrap maps client errors to domain.ErrRejected so callers can tell a
// refused request from an unavailable backend.
func (e *StatusError) Unwrap() error {
	if e.Code >= 400 && e.Code < 500 {
		return domain.ErrRejected
	}
	return nil
}

type Options struct {
	// RateLimit is the number of requests per second; the burst matches it.
	RateLimit float64
	Timeout   time.Duration
	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

var _ ports.PollBackend = (*Client)(nil)

func New(baseURL string, opts Options) *Client {
	if opts.RateLimit <= 0 {
		opts.RateLimit = DefaultRateLimit
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(opts.RateLimit), max(int(opts.RateLimit), 1)),
	}
}

func (c *Client) FetchPoll(ctx context.Context, pollID int64) (*domain.Poll, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/polls/%d", pollID), "", nil)
	if err != nil {
		return nil, err
	}

	var poll domain.Poll
	if err := json.Unmarshal(body, &poll); err != nil {
		return nil, fmt.Errorf("failed to decode poll %d: %w", pollID, err)
	}
	if poll.ID == 0 {
		poll.ID = pollID
	}
	return &poll, nil
}

// FetchResponses decodes the response list record by record. A record that
// does not decode is logged and skipped; the rest are still returned.
func (c *Client) FetchResponses(ctx context.Context, pollID int64) ([]domain.SurveyResponse, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/opinion_poll/%d", pollID), "", nil)
	if err != nil {
		return nil, err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode responses of poll %d: %w", pollID, err)
	}

	responses := make([]domain.SurveyResponse, 0, len(raw))
	for i, r := range raw {
		var resp domain.SurveyResponse
		if err := json.Unmarshal(r, &resp); err != nil {
			log.Printf("skipping response %d of poll %d: %v", i, pollID, err)
			continue
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func (c *Client) SubmitSurvey(ctx context.Context, submission domain.SurveySubmission) error {
	payload, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("failed to encode survey: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, "/opinion_poll", "application/json", payload)
	return err
}

func (c *Client) CastVote(ctx context.Context, vote domain.Vote) error {
	payload, err := json.Marshal(vote)
	if err != nil {
		return fmt.Errorf("failed to encode vote: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, "/votes", "application/json", payload)
	return err
}

// CreatePoll posts the poll as a multipart form, the competitor list as a
// JSON encoded field.
func (c *Client) CreatePoll(ctx context.Context, input domain.CreatePollInput) (*domain.Poll, error) {
	competitors, err := json.Marshal(input.Competitors)
	if err != nil {
		return nil, fmt.Errorf("failed to encode competitors: %w", err)
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	fields := []struct{ name, value string }{
		{"title", input.Title},
		{"presidential", input.Presidential},
		{"category", input.Category},
		{"region", input.Region},
		{"county", input.County},
		{"constituency", input.Constituency},
		{"ward", input.Ward},
		{"competitors", string(competitors)},
	}
	for _, f := range fields {
		if err := form.WriteField(f.name, f.value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", f.name, err)
		}
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("failed to close form: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/polls", form.FormDataContentType(), buf.Bytes())
	if err != nil {
		return nil, err
	}

	var poll domain.Poll
	if err := json.Unmarshal(body, &poll); err != nil {
		return nil, fmt.Errorf("failed to decode created poll: %w", err)
	}
	return &poll, nil
}

// ListPolls returns the polls of a category, or every poll when category is
// empty. Like FetchResponses it skips records that do not decode.
func (c *Client) ListPolls(ctx context.Context, category string) ([]domain.PollSummary, error) {
	path := "/polls"
	if category != "" {
		path += "?" + url.Values{"category": {category}}.Encode()
	}
	body, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.PollSummary](body, "poll")
}

func (c *Client) CreateCustomPoll(ctx context.Context, input domain.CreateCustomPollInput) (*domain.CustomPoll, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to encode custom poll: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, "/polls/custom_poll", "application/json", payload)
	if err != nil {
		return nil, err
	}

	var poll domain.CustomPoll
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &poll); err != nil {
			return nil, fmt.Errorf("failed to decode created custom poll: %w", err)
		}
	}
	if poll.Title == "" {
		poll.Title = input.Title
	}
	return &poll, nil
}

func (c *Client) FetchCustomPollCompetitors(ctx context.Context, pollID int64) ([]domain.CustomCompetitor, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/custom-polls/%d/competitors", pollID), "", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.CustomCompetitor](body, "competitor")
}

func (c *Client) FetchCustomPollResults(ctx context.Context, pollID int64) (*domain.CustomPoll, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/custom-polls/%d/results", pollID), "", nil)
	if err != nil {
		return nil, err
	}

	var poll domain.CustomPoll
	if err := json.Unmarshal(body, &poll); err != nil {
		return nil, fmt.Errorf("failed to decode results of custom poll %d: %w", pollID, err)
	}
	if poll.ID == 0 {
		poll.ID = pollID
	}
	return &poll, nil
}

func (c *Client) CastCustomVote(ctx context.Context, vote domain.CustomVote) error {
	payload, err := json.Marshal(vote)
	if err != nil {
		return fmt.Errorf("failed to encode vote: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, "/custom-polls/vote", "application/json", payload)
	return err
}

func decodeList[T any](body []byte, kind string) ([]T, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode %s list: %w", kind, err)
	}

	out := make([]T, 0, len(raw))
	for i, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			log.Printf("skipping %s %d: %v", kind, i, err)
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, payload []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response of %s %s: %w", method, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s %s: %w", method, path, domain.ErrPollNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}

