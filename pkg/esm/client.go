// Package esm provides a client for the ESM Atlas fold API, which
// predicts the three-dimensional structure of a protein sequence and
// returns it as PDB text.
package esm

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/app-sre/fabi/pkg/env/fold"
	"github.com/app-sre/fabi/pkg/version"
)

const (
	foldPath = "/foldSequence/v1/pdb/"

	connectTimeout = 5 * time.Second
	requestTimeout = 30 * time.Second

	excerptLength = 200
)

// Client calls the fold API over HTTP. Concurrent predictions of the
// same sequence share a single upstream request, and the number of
// in-flight requests is capped to keep load on the public API down.
// A failed prediction is never retried.
type Client struct {
	FoldEnv *fold.FoldEnv

	client *http.Client
	group  singleflight.Group
	slots  chan struct{}
}

// UpstreamError reports a fold API response with a status other than
// 200, carrying an excerpt of the response body.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("fold API responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("fold API responded with status %d: %s", e.StatusCode, e.Message)
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.SetHTTPClient(client)
	}
}

func NewClient(fold *fold.FoldEnv, options ...Option) *Client {
	c := &Client{FoldEnv: fold}

	c.client = &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: connectTimeout,
			}).DialContext,
		},
	}

	inflight := fold.MaxInflight
	if inflight < 1 {
		inflight = 1
	}
	c.slots = make(chan struct{}, inflight)

	for _, option := range options {
		option(c)
	}

	return c
}

func (c *Client) SetHTTPClient(client *http.Client) {
	c.client = client
}

// Predict folds a sequence and returns the structure as PDB text. The
// upstream request is bounded by the configured fold timeout; the
// passed context only stops waiting, so that callers abandoning a
// shared prediction do not cancel it for the others.
func (c *Client) Predict(ctx context.Context, sequence string) (string, error) {
	result := c.group.DoChan(sequence, func() (interface{}, error) {
		return c.fold(sequence)
	})

	select {
	case r := <-result:
		if r.Err != nil {
			return "", r.Err
		}
		return r.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Ping reports whether the fold API is reachable. Any HTTP response
// counts, only transport failures do not.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.FoldEnv.Endpoint, nil)
	if err != nil {
		return fmt.Errorf("unable to create request to fold API: %w", err)
	}
	req.Header.Set("User-Agent", fmt.Sprintf("FABI/%s", version.Version()))

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("unable to reach fold API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	return nil
}

func (c *Client) fold(sequence string) (string, error) {
	timeout := c.FoldEnv.Timeout
	if timeout <= 0 {
		timeout = requestTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	select {
	case c.slots <- struct{}{}:
		defer func() { <-c.slots }()
	case <-ctx.Done():
		return "", fmt.Errorf("unable to reserve fold slot: %w", ctx.Err())
	}

	url := fmt.Sprintf("%s%s", c.FoldEnv.Endpoint, foldPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(sequence))
	if err != nil {
		return "", fmt.Errorf("unable to create request to fold API: %w", err)
	}
	req.Header.Set("Accept", "text/plain")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", fmt.Sprintf("FABI/%s", version.Version()))

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("unable to send request to fold API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("unable to read fold API response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Message: excerpt(body)}
	}

	return string(body), nil
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > excerptLength {
		s = s[:excerptLength]
	}
	return s
}
