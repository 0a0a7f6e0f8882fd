package esm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/app-sre/fabi/pkg/env/fold"
	"github.com/app-sre/fabi/pkg/version"
)

const structure = "ATOM      1  N   ARG A   1      11.104   6.134  -6.504  1.00  0.83           N\nEND"

func TestNewClient(t *testing.T) {
	cases := []struct {
		description string
		expected    *fold.FoldEnv
		given       Option
		option      bool
	}{
		{
			"using option that updates internal state",
			&fold.FoldEnv{Endpoint: "http://test"},
			func(c *Client) {
				c.FoldEnv.Endpoint = "http://test"
			},
			true,
		},
		{
			"using option that does nothing",
			&fold.FoldEnv{},
			func(c *Client) {
				// No-op.
			},
			true,
		},
		{
			"without using any options",
			&fold.FoldEnv{},
			func(c *Client) {
				// No-op.
			},
			false,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			var actual *Client

			if tc.option {
				actual = NewClient(&fold.FoldEnv{}, tc.given)
			} else {
				actual = NewClient(&fold.FoldEnv{})
			}

			assert.NotNil(t, actual)
			assert.IsType(t, &Client{}, actual)
			assert.Equal(t, tc.expected, actual.FoldEnv)
			assert.GreaterOrEqual(t, cap(actual.slots), 1)
		})
	}
}

func TestWithHTTPClient(t *testing.T) {
	cases := []struct {
		description string
		given       []Option
		defaults    bool
	}{
		{
			"using default HTTP client set internally",
			[]Option{},
			true,
		},
		{
			"using custom HTTP client",
			[]Option{WithHTTPClient(http.DefaultClient)},
			false,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			aux := NewClient(&fold.FoldEnv{}, tc.given...)

			actual := aux.client

			if tc.defaults {
				assert.NotNil(t, actual.Transport)
			} else {
				assert.Nil(t, actual.Transport)
			}

			assert.NotNil(t, aux)
			assert.IsType(t, &Client{}, aux)
		})
	}
}

func TestClientPredict(t *testing.T) {
	cases := []struct {
		description string
		given       string
		headers     func() *http.Header
		server      func(*httptest.Server) *fold.FoldEnv
		handler     func(*bytes.Buffer, *http.Header) func(w http.ResponseWriter, r *http.Request)
		expected    string
		error       bool
		message     string
	}{
		{
			"valid sequence returns the predicted structure",
			"RPPGFSPFR",
			func() *http.Header {
				return &http.Header{
					"Accept":          []string{"text/plain"},
					"Accept-Encoding": []string{"gzip"},
					"Content-Type":    []string{"application/x-www-form-urlencoded"},
					"User-Agent":      []string{fmt.Sprintf("FABI/%s", version.Version())},
				}
			},
			func(s *httptest.Server) *fold.FoldEnv {
				return &fold.FoldEnv{
					Endpoint:    s.URL,
					Timeout:     5 * time.Second,
					MaxInflight: 2,
				}
			},
			func(b *bytes.Buffer, h *http.Header) func(w http.ResponseWriter, r *http.Request) {
				return func(w http.ResponseWriter, r *http.Request) {
					_, _ = io.Copy(b, r.Body)
					*h = r.Header
					h.Del("Content-Length")
					fmt.Fprint(w, structure)
				}
			},
			structure,
			false,
			``,
		},
		{
			"upstream error status is reported",
			"RPPGFSPFR",
			func() *http.Header {
				return &http.Header{}
			},
			func(s *httptest.Server) *fold.FoldEnv {
				return &fold.FoldEnv{
					Endpoint:    s.URL,
					Timeout:     5 * time.Second,
					MaxInflight: 2,
				}
			},
			func(b *bytes.Buffer, h *http.Header) func(w http.ResponseWriter, r *http.Request) {
				return func(w http.ResponseWriter, r *http.Request) {
					http.Error(w, "upstream overloaded", http.StatusInternalServerError)
				}
			},
			``,
			true,
			`fold API responded with status 500: upstream overloaded`,
		},
		{
			"upstream timeout is reported",
			"RPPGFSPFR",
			func() *http.Header {
				return &http.Header{}
			},
			func(s *httptest.Server) *fold.FoldEnv {
				return &fold.FoldEnv{
					Endpoint:    s.URL,
					Timeout:     50 * time.Millisecond,
					MaxInflight: 2,
				}
			},
			func(b *bytes.Buffer, h *http.Header) func(w http.ResponseWriter, r *http.Request) {
				return func(w http.ResponseWriter, r *http.Request) {
					time.Sleep(500 * time.Millisecond)
				}
			},
			``,
			true,
			`context deadline exceeded`,
		},
		{
			"unreachable fold API endpoint",
			"RPPGFSPFR",
			func() *http.Header {
				return &http.Header{}
			},
			func(s *httptest.Server) *fold.FoldEnv {
				return &fold.FoldEnv{
					Endpoint:    "http://test",
					Timeout:     5 * time.Second,
					MaxInflight: 2,
				}
			},
			func(b *bytes.Buffer, h *http.Header) func(w http.ResponseWriter, r *http.Request) {
				return func(w http.ResponseWriter, r *http.Request) {
					// No-op.
				}
			},
			``,
			true,
			`unable to send request to fold API`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			var server bytes.Buffer

			headers := make(http.Header)

			s := httptest.NewServer(http.HandlerFunc(tc.handler(&server, &headers)))
			defer s.Close()

			client := NewClient(tc.server(s), WithHTTPClient(http.DefaultClient))
			actual, err := client.Predict(context.Background(), tc.given)

			if tc.error {
				assert.NotNil(t, err)
				assert.Contains(t, err.Error(), tc.message)
			} else {
				assert.Nil(t, err)
				assert.Equal(t, tc.given, server.String())
				assert.Equal(t, tc.headers(), &headers)
			}

			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestClientPredictUpstreamError(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "sequence too long", http.StatusForbidden)
	}))
	defer s.Close()

	client := NewClient(&fold.FoldEnv{Endpoint: s.URL, Timeout: 5 * time.Second, MaxInflight: 2})

	_, err := client.Predict(context.Background(), "RPPGFSPFR")

	var upstream *UpstreamError

	assert.NotNil(t, err)
	assert.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusForbidden, upstream.StatusCode)
	assert.Equal(t, "sequence too long", upstream.Message)
}

func TestClientPredictContextCanceled(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer s.Close()

	client := NewClient(&fold.FoldEnv{Endpoint: s.URL, Timeout: 5 * time.Second, MaxInflight: 2})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Predict(ctx, "RPPGFSPFR")

	assert.NotNil(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClientPredictShared(t *testing.T) {
	var requests atomic.Int32

	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		time.Sleep(100 * time.Millisecond)
		fmt.Fprint(w, structure)
	}))
	defer s.Close()

	client := NewClient(&fold.FoldEnv{Endpoint: s.URL, Timeout: 5 * time.Second, MaxInflight: 4})

	var wg sync.WaitGroup

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			actual, err := client.Predict(context.Background(), "RPPGFSPFR")

			assert.Nil(t, err)
			assert.Equal(t, structure, actual)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), requests.Load())
}

func TestClientPredictInflightLimit(t *testing.T) {
	var (
		inflight atomic.Int32
		peak     atomic.Int32
	)

	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current := inflight.Add(1)
		defer inflight.Add(-1)

		for {
			observed := peak.Load()
			if current <= observed || peak.CompareAndSwap(observed, current) {
				break
			}
		}

		time.Sleep(50 * time.Millisecond)
		fmt.Fprint(w, structure)
	}))
	defer s.Close()

	client := NewClient(&fold.FoldEnv{Endpoint: s.URL, Timeout: 5 * time.Second, MaxInflight: 1})

	sequences := []string{"RPPGFSPFR", "GGGGG", "AAAAA", "WWWWW"}

	var wg sync.WaitGroup

	for _, sequence := range sequences {
		sequence := sequence
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := client.Predict(context.Background(), sequence)

			assert.Nil(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), peak.Load())
}

func TestClientPing(t *testing.T) {
	cases := []struct {
		description string
		server      func(*httptest.Server) *fold.FoldEnv
		handler     func(w http.ResponseWriter, r *http.Request)
		error       bool
		message     string
	}{
		{
			"reachable fold API",
			func(s *httptest.Server) *fold.FoldEnv {
				return &fold.FoldEnv{Endpoint: s.URL}
			},
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			false,
			``,
		},
		{
			"any response counts as reachable",
			func(s *httptest.Server) *fold.FoldEnv {
				return &fold.FoldEnv{Endpoint: s.URL}
			},
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			false,
			``,
		},
		{
			"unreachable fold API",
			func(s *httptest.Server) *fold.FoldEnv {
				return &fold.FoldEnv{Endpoint: "http://test"}
			},
			func(w http.ResponseWriter, r *http.Request) {
				// No-op.
			},
			true,
			`unable to reach fold API`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			s := httptest.NewServer(http.HandlerFunc(tc.handler))
			defer s.Close()

			client := NewClient(tc.server(s), WithHTTPClient(http.DefaultClient))
			err := client.Ping(context.Background())

			if tc.error {
				assert.NotNil(t, err)
				assert.Contains(t, err.Error(), tc.message)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}
