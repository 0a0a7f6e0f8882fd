package audit

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/app-sre/fabi/pkg/env/splunk"
	"github.com/app-sre/fabi/pkg/version"
)

const (
	splunkSource     = "fabi"
	splunkSourceType = "json"

	connectTimeout = 5 * time.Second
	requestTimeout = 30 * time.Second
)

type SplunkAudit struct {
	SplunkEnv *splunk.SplunkEnv

	client *http.Client
}

var _ Audit = (*SplunkAudit)(nil)

type SplunkEventData struct {
	RequestID string `json:"request_id"`
	Digest    string `json:"digest"`
	Length    int    `json:"length"`
	Namespace string `json:"namespace"`
	Pod       string `json:"pod"`
}

type SplunkFoldData struct {
	Event      *SplunkEventData `json:"event"`
	Index      string           `json:"index"`
	Host       string           `json:"host"`
	Source     string           `json:"source"`
	SourceType string           `json:"sourcetype"`
	Time       int64            `json:"time"`
}

type Option func(*SplunkAudit)

func WithHTTPClient(client *http.Client) Option {
	return func(s *SplunkAudit) {
		s.SetHTTPClient(client)
	}
}

func NewSplunkAudit(splunk *splunk.SplunkEnv, options ...Option) *SplunkAudit {
	s := &SplunkAudit{SplunkEnv: splunk}

	s.client = &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: connectTimeout,
			}).DialContext,
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true,
			},
		},
	}

	for _, option := range options {
		option(s)
	}

	return s
}

func (d *SplunkAudit) SetHTTPClient(client *http.Client) {
	d.client = client
}

func (d *SplunkAudit) Write(f *FoldData) error {
	fold := &SplunkFoldData{
		Index:      d.SplunkEnv.Index,
		Host:       d.SplunkEnv.Host,
		Source:     splunkSource,
		SourceType: splunkSourceType,
		Time:       f.Timestamp,
	}

	fold.Event = &SplunkEventData{
		RequestID: f.RequestID,
		Digest:    f.Digest,
		Length:    f.Length,
		Namespace: d.SplunkEnv.Namespace,
		Pod:       d.SplunkEnv.Pod,
	}

	content, err := json.Marshal(fold)
	if err != nil {
		return fmt.Errorf("unable to marshal Splunk audit: %w", err)
	}

	url := fmt.Sprintf("%s/services/collector/event", d.SplunkEnv.Endpoint)

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(content))
	if err != nil {
		return fmt.Errorf("unable to create request to Splunk: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Splunk %s", d.SplunkEnv.Token))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("User-Agent", fmt.Sprintf("FABI/%s", version.Version()))

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("unable to send request to Splunk: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("unable to read Splunk response body: %w", err)
	}

	status := struct {
		Code int    `json:"code"`
		Text string `json:"text"`
	}{}

	err = json.Unmarshal(body, &status)
	if err != nil {
		return fmt.Errorf("unable to unmarshal Splunk response: %w", err)
	}
	if status.Code > 0 {
		return fmt.Errorf("unable to write to Splunk: %s (%d)", status.Text, status.Code)
	}

	return nil
}
