package fold

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/app-sre/fabi/pkg/env"
)

const (
	// DefaultEndpoint is the public ESM Atlas fold API.
	DefaultEndpoint = "https://api.esmatlas.com"

	defaultTimeout           = 30 * time.Second
	defaultMaxInflight       = 2
	defaultMaxSequenceLength = 1000
)

// FoldEnv carries the configuration of the upstream structure
// prediction API. Every variable is optional and falls back to the
// public ESM Atlas service defaults.
type FoldEnv struct {
	Endpoint          string
	Timeout           time.Duration
	MaxInflight       int
	MaxSequenceLength int
}

func NewFoldEnv() *FoldEnv {
	return &FoldEnv{}
}

func (f *FoldEnv) Populate() error {
	f.Endpoint = DefaultEndpoint
	if s := os.Getenv("FOLD_API_URL"); s != "" {
		f.Endpoint = strings.TrimRight(s, "/")
	}

	f.Timeout = defaultTimeout
	if s := os.Getenv("FOLD_TIMEOUT"); s != "" {
		timeout, err := env.Duration(s)
		if err != nil {
			return &env.TypeError{Name: "FOLD_TIMEOUT"}
		}
		f.Timeout = timeout
	}

	f.MaxInflight = defaultMaxInflight
	if s := os.Getenv("FOLD_MAX_INFLIGHT"); s != "" {
		inflight, err := strconv.Atoi(s)
		if err != nil || inflight < 1 {
			return &env.TypeError{Name: "FOLD_MAX_INFLIGHT"}
		}
		f.MaxInflight = inflight
	}

	f.MaxSequenceLength = defaultMaxSequenceLength
	if s := os.Getenv("FOLD_MAX_SEQUENCE_LENGTH"); s != "" {
		length, err := strconv.Atoi(s)
		if err != nil || length < 1 {
			return &env.TypeError{Name: "FOLD_MAX_SEQUENCE_LENGTH"}
		}
		f.MaxSequenceLength = length
	}

	return nil
}
