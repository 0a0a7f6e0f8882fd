//go:build integration
// +build integration

package test

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/orlangure/gnomock"
	"github.com/orlangure/gnomock/preset/postgres"
	"github.com/stretchr/testify/assert"
)

var residueNames = map[rune]string{
	'A': "ALA", 'C': "CYS", 'D': "ASP", 'E': "GLU", 'F': "PHE",
	'G': "GLY", 'H': "HIS", 'I': "ILE", 'K': "LYS", 'L': "LEU",
	'M': "MET", 'N': "ASN", 'P': "PRO", 'Q': "GLN", 'R': "ARG",
	'S': "SER", 'T': "THR", 'V': "VAL", 'W': "TRP", 'Y': "TYR",
}

func structure(sequence string, confidence float64) string {
	var b strings.Builder

	for i, r := range sequence {
		name, found := residueNames[r]
		if !found {
			name = "UNK"
		}

		fmt.Fprintf(&b, "ATOM  %5d  CA  %3s A%4d    %8.3f%8.3f%8.3f%6.2f%6.2f\n",
			i+1, name, i+1, float64(i)*3.8, 0.0, 0.0, 1.0, confidence)
	}
	b.WriteString("END\n")

	return b.String()
}

// startFoldAPI serves a stand-in for the fold API, returning a
// generated structure for whatever sequence it is given.
func startFoldAPI(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/foldSequence/v1/pdb/", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		fmt.Fprint(w, structure(string(body), 0.85))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s := httptest.NewServer(mux)
	t.Cleanup(s.Close)

	return s
}

// splunkRecorder captures the events written to a stand-in Splunk HEC
// endpoint.
type splunkRecorder struct {
	mu     sync.Mutex
	events []map[string]any
}

func (s *splunkRecorder) Events() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]map[string]any(nil), s.events...)
}

func startSplunk(t *testing.T) (*httptest.Server, *splunkRecorder) {
	recorder := &splunkRecorder{}

	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var event map[string]any

		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			http.Error(w, `{"text":"Invalid data format","code":6}`, http.StatusBadRequest)
			return
		}

		recorder.mu.Lock()
		recorder.events = append(recorder.events, event)
		recorder.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"text":"Success","code":0}`)
	}))
	t.Cleanup(s.Close)

	return s, recorder
}

func startPostgres(t *testing.T) *gnomock.Container {
	p := postgres.Preset(
		postgres.WithUser("gnomock", "gnomick"),
		postgres.WithDatabase("mydb"),
	)

	options := p.Options()
	options = append(options, gnomock.WithRegistryAuth(os.Getenv("QUAY_TOKEN")))
	options = append(options, gnomock.WithUseLocalImagesFirst())
	psql, err := gnomock.StartCustom("quay.io/app-sre/postgres:12.5", p.Ports(),
		options...,
	)
	assert.NoError(t, err)

	t.Cleanup(func() { _ = gnomock.Stop(psql) })

	return psql
}

func setEnvironment(foldEndpoint, dbHost, dbPort, splunkEndpoint string) {
	os.Setenv("FOLD_API_URL", foldEndpoint)
	os.Setenv("FOLD_TIMEOUT", "10s")

	os.Setenv("DB_DRIVER", "pgx")
	os.Setenv("DB_HOST", dbHost)
	os.Setenv("DB_PORT", dbPort)
	os.Setenv("DB_USER", "gnomock")
	os.Setenv("DB_PASS", "gnomick")
	os.Setenv("DB_NAME", "mydb")
	os.Setenv("DB_WRITE", "true")

	os.Setenv("SPLUNK_INDEX", "main")
	os.Setenv("SPLUNK_TOKEN", "integration")
	os.Setenv("SPLUNK_ENDPOINT", splunkEndpoint)

	os.Setenv("HOST", "test")
	os.Setenv("NAMESPACE", "test")
	os.Setenv("POD_NAME", "test")
}

func waitForPortOpen(port int) {
	address := net.JoinHostPort("localhost", strconv.Itoa(port))
	for {
		_, err := net.DialTimeout("tcp", address, 500*time.Millisecond)
		if err == nil {
			break
		}
	}
}
