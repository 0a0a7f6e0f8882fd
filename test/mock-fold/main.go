package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Mock ESM Atlas fold API for local development and manual testing.
// Accepts a raw sequence and returns a deterministic PDB with one
// alpha carbon per residue, so the dashboard has something to render
// without hitting the public service.

const alphabet = "ACDEFGHIKLMNPQRSTVWY"

var residueNames = map[rune]string{
	'A': "ALA", 'C': "CYS", 'D': "ASP", 'E': "GLU", 'F': "PHE",
	'G': "GLY", 'H': "HIS", 'I': "ILE", 'K': "LYS", 'L': "LEU",
	'M': "MET", 'N': "ASN", 'P': "PRO", 'Q': "GLN", 'R': "ARG",
	'S': "SER", 'T': "THR", 'V': "VAL", 'W': "TRP", 'Y': "TYR",
}

// FoldStore remembers folded sequences by the request identifier the
// server assigns, for inspection while debugging.
type FoldStore struct {
	mu    sync.RWMutex
	folds map[string]string // foldID -> sequence
}

var foldStore = &FoldStore{
	folds: make(map[string]string),
}

func main() {
	r := mux.NewRouter()

	r.HandleFunc("/foldSequence/v1/pdb/", handleFold).Methods("POST")
	r.HandleFunc("/foldSequence/v1/pdb/", handlePing).Methods("HEAD")
	r.HandleFunc("/", handlePing).Methods("HEAD", "GET")
	r.HandleFunc("/folds", handleListFolds).Methods("GET")

	log.Println("Starting mock fold API server on :8090")
	if err := http.ListenAndServe(":8090", r); err != nil {
		log.Fatalf("Mock fold API server failed: %v", err)
	}
}

// handleFold folds a raw sequence posted as the request body, the way
// the real API takes it.
func handleFold(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v", err)
		http.Error(w, "unable to read request body", http.StatusBadRequest)
		return
	}

	sequence := strings.ToUpper(strings.TrimSpace(string(body)))
	if sequence == "" {
		http.Error(w, "empty sequence", http.StatusBadRequest)
		return
	}

	for _, residue := range sequence {
		if !strings.ContainsRune(alphabet, residue) {
			http.Error(w, fmt.Sprintf("invalid residue: %q", residue), http.StatusBadRequest)
			return
		}
	}

	// Very long sequences time out upstream; mimic the stall.
	if len(sequence) > 2000 {
		time.Sleep(time.Minute)
	}

	foldID := uuid.NewString()

	foldStore.mu.Lock()
	foldStore.folds[foldID] = sequence
	foldStore.mu.Unlock()

	log.Printf("Folded sequence %s (%d residues)", foldID, len(sequence))

	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("X-Fold-Id", foldID)
	fmt.Fprint(w, structure(sequence))
}

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// handleListFolds lists the sequences folded so far.
func handleListFolds(w http.ResponseWriter, r *http.Request) {
	foldStore.mu.RLock()
	defer foldStore.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(foldStore.folds)
}

// structure renders a single-chain PDB with one alpha carbon per
// residue. The confidence in the B-factor column falls off with
// sequence length, roughly like the real model's does.
func structure(sequence string) string {
	var b strings.Builder

	confidence := 0.95 - 0.0004*float64(len(sequence))
	if confidence < 0.3 {
		confidence = 0.3
	}

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
