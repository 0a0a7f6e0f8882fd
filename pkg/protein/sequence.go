package protein

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Alphabet holds the twenty standard one-letter amino acid codes
// accepted by the fold API.
const Alphabet = "ACDEFGHIKLMNPQRSTVWY"

// WarnLength is the number of residues above which predictions are
// known to take minutes, or to fail upstream.
const WarnLength = 400

var ErrEmptySequence = errors.New("sequence is empty")

// ResidueError reports a character outside of the amino acid alphabet.
// Positions are one-based, counted after normalization.
type ResidueError struct {
	Residue  rune
	Position int
}

func (e *ResidueError) Error() string {
	return fmt.Sprintf("invalid residue %q at position %d", e.Residue, e.Position)
}

// LengthError reports a sequence longer than the configured limit.
type LengthError struct {
	Length int
	Limit  int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("sequence length %d exceeds the limit of %d residues", e.Length, e.Limit)
}

// Normalize turns raw user input into a bare upper-case residue string.
// FASTA header lines are dropped and the remaining lines are joined,
// with all whitespace removed.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	for _, line := range strings.Split(raw, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), ">") {
			continue
		}
		for _, r := range line {
			if unicode.IsSpace(r) {
				continue
			}
			b.WriteRune(unicode.ToUpper(r))
		}
	}

	return b.String()
}

// Validate checks a normalized sequence against the amino acid
// alphabet and the residue limit. The limit is ignored when zero.
func Validate(sequence string, limit int) error {
	if sequence == "" {
		return ErrEmptySequence
	}
	if limit > 0 && len(sequence) > limit {
		return &LengthError{Length: len(sequence), Limit: limit}
	}

	for i, r := range sequence {
		if !strings.ContainsRune(Alphabet, r) {
			return &ResidueError{Residue: r, Position: i + 1}
		}
	}

	return nil
}

// Digest returns the hex-encoded SHA-256 of a normalized sequence,
// used as the cache and deduplication key.
func Digest(sequence string) string {
	sum := sha256.Sum256([]byte(sequence))
	return hex.EncodeToString(sum[:])
}
