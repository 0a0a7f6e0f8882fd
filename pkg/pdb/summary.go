// Package pdb provides minimal support for extracting summary
// information from PDB files returned by the fold API. The structure
// itself is passed through to clients unchanged; only ATOM records of
// the first model are read, anything else is ignored.
package pdb

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Summary describes a predicted structure. The mean confidence is the
// per-residue pLDDT the fold model stores in the B-factor column,
// averaged over alpha carbons and reported on the 0-100 scale.
type Summary struct {
	Atoms     int      `json:"atoms"`
	Residues  int      `json:"residues"`
	Chains    []string `json:"chains"`
	MeanPLDDT float64  `json:"mean_plddt"`
}

var ErrNoAtoms = errors.New("unable to find atom records in structure")

// Summarize extracts a Summary from PDB text.
func Summarize(structure string) (*Summary, error) {
	var (
		atoms    int
		caSum    float64
		caCount  int
		allSum   float64
		chains   []string
		residues = make(map[string]struct{})
		seen     = make(map[string]struct{})
	)

	for _, line := range strings.Split(structure, "\n") {
		if strings.HasPrefix(line, "ENDMDL") {
			break
		}
		if !strings.HasPrefix(line, "ATOM  ") {
			continue
		}
		if len(line) < 66 {
			return nil, fmt.Errorf("unable to parse atom record: %q", line)
		}

		factor, err := strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64)
		if err != nil {
			return nil, fmt.Errorf("unable to parse atom confidence: %w", err)
		}

		atoms++
		allSum += factor

		if strings.TrimSpace(line[12:16]) == "CA" {
			caSum += factor
			caCount++
		}

		chain := string(line[21])
		if _, found := seen[chain]; !found {
			seen[chain] = struct{}{}
			chains = append(chains, chain)
		}
		residues[line[21:27]] = struct{}{}
	}

	if atoms == 0 {
		return nil, ErrNoAtoms
	}

	mean := allSum / float64(atoms)
	if caCount > 0 {
		mean = caSum / float64(caCount)
	}
	// The fold API emits confidence as a 0-1 fraction.
	if mean <= 1.0 {
		mean *= 100
	}

	return &Summary{
		Atoms:     atoms,
		Residues:  len(residues),
		Chains:    chains,
		MeanPLDDT: math.Round(mean*100) / 100,
	}, nil
}
