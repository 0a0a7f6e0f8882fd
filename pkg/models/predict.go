package models

import (
	"github.com/app-sre/fabi/pkg/pdb"
	"github.com/app-sre/fabi/pkg/protein"
)

type PredictRequest struct {
	Sequence string `json:"sequence"`
}

type PredictResponse struct {
	ID         string              `json:"id"`
	Properties *protein.Properties `json:"properties"`
	Structure  *pdb.Summary        `json:"structure"`
	PDB        string              `json:"pdb"`
	Warnings   []string            `json:"warnings,omitempty"`
	Cached     bool                `json:"cached"`
	Duration   int64               `json:"duration_ms"`
}
