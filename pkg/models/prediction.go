package models

import "time"

type PredictionRecord struct {
	ID        string    `json:"id"`
	Digest    string    `json:"digest"`
	Sequence  string    `json:"sequence"`
	Length    int       `json:"length"`
	MeanPLDDT float64   `json:"mean_plddt"`
	CreatedAt time.Time `json:"created_at"`
}
