package model

import "time"

// DocumentType is the closed set of document kinds the analyzer accepts.
type DocumentType string

const (
	DocumentTypeResume  DocumentType = "resume"
	DocumentTypeGeneral DocumentType = "general"
)

// Valid reports whether the document type is one of the recognized values.
func (d DocumentType) Valid() bool {
	return d == DocumentTypeResume || d == DocumentTypeGeneral
}

// AnalysisRecord is one completed analysis. Records are append-only.
type AnalysisRecord struct {
	ID           string       `db:"id" json:"id"`
	UserEmail    string       `db:"user_email" json:"user_email"`
	DocumentType DocumentType `db:"document_type" json:"document_type"`
	Summary      string       `db:"summary" json:"summary"`
	Strengths    []string     `db:"strengths" json:"strengths"`
	Weaknesses   []string     `db:"weaknesses" json:"weaknesses"`
	Suggestions  []string     `db:"suggestions" json:"suggestions"`
	TokensUsed   int          `db:"tokens_used" json:"tokens_used"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
}
