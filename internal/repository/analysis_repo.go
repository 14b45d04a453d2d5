package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Imsaurav1/Ai-pdf-analyzer/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalysisRepository persists completed analyses. Records are append-only:
// there is no update or delete path.
type AnalysisRepository interface {
	InsertAnalysis(ctx context.Context, rec *model.AnalysisRecord) error
	ListAnalysesByUser(ctx context.Context, email string, limit, offset int) ([]model.AnalysisRecord, error)
}

type analysisRepo struct {
	pool *pgxpool.Pool
}

// NewAnalysisRepo creates a new AnalysisRepository.
func NewAnalysisRepo(pool *pgxpool.Pool) AnalysisRepository {
	return &analysisRepo{pool: pool}
}

func (r *analysisRepo) InsertAnalysis(ctx context.Context, rec *model.AnalysisRecord) error {
	strengths, err := json.Marshal(emptyIfNil(rec.Strengths))
	if err != nil {
		return fmt.Errorf("marshal strengths: %w", err)
	}
	weaknesses, err := json.Marshal(emptyIfNil(rec.Weaknesses))
	if err != nil {
		return fmt.Errorf("marshal weaknesses: %w", err)
	}
	suggestions, err := json.Marshal(emptyIfNil(rec.Suggestions))
	if err != nil {
		return fmt.Errorf("marshal suggestions: %w", err)
	}

	const q = `
        INSERT INTO analyses (id, user_email, document_type, summary, strengths, weaknesses, suggestions, tokens_used)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at
    `
	err = r.pool.QueryRow(ctx, q,
		rec.ID,
		rec.UserEmail,
		string(rec.DocumentType),
		rec.Summary,
		strengths,
		weaknesses,
		suggestions,
		rec.TokensUsed,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting analysis for user %s: %w", rec.UserEmail, err)
	}
	return nil
}

func (r *analysisRepo) ListAnalysesByUser(ctx context.Context, email string, limit, offset int) ([]model.AnalysisRecord, error) {
	const q = `
        SELECT id, user_email, document_type, summary, strengths, weaknesses, suggestions, tokens_used, created_at
        FROM analyses
        WHERE user_email = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3
    `
	rows, err := r.pool.Query(ctx, q, email, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing analyses for user %s: %w", email, err)
	}
	defer rows.Close()

	var records []model.AnalysisRecord
	for rows.Next() {
		var (
			rec            model.AnalysisRecord
			docType        string
			rawStrengths   []byte
			rawWeaknesses  []byte
			rawSuggestions []byte
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.UserEmail,
			&docType,
			&rec.Summary,
			&rawStrengths,
			&rawWeaknesses,
			&rawSuggestions,
			&rec.TokensUsed,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning analysis row: %w", err)
		}
		rec.DocumentType = model.DocumentType(docType)
		if err := json.Unmarshal(rawStrengths, &rec.Strengths); err != nil {
			return nil, fmt.Errorf("unmarshal strengths for analysis %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal(rawWeaknesses, &rec.Weaknesses); err != nil {
			return nil, fmt.Errorf("unmarshal weaknesses for analysis %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal(rawSuggestions, &rec.Suggestions); err != nil {
			return nil, fmt.Errorf("unmarshal suggestions for analysis %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating analysis rows: %w", err)
	}
	return records, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
