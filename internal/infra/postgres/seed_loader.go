package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"coursebank-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// SeedLoader loads the question bank from Postgres, one JSONB row per question.
type SeedLoader struct {
	pool *pgxpool.Pool
}

func NewSeedLoader(pool *pgxpool.Pool) *SeedLoader {
	return &SeedLoader{pool: pool}
}

func (l *SeedLoader) LoadBank(ctx context.Context) ([]domain.Question, error) {
	rows, err := l.pool.Query(ctx, `SELECT data FROM questions ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("load bank: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		var q domain.Question
		if err := json.Unmarshal(raw, &q); err != nil {
			return nil, fmt.Errorf("unmarshal question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load bank: %w", err)
	}
	return questions, nil
}
