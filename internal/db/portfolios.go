package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/portfolio-builder/internal/parsing"
	"github.com/jonathan/portfolio-builder/internal/services"
)

var _ services.PortfolioService = (*Store)(nil)

// GetPortfolio returns the user's raw portfolio record
func (s *Store) GetPortfolio(ctx context.Context) (parsing.Value, error) {
	var record []byte
	err := s.db.pool.QueryRow(ctx,
		`SELECT record FROM portfolios WHERE user_id = $1`,
		s.userID,
	).Scan(&record)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return parsing.Value{}, &services.NotFoundError{Resource: "portfolio", ID: s.userID.String()}
		}
		return parsing.Value{}, fmt.Errorf("failed to get portfolio: %w", err)
	}
	return parsing.Parse(record)
}

// SavePortfolio stores the user's raw portfolio record, replacing any previous one
func (s *Store) SavePortfolio(ctx context.Context, record json.RawMessage) error {
	if !json.Valid(record) {
		return &parsing.ParseError{Message: "portfolio record is not valid JSON"}
	}
	_, err := s.db.pool.Exec(ctx,
		`INSERT INTO portfolios (user_id, record)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET record = $2, updated_at = NOW()`,
		s.userID, []byte(record),
	)
	if err != nil {
		return fmt.Errorf("failed to save portfolio: %w", err)
	}
	return nil
}
