package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/abhisek/flashiz/internal/models"
)

type historyRepo struct {
	db *sql.DB
}

func (r *historyRepo) Append(ctx context.Context, a models.Attempt) error {
	_, err := sqlBuilder.Insert("attempts").
		Columns("id", "deck_id", "deck_name", "total_cards", "correct", "accuracy",
			"time_taken", "best_streak", "hints_used", "date_ms").
		Values(a.ID, a.DeckID, a.DeckName, a.TotalCards, a.Correct, a.Accuracy,
			a.TimeTaken, a.BestStreak, a.HintsUsed, a.Date.UnixMilli()).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("append attempt: %w", err)
	}
	return nil
}

func (r *historyRepo) List(ctx context.Context, opts QueryOpts) ([]models.Attempt, error) {
	query := sqlBuilder.Select(
		"id", "deck_id", "deck_name", "total_cards", "correct", "accuracy",
		"time_taken", "best_streak", "hints_used", "date_ms",
	).From("attempts")

	if opts.Deck != "" {
		query = query.Where(squirrel.Eq{"deck_name": opts.Deck})
	}
	if !opts.From.IsZero() {
		query = query.Where(squirrel.GtOrEq{"date_ms": opts.From.UnixMilli()})
	}
	if !opts.To.IsZero() {
		query = query.Where(squirrel.LtOrEq{"date_ms": opts.To.UnixMilli()})
	}

	// Newest first so Limit keeps the most recent rows; reversed below.
	query = query.OrderBy("seq DESC")
	if opts.Limit > 0 {
		query = query.Limit(uint64(opts.Limit))
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var out []models.Attempt
	for rows.Next() {
		var (
			a      models.Attempt
			dateMs int64
		)
		if err := rows.Scan(&a.ID, &a.DeckID, &a.DeckName, &a.TotalCards, &a.Correct,
			&a.Accuracy, &a.TimeTaken, &a.BestStreak, &a.HintsUsed, &dateMs); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Date = time.UnixMilli(dateMs).UTC()
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	slices.Reverse(out)
	return out, nil
}

func (r *historyRepo) Clear(ctx context.Context) error {
	if _, err := sqlBuilder.Delete("attempts").RunWith(r.db).ExecContext(ctx); err != nil {
		return fmt.Errorf("clear attempts: %w", err)
	}
	return nil
}
