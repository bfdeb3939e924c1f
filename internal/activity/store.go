package activity

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store provides database operations for project activity events.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// BatchInsert writes a slice of events in a single multi-row INSERT. It is a
// no-op when events is empty.
func (s *Store) BatchInsert(ctx context.Context, events []Event) error {
	if len(events) == 0 {
		return nil
	}

	const cols = 4
	args := make([]any, 0, len(events)*cols)
	rows := make([]string, 0, len(events))

	for i, ev := range events {
		base := i * cols
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4))

		var userID any
		if ev.UserID != "" {
			userID = ev.UserID
		}
		args = append(args, ev.ProjectID, userID, ev.Kind, ev.OccurredAt)
	}

	query := `INSERT INTO project_events (project_id, user_id, kind, occurred_at)
		VALUES ` + strings.Join(rows, ", ")

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("batch inserting events: %w", err)
	}
	return nil
}

// ViewCount returns the number of recorded view events for a listing.
func (s *Store) ViewCount(ctx context.Context, projectID string) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM project_events WHERE project_id = $1 AND kind = $2`,
		projectID, KindView,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting views: %w", err)
	}
	return n, nil
}
