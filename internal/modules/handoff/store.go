package handoff

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InboxStore keeps tickets in the agent_inbox table, which the agent panel polls.
type InboxStore struct {
	db *pgxpool.Pool
}

func NewInboxStore(db *pgxpool.Pool) *InboxStore {
	return &InboxStore{db: db}
}

func (s *InboxStore) Name() string { return "inbox" }

func (s *InboxStore) Post(ctx context.Context, t Ticket) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO agent_inbox (id, question, model_answer, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, t.ID, t.Question, t.ModelAnswer, string(t.Status), t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert agent_inbox: %w", err)
	}
	return nil
}

// Open lists unclaimed tickets, oldest first.
func (s *InboxStore) Open(ctx context.Context, limit int) ([]Ticket, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, question, model_answer, status, created_at, claimed_at
		FROM agent_inbox
		WHERE status = 'open'
		ORDER BY created_at
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Ticket
	for rows.Next() {
		var t Ticket
		var status string
		if err := rows.Scan(&t.ID, &t.Question, &t.ModelAnswer, &status, &t.CreatedAt, &t.ClaimedAt); err != nil {
			return nil, err
		}
		t.Status = Status(status)
		out = append(out, t)
	}
	return out, rows.Err()
}

// Claim marks an open ticket as taken by an agent. It reports false when the
// ticket was already claimed or does not exist.
func (s *InboxStore) Claim(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE agent_inbox SET status = 'claimed', claimed_at = NOW()
		WHERE id = $1 AND status = 'open'
	`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
