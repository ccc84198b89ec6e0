// README: Live-agent handoff tickets and their rendering for agent channels.
package handoff

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusOpen    Status = "open"
	StatusClaimed Status = "claimed"
)

type Ticket struct {
	ID          uuid.UUID
	Question    string
	ModelAnswer string
	Status      Status
	CreatedAt   time.Time
	ClaimedAt   *time.Time
}

func NewTicket(question, modelAnswer string, now time.Time) Ticket {
	return Ticket{
		ID:          uuid.New(),
		Question:    strings.TrimSpace(question),
		ModelAnswer: strings.TrimSpace(modelAnswer),
		Status:      StatusOpen,
		CreatedAt:   now.UTC(),
	}
}

// Format renders the ticket as the message posted into an agent inbox.
func Format(t Ticket) string {
	answer := t.ModelAnswer
	if answer == "" {
		answer = "(no answer generated)"
	}
	return fmt.Sprintf("New customer question needs a live agent\nTicket: %s\nReceived: %s\n\nQuestion: %s\nAssistant draft: %s",
		t.ID, t.CreatedAt.Format(time.RFC3339), t.Question, answer)
}
