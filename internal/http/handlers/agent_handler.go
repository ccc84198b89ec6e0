// README: Agent inbox handler: lists open handoff tickets and lets an agent claim one.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripchat/internal/modules/handoff"
)

const (
	defaultInboxLimit = 20
	maxInboxLimit     = 100
)

type Inbox interface {
	Open(ctx context.Context, limit int) ([]handoff.Ticket, error)
	Claim(ctx context.Context, id uuid.UUID) (bool, error)
}

type AgentHandler struct {
	inbox Inbox
}

func NewAgentHandler(inbox Inbox) *AgentHandler {
	return &AgentHandler{inbox: inbox}
}

type ticketResponse struct {
	ID          string    `json:"id"`
	Question    string    `json:"question"`
	ModelAnswer string    `json:"model_answer"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// List handles GET /agent/inbox.
func (h *AgentHandler) List(c *gin.Context) {
	limit, err := parseLimit(c.Query("limit"), defaultInboxLimit, maxInboxLimit)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	tickets, err := h.inbox.Open(c.Request.Context(), limit)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]ticketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, ticketResponse{
			ID:          t.ID.String(),
			Question:    t.Question,
			ModelAnswer: t.ModelAnswer,
			Status:      string(t.Status),
			CreatedAt:   t.CreatedAt,
		})
	}
	writeJSON(c, http.StatusOK, gin.H{"tickets": out})
}

// Claim handles POST /agent/inbox/:id/claim.
func (h *AgentHandler) Claim(c *gin.Context) {
	id, ok := parseTicketID(c.Param("id"))
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid ticket id")
		return
	}
	claimed, err := h.inbox.Claim(c.Request.Context(), id)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	if !claimed {
		writeError(c, http.StatusConflict, "ticket not found or already claimed")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"id": id.String(), "status": string(handoff.StatusClaimed)})
}
