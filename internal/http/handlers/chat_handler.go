// README: Chat handler (GET /chat): one assistant turn per request, state carried in the query string.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tripchat/internal/modules/travel"
	"tripchat/internal/service"
)

type Assistant interface {
	Reply(ctx context.Context, req service.Request) service.Reply
}

type ChatHandler struct {
	assistant Assistant
	timeout   time.Duration
}

// NewChatHandler bounds each turn by timeout; zero leaves only the request context.
func NewChatHandler(assistant Assistant, timeout time.Duration) *ChatHandler {
	return &ChatHandler{assistant: assistant, timeout: timeout}
}

type travelResponse struct {
	Response string            `json:"response"`
	State    travel.State      `json:"state"`
	Travel   travel.TravelInfo `json:"travel"`
}

type answerResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type handoffResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Chat handles GET /chat?message=...
//
// The previous reply's state and travel fields may be sent back as
// state, origin, destination and date to continue a conversation.
func (h *ChatHandler) Chat(c *gin.Context) {
	text := query(c, "message", "question")
	if text == "" {
		writeError(c, http.StatusBadRequest, "missing message")
		return
	}

	state, err := travel.ParseState(c.Query("state"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid state")
		return
	}
	date := query(c, "date")
	if date != "" && !travel.IsISODate(date) {
		writeError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	reply := h.assistant.Reply(ctx, service.Request{
		Text: text,
		Carried: travel.TravelInfo{
			Origin:      query(c, "origin"),
			Destination: query(c, "destination"),
			Date:        date,
		},
		State: state,
	})
	writeJSON(c, http.StatusOK, replyBody(reply))
}

func replyBody(r service.Reply) any {
	switch r.Kind {
	case service.KindAnswer:
		return answerResponse{Question: r.Question, Answer: r.Answer}
	case service.KindHandoff:
		return handoffResponse{Message: r.Message, Status: r.Status}
	default:
		return travelResponse{Response: r.Response, State: r.State, Travel: r.Travel}
	}
}
