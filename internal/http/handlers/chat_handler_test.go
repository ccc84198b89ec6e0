package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripchat/internal/modules/travel"
	"tripchat/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type recordingAssistant struct {
	reply service.Reply
	got   []service.Request
}

func (r *recordingAssistant) Reply(ctx context.Context, req service.Request) service.Reply {
	r.got = append(r.got, req)
	return r.reply
}

func serveChat(t *testing.T, a Assistant, target string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.GET("/chat", NewChatHandler(a, 0).Chat)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestChat_MissingMessage(t *testing.T) {
	a := &recordingAssistant{}
	for _, target := range []string{"/chat", "/chat?message=", "/chat?message=%20%20"} {
		w := serveChat(t, a, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Equal(t, "missing message", decode(t, w)["error"])
	}
	assert.Empty(t, a.got)
}

func TestChat_QuestionParamAccepted(t *testing.T) {
	a := &recordingAssistant{reply: service.Reply{Kind: service.KindAnswer, Question: "What is your baggage policy?", Answer: "23kg."}}
	w := serveChat(t, a, "/chat?question=What+is+your+baggage+policy%3F")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"question": "What is your baggage policy?", "answer": "23kg."}, decode(t, w))
	require.Len(t, a.got, 1)
	assert.Equal(t, "What is your baggage policy?", a.got[0].Text)
}

func TestChat_CarriedStateForwarded(t *testing.T) {
	a := &recordingAssistant{reply: service.Reply{
		Kind:     service.KindPrompt,
		Response: "When would you like to travel?",
		State:    travel.StateAwaitingDate,
		Travel:   travel.TravelInfo{Origin: "Paris", Destination: "Rome"},
	}}
	w := serveChat(t, a, "/chat?message=Paris&destination=Rome&state=awaiting_origin")

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, a.got, 1)
	assert.Equal(t, travel.StateAwaitingOrigin, a.got[0].State)
	assert.Equal(t, travel.TravelInfo{Destination: "Rome"}, a.got[0].Carried)

	body := decode(t, w)
	assert.Equal(t, "When would you like to travel?", body["response"])
	assert.Equal(t, "awaiting_date", body["state"])
	assert.Equal(t, map[string]any{"origin": "Paris", "destination": "Rome"}, body["travel"])
}

func TestChat_HandoffShape(t *testing.T) {
	a := &recordingAssistant{reply: service.Reply{Kind: service.KindHandoff, Message: "connecting", Status: service.StatusHandoffPending}}
	w := serveChat(t, a, "/chat?message=help")
	assert.Equal(t, map[string]any{"message": "connecting", "status": "handoff_pending"}, decode(t, w))
}

func TestChat_RejectsBadCarriedFields(t *testing.T) {
	a := &recordingAssistant{}

	w := serveChat(t, a, "/chat?message=hi&state=dancing")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid state", decode(t, w)["error"])

	w = serveChat(t, a, "/chat?message=hi&date=next+tuesday")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "date must be YYYY-MM-DD", decode(t, w)["error"])

	assert.Empty(t, a.got)
}
