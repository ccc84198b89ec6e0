// README: General-question answers grounded in FAQ content, escalated to a live agent when the model dodges.
package answer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tripchat/internal/ai"
	"tripchat/internal/modules/faq"
	"tripchat/internal/modules/handoff"
)

// Escalator hands a question to a human.
type Escalator interface {
	Escalate(ctx context.Context, question, modelAnswer string) (handoff.Ticket, error)
}

type Result struct {
	Question  string
	Answer    string
	Escalated bool
	// Delivered reports whether the escalation reached at least one agent channel.
	Delivered bool
	TicketID  string
}

type Service struct {
	llm       ai.LLMProvider
	faq       faq.Provider
	escalator Escalator
	log       *zap.Logger
}

// NewService wires the answer path. faq and escalator may be nil.
func NewService(llm ai.LLMProvider, content faq.Provider, escalator Escalator, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{llm: llm, faq: content, escalator: escalator, log: log}
}

func (s *Service) Answer(ctx context.Context, question string) Result {
	res := Result{Question: question}

	var content string
	if s.faq != nil {
		c, err := s.faq.Load(ctx)
		if err != nil {
			s.log.Warn("faq content unavailable", zap.Error(err))
		}
		content = c
	}

	reply, err := s.llm.Complete(ctx, buildPrompt(content, question))
	if err != nil {
		s.log.Warn("general answer failed", zap.String("provider", s.llm.Name()), zap.Error(err))
		reply = ""
	}
	res.Answer = strings.TrimSpace(reply)
	if !IsEvasive(res.Answer) {
		return res
	}

	res.Escalated = true
	if s.escalator == nil {
		s.log.Warn("evasive answer but no escalator configured", zap.String("question", question))
		return res
	}
	ticket, err := s.escalator.Escalate(ctx, question, res.Answer)
	res.TicketID = ticket.ID.String()
	res.Delivered = err == nil
	if err != nil {
		s.log.Error("handoff failed", zap.String("ticket", res.TicketID), zap.Error(err))
	}
	return res
}

const persona = `You are a friendly travel assistant for an online flight booking service.
Answer the customer's question in a few short sentences.
Use the company information below when it is relevant. If the answer is not covered and you are unsure, say "I'm not sure".`

func buildPrompt(content, question string) string {
	var b strings.Builder
	b.WriteString(persona)
	if strings.TrimSpace(content) != "" {
		fmt.Fprintf(&b, "\n\nCompany information:\n%s", content)
	}
	fmt.Fprintf(&b, "\n\nCustomer question: %s", question)
	return b.String()
}

var evasivePhrases = []string{
	"i don't know",
	"i do not know",
	"i'm not sure",
	"i am not sure",
	"not sure",
	"i cannot",
	"i can't help",
	"i can't answer",
	"i'm unable",
	"i am unable",
	"unable to",
	"don't have information",
	"do not have information",
	"don't have access",
	"contact customer support",
	"contact customer service",
	"reach out to customer",
	"as an ai",
	"as a language model",
}

// IsEvasive reports whether an answer is empty or dodges the question.
func IsEvasive(answer string) bool {
	a := strings.ToLower(strings.TrimSpace(answer))
	if a == "" {
		return true
	}
	a = strings.ReplaceAll(a, "’", "'")
	for _, p := range evasivePhrases {
		if strings.Contains(a, p) {
			return true
		}
	}
	return false
}
