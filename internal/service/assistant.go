// README: Assistant orchestrates one chat turn: classify, extract, search or prompt, or answer and escalate.
package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tripchat/internal/metrics"
	"tripchat/internal/modules/answer"
	"tripchat/internal/modules/flights"
	"tripchat/internal/modules/travel"
)

type CityResolver interface {
	Resolve(ctx context.Context, name string) (string, bool)
}

type FlightLookup interface {
	Lookup(ctx context.Context, q flights.Query) string
}

type Answerer interface {
	Answer(ctx context.Context, question string) answer.Result
}

type Kind string

const (
	KindFlight  Kind = "flight"
	KindPrompt  Kind = "prompt"
	KindAnswer  Kind = "answer"
	KindHandoff Kind = "handoff"
)

const (
	StatusHandoffRequested = "handoff_requested"
	StatusHandoffPending   = "handoff_pending"

	handoffMessage = "I'm connecting you with a live agent who can help with that. Please hold on."
)

// Request is one chat turn. Carried and State are whatever the client sent
// back from the previous reply; both are optional.
type Request struct {
	Text    string
	Carried travel.TravelInfo
	State   travel.State
}

// Reply fields are filled according to Kind: Response/State/Travel for
// flight and prompt replies, Question/Answer for answers, Message/Status for
// handoffs.
type Reply struct {
	Kind     Kind
	Response string
	State    travel.State
	Travel   travel.TravelInfo
	Question string
	Answer   string
	Message  string
	Status   string
}

type Assistant struct {
	pipeline *travel.Pipeline
	cities   CityResolver
	flights  FlightLookup
	answers  Answerer
	log      *zap.Logger
}

func NewAssistant(pipeline *travel.Pipeline, cities CityResolver, flightLookup FlightLookup, answers Answerer, log *zap.Logger) *Assistant {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assistant{pipeline: pipeline, cities: cities, flights: flightLookup, answers: answers, log: log}
}

func (a *Assistant) Reply(ctx context.Context, req Request) Reply {
	intent := travel.Classify(req.Text)
	var reply Reply
	switch {
	case intent == travel.IntentFlightQuery || req.State.InProgress():
		reply = a.flightPath(ctx, req, true)
	case intent == travel.IntentVague:
		reply = a.flightPath(ctx, req, false)
	default:
		// A general question that still names both ends of a trip is a flight query.
		fresh := a.pipeline.Scan(ctx, req.Text)
		if fresh.Origin != "" && fresh.Destination != "" {
			reply = a.flightPath(ctx, req, true)
		} else {
			reply = a.answerPath(ctx, req.Text)
		}
	}

	metrics.ChatRequests.WithLabelValues(string(reply.Kind)).Inc()
	a.log.Info("chat reply",
		zap.String("intent", string(intent)),
		zap.String("kind", string(reply.Kind)),
		zap.String("state", string(reply.State)),
	)
	return reply
}

func (a *Assistant) flightPath(ctx context.Context, req Request, useModel bool) Reply {
	res := a.pipeline.Run(ctx, travel.Turn{
		Message:  req.Text,
		Carried:  req.Carried,
		State:    req.State,
		UseModel: useModel,
	})
	info := res.Info
	if !info.Complete() {
		return Reply{Kind: KindPrompt, Response: travel.Prompt(info), State: res.State, Travel: info}
	}

	q := a.resolveCodes(ctx, info)
	return Reply{
		Kind:     KindFlight,
		Response: a.flights.Lookup(ctx, q),
		State:    travel.StateComplete,
		Travel:   info,
	}
}

// resolveCodes looks both cities up concurrently. An unresolved city is sent
// to the flight search under its literal name.
func (a *Assistant) resolveCodes(ctx context.Context, info travel.TravelInfo) flights.Query {
	q := flights.Query{Origin: info.Origin, Destination: info.Destination, Date: info.Date}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(2)
	g.Go(func() error {
		if code, ok := a.cities.Resolve(gctx, info.Origin); ok {
			q.OriginCode = code
		}
		return nil
	})
	g.Go(func() error {
		if code, ok := a.cities.Resolve(gctx, info.Destination); ok {
			q.DestinationCode = code
		}
		return nil
	})
	_ = g.Wait()

	if q.OriginCode == "" {
		a.log.Info("using city name as code", zap.String("city", info.Origin))
		q.OriginCode = info.Origin
	}
	if q.DestinationCode == "" {
		a.log.Info("using city name as code", zap.String("city", info.Destination))
		q.DestinationCode = info.Destination
	}
	return q
}

func (a *Assistant) answerPath(ctx context.Context, question string) Reply {
	res := a.answers.Answer(ctx, question)
	if !res.Escalated {
		return Reply{Kind: KindAnswer, Question: question, Answer: res.Answer}
	}
	status := StatusHandoffPending
	if res.Delivered {
		status = StatusHandoffRequested
	}
	return Reply{Kind: KindHandoff, Message: handoffMessage, Status: status}
}
