// README: Extraction pipeline: patterns first, the model only when fields are still missing.
package travel

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"tripchat/internal/metrics"
)

// Turn is one user message plus whatever the caller carried from earlier turns.
type Turn struct {
	Message  string
	Carried  TravelInfo
	State    State
	UseModel bool
}

type Result struct {
	Info      TravelInfo
	State     State
	UsedModel bool
}

type Pipeline struct {
	patterns Extractor
	model    Extractor
	now      func() time.Time
	log      *zap.Logger
}

// NewPipeline wires the stages. model may be nil, which disables the fallback.
func NewPipeline(patterns, model Extractor, now func() time.Time, log *zap.Logger) *Pipeline {
	if patterns == nil {
		patterns = NewPatternExtractor()
	}
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{patterns: patterns, model: model, now: now, log: log}
}

func (p *Pipeline) Run(ctx context.Context, turn Turn) Result {
	ref := p.now()
	cands := p.patterns.Extract(ctx, turn.Message)
	info := p.finish(cands, turn, ref)
	stage := "pattern"

	usedModel := false
	if !info.Complete() && turn.UseModel && p.model != nil {
		extra := p.model.Extract(ctx, turn.Message)
		usedModel = true
		stage = "model"
		if !extra.Empty() {
			cands = cands.Merge(extra)
			info = p.finish(cands, turn, ref)
		}
	}

	metrics.ExtractionStages.WithLabelValues(stage, strconv.FormatBool(info.Complete())).Inc()
	p.log.Debug("travel extraction",
		zap.String("stage", stage),
		zap.String("origin", info.Origin),
		zap.String("destination", info.Destination),
		zap.String("date", info.Date),
		zap.String("date_raw", info.DateRaw),
	)
	return Result{Info: info, State: NextState(info), UsedModel: usedModel}
}

// Scan runs only the pattern stage over message, with no carried state, and
// records nothing. It answers "does this message name a trip?" without
// counting as an extraction.
func (p *Pipeline) Scan(ctx context.Context, message string) TravelInfo {
	return Resolve(p.patterns.Extract(ctx, message), message, p.now())
}

func (p *Pipeline) finish(cands Candidates, turn Turn, ref time.Time) TravelInfo {
	fresh := Resolve(cands, turn.Message, ref)
	info := combine(turn.Carried, fresh)
	// A message that names a city in any role is not a bare reply.
	if fresh.Origin == "" && fresh.Destination == "" {
		info = ApplyReply(turn.State, info, turn.Message, ref)
	}
	return info
}
