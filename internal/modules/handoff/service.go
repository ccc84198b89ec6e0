// README: Handoff service: fans an escalated question out to every configured agent channel.
package handoff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tripchat/internal/metrics"
	"tripchat/internal/workpool"
)

var (
	ErrNoChannels  = errors.New("no handoff channel configured")
	ErrUndelivered = errors.New("handoff not delivered to any channel")
)

type Service struct {
	channels []Channel
	pool     *workpool.Pool
	log      *zap.Logger
	now      func() time.Time
}

func NewService(channels []Channel, pool *workpool.Pool, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{channels: channels, pool: pool, log: log, now: time.Now}
}

// Escalate opens a ticket and posts it to every channel. The ticket counts as
// delivered when at least one channel accepts it; otherwise the returned error
// wraps ErrUndelivered and every channel failure.
func (s *Service) Escalate(ctx context.Context, question, modelAnswer string) (Ticket, error) {
	ticket := NewTicket(question, modelAnswer, s.now())
	if len(s.channels) == 0 {
		metrics.Handoffs.WithLabelValues("unconfigured").Inc()
		s.log.Warn("handoff requested but no channel configured", zap.String("ticket", ticket.ID.String()))
		return ticket, ErrNoChannels
	}

	var errs []error
	delivered := 0
	for _, ch := range s.channels {
		err := s.pool.Do(ctx, "handoff_"+ch.Name(), func(ctx context.Context) error {
			return ch.Post(ctx, ticket)
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name(), err))
			s.log.Error("handoff channel failed", zap.String("channel", ch.Name()), zap.String("ticket", ticket.ID.String()), zap.Error(err))
			continue
		}
		delivered++
	}

	if delivered == 0 {
		metrics.Handoffs.WithLabelValues("failed").Inc()
		return ticket, errors.Join(append([]error{ErrUndelivered}, errs...)...)
	}
	metrics.Handoffs.WithLabelValues("delivered").Inc()
	s.log.Info("handoff delivered",
		zap.String("ticket", ticket.ID.String()),
		zap.Int("channels", delivered),
		zap.Int("failed", len(errs)),
	)
	return ticket, nil
}
