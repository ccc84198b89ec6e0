// README: Flight search client; one GET per complete trip, no retries.
package flights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"tripchat/internal/workpool"
)

var ErrUpstreamStatus = errors.New("flight search returned non-200 status")

// StatusError carries the upstream status and a trimmed body.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", ErrUpstreamStatus, e.Status, e.Body)
}

func (e *StatusError) Is(target error) bool { return target == ErrUpstreamStatus }

type Service struct {
	baseURL string
	client  *http.Client
	pool    *workpool.Pool
	log     *zap.Logger
}

func NewService(baseURL string, pool *workpool.Pool, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		pool:    pool,
		log:     log,
	}
}

// Search asks the upstream for itineraries on isoDate. A non-200 answer is a
// *StatusError; an empty result is not an error.
func (s *Service) Search(ctx context.Context, originCode, destCode, isoDate string) ([]Itinerary, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("flight search url: %w", err)
	}
	q := u.Query()
	q.Set("origin", originCode)
	q.Set("destination", destCode)
	q.Set("departure_date", isoDate)
	u.RawQuery = q.Encode()

	var out []Itinerary
	err = s.pool.Do(ctx, "flight_search", func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("do request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		}
		var payload searchResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		out = payload.Itineraries
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("flight search",
		zap.String("origin", originCode),
		zap.String("destination", destCode),
		zap.String("date", isoDate),
		zap.Int("itineraries", len(out)),
	)
	return out, nil
}

// Lookup runs Search for q and turns the outcome into the user-facing reply.
func (s *Service) Lookup(ctx context.Context, q Query) string {
	its, err := s.Search(ctx, q.OriginCode, q.DestinationCode, q.Date)
	if err != nil {
		s.log.Warn("flight search failed", zap.String("origin", q.OriginCode), zap.String("destination", q.DestinationCode), zap.Error(err))
	}
	return Describe(q, its, err)
}
