// README: City-code resolution against the remote lookup API, memoized in-process.
package cities

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

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"tripchat/internal/workpool"
)

var ErrUpstreamStatus = errors.New("city lookup returned non-200 status")

// Canonicalizer rewrites a free-text place name to the name the lookup API knows.
type Canonicalizer interface {
	Canonicalize(ctx context.Context, place string) (string, bool, error)
}

type record struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type Service struct {
	baseURL string
	client  *http.Client
	pool    *workpool.Pool
	canon   Canonicalizer
	memo    *cache.Cache
	log     *zap.Logger
}

type Option func(*Service)

func WithHTTPClient(c *http.Client) Option { return func(s *Service) { s.client = c } }

func WithPool(p *workpool.Pool) Option { return func(s *Service) { s.pool = p } }

func WithCanonicalizer(c Canonicalizer) Option { return func(s *Service) { s.canon = c } }

// WithMemoTTL sets how long resolved codes are remembered.
func WithMemoTTL(ttl time.Duration) Option {
	return func(s *Service) { s.memo = cache.New(ttl, 2*ttl) }
}

func NewService(baseURL string, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		memo:    cache.New(6*time.Hour, 30*time.Minute),
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve returns the airport/city code for name. Every failure mode (no
// match, bad status, transport error) is logged and reported as ("", false);
// callers fall back to the literal name.
func (s *Service) Resolve(ctx context.Context, name string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return "", false
	}
	if v, ok := s.memo.Get(key); ok {
		return v.(string), true
	}

	query := s.canonicalize(ctx, name)
	code, err := s.lookup(ctx, query)
	if err != nil {
		s.log.Warn("city lookup failed", zap.String("city", name), zap.String("query", query), zap.Error(err))
		return "", false
	}
	if code == "" {
		s.log.Info("city unresolved", zap.String("city", name), zap.String("query", query))
		return "", false
	}
	s.memo.SetDefault(key, code)
	return code, true
}

func (s *Service) canonicalize(ctx context.Context, name string) string {
	if s.canon == nil {
		return name
	}
	var canonical string
	err := s.pool.Do(ctx, "geocode", func(ctx context.Context) error {
		c, ok, err := s.canon.Canonicalize(ctx, name)
		if ok {
			canonical = c
		}
		return err
	})
	if err != nil {
		s.log.Debug("canonicalize failed", zap.String("city", name), zap.Error(err))
	}
	if canonical == "" {
		return name
	}
	return canonical
}

func (s *Service) lookup(ctx context.Context, query string) (string, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return "", fmt.Errorf("city lookup url: %w", err)
	}
	q := u.Query()
	q.Set("query", query)
	u.RawQuery = q.Encode()

	var code string
	err = s.pool.Do(ctx, "city_lookup", func(ctx context.Context) error {
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
			return fmt.Errorf("%w: %d %s", ErrUpstreamStatus, resp.StatusCode, strings.TrimSpace(string(body)))
		}
		var records []record
		if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		if len(records) > 0 {
			code = strings.TrimSpace(records[0].Code)
		}
		return nil
	})
	return code, err
}
