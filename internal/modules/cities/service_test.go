package cities

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"tripchat/internal/workpool"
)

func newLookupServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("query") {
		case "Paris":
			_, _ = w.Write([]byte(`[{"code":"PAR","name":"Paris"},{"code":"PRX","name":"Paris, TX"}]`))
		case "New York":
			_, _ = w.Write([]byte(`[{"code":"NYC","name":"New York"}]`))
		case "Boom":
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`upstream down`))
		case "Garbled":
			_, _ = w.Write([]byte(`{"not":"an array"}`))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestResolve_FirstMatch(t *testing.T) {
	var hits int32
	srv := newLookupServer(t, &hits)
	svc := NewService(srv.URL, zaptest.NewLogger(t), WithPool(workpool.New(2, time.Second)))

	code, ok := svc.Resolve(context.Background(), "Paris")
	assert.True(t, ok)
	assert.Equal(t, "PAR", code)
}

func TestResolve_Unresolved(t *testing.T) {
	var hits int32
	srv := newLookupServer(t, &hits)
	svc := NewService(srv.URL, zaptest.NewLogger(t))

	for _, name := range []string{"Atlantis", "Boom", "Garbled", "  "} {
		code, ok := svc.Resolve(context.Background(), name)
		assert.False(t, ok, name)
		assert.Empty(t, code, name)
	}
}

func TestResolve_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	svc := NewService(srv.URL, zaptest.NewLogger(t))

	_, ok := svc.Resolve(context.Background(), "Paris")
	assert.False(t, ok)
}

func TestResolve_MemoizesHits(t *testing.T) {
	var hits int32
	srv := newLookupServer(t, &hits)
	svc := NewService(srv.URL, zaptest.NewLogger(t))

	for i := 0; i < 3; i++ {
		code, ok := svc.Resolve(context.Background(), "Paris")
		assert.True(t, ok)
		assert.Equal(t, "PAR", code)
	}
	_, _ = svc.Resolve(context.Background(), "paris ")
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	// Misses are not remembered.
	svc.Resolve(context.Background(), "Atlantis")
	svc.Resolve(context.Background(), "Atlantis")
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

type stubCanon struct {
	names map[string]string
	err   error
}

func (s stubCanon) Canonicalize(ctx context.Context, place string) (string, bool, error) {
	if s.err != nil {
		return "", false, s.err
	}
	v, ok := s.names[place]
	return v, ok, nil
}

func TestResolve_Canonicalizer(t *testing.T) {
	var hits int32
	srv := newLookupServer(t, &hits)
	svc := NewService(srv.URL, zaptest.NewLogger(t), WithCanonicalizer(stubCanon{names: map[string]string{"Nyc": "New York"}}))

	code, ok := svc.Resolve(context.Background(), "Nyc")
	assert.True(t, ok)
	assert.Equal(t, "NYC", code)
}

func TestResolve_CanonicalizerFailureUsesLiteral(t *testing.T) {
	var hits int32
	srv := newLookupServer(t, &hits)
	svc := NewService(srv.URL, zaptest.NewLogger(t), WithCanonicalizer(stubCanon{err: errors.New("quota")}))

	code, ok := svc.Resolve(context.Background(), "Paris")
	assert.True(t, ok)
	assert.Equal(t, "PAR", code)
}
