package ai

import (
	"context"

	"tripchat/internal/workpool"
)

// pooledProvider routes every completion through the shared outbound pool.
type pooledProvider struct {
	next LLMProvider
	pool *workpool.Pool
}

// WithPool wraps p so completions take a worker slot and honour the pool's call timeout.
func WithPool(p LLMProvider, pool *workpool.Pool) LLMProvider {
	return &pooledProvider{next: p, pool: pool}
}

func (p *pooledProvider) Name() string {
	return p.next.Name()
}

func (p *pooledProvider) Complete(ctx context.Context, prompt string) (string, error) {
	var out string
	err := p.pool.Do(ctx, "llm", func(ctx context.Context) error {
		var err error
		out, err = p.next.Complete(ctx, prompt)
		return err
	})
	return out, err
}
