// README: Live Gemini checks; skipped unless GEMINI_API_KEY is available (env or a .env up the tree).
package ai

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
)

func TestGeminiExtractionRoundTrip(t *testing.T) {
	loadDotEnv(t)
	key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if key == "" {
		t.Skip("GEMINI_API_KEY not set; skipping live Gemini test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	provider, err := NewGeminiProvider(ctx, key, "")
	require.NoError(t, err)
	t.Cleanup(provider.Close)

	reply, err := provider.Complete(ctx, `Extract travel information from this text: "fly me from lisbon to oslo on 2030-03-14".
Return only JSON with fields origin, destination and date (YYYY-MM-DD); use null for anything missing.`)
	require.NoError(t, err)
	t.Logf("[TEST LOG] raw reply: %s", reply)

	out, err := ParseTravelExtraction(reply)
	require.NoError(t, err)
	require.NotNil(t, out.Destination)
	require.Contains(t, strings.ToLower(*out.Destination), "oslo")
}

func loadDotEnv(t *testing.T) {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		return
	}
	for i := 0; i < 8; i++ {
		candidate := filepath.Join(dir, ".env")
		if _, err := os.Stat(candidate); err == nil {
			// godotenv.Load never overrides variables that are already set.
			_ = godotenv.Load(candidate)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
