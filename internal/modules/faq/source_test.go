package faq

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const samplePage = `<!doctype html>
<html><head><title>Help</title><style>p { color: red }</style></head>
<body>
  <nav><a href="/">Home</a></nav>
  <h1>Frequently asked   questions</h1>
  <p>You can cancel any booking up to <b>24 hours</b> before departure.</p>
  <ul>
    <li>Checked bag: 23kg</li>
    <li><p>Carry-on: 7kg</p></li>
  </ul>
  <script>var tracking = "ignore me";</script>
</body></html>`

func TestVisibleText(t *testing.T) {
	got, err := VisibleText(strings.NewReader(samplePage))
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"Frequently asked questions",
		"You can cancel any booking up to 24 hours before departure.",
		"Checked bag: 23kg",
		"Carry-on: 7kg",
	}, "\n"), got)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"faqs":[
		{"question":"Can I change my flight?","answer":"Yes, for a fee."},
		{"question":"","answer":"orphan"},
		{"question":"Do you sell insurance?","answer":"Not yet."}
	]}`), 0o600))

	got, err := FileSource{Path: path}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Q: Can I change my flight?\nA: Yes, for a fee.\n\nQ: Do you sell insurance?\nA: Not yet.", got)

	_, err = FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}.Load(context.Background())
	assert.Error(t, err)
}

func TestSiteScraper_SkipsFailedPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	s := NewSiteScraper([]string{srv.URL + "/broken", srv.URL + "/faq"}, nil, zaptest.NewLogger(t))
	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Contains(t, got, "Checked bag: 23kg")

	s = NewSiteScraper([]string{srv.URL + "/broken"}, nil, zaptest.NewLogger(t))
	_, err = s.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoContent)
}

type staticProvider struct {
	text string
	err  error
}

func (s staticProvider) Load(ctx context.Context) (string, error) { return s.text, s.err }

func TestFirstOf(t *testing.T) {
	got, err := FirstOf(staticProvider{err: os.ErrNotExist}, staticProvider{text: " "}, staticProvider{text: "faq"}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "faq", got)

	_, err = FirstOf(staticProvider{err: os.ErrNotExist}).Load(context.Background())
	assert.ErrorIs(t, err, ErrNoContent)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = FirstOf().Load(context.Background())
	assert.ErrorIs(t, err, ErrNoContent)
}
