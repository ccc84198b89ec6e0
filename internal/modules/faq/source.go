// README: FAQ content sources: marketing-site scraper and cached JSON file.
package faq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"tripchat/internal/workpool"
)

var ErrNoContent = errors.New("no faq content available")

// Provider supplies FAQ text to ground general answers.
type Provider interface {
	Load(ctx context.Context) (string, error)
}

type Entry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FileSource reads {"faqs":[{"question","answer"}]} from disk.
type FileSource struct {
	Path string
}

func (f FileSource) Load(ctx context.Context) (string, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("read faq file: %w", err)
	}
	var doc struct {
		FAQs []Entry `json:"faqs"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("parse faq file: %w", err)
	}
	return FormatEntries(doc.FAQs), nil
}

func FormatEntries(entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		q, a := strings.TrimSpace(e.Question), strings.TrimSpace(e.Answer)
		if q == "" || a == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Q: %s\nA: %s", q, a)
	}
	return b.String()
}

// SiteScraper pulls the visible headings, paragraphs and list items from a set of pages.
type SiteScraper struct {
	urls   []string
	client *http.Client
	pool   *workpool.Pool
	log    *zap.Logger
}

func NewSiteScraper(urls []string, pool *workpool.Pool, log *zap.Logger) *SiteScraper {
	if log == nil {
		log = zap.NewNop()
	}
	return &SiteScraper{
		urls:   urls,
		client: &http.Client{Timeout: 30 * time.Second},
		pool:   pool,
		log:    log,
	}
}

// Load scrapes every page. Pages that fail are skipped; it only errors when
// no page produced any text.
func (s *SiteScraper) Load(ctx context.Context) (string, error) {
	var sections []string
	for _, u := range s.urls {
		text, err := s.scrape(ctx, u)
		if err != nil {
			s.log.Warn("faq scrape failed", zap.String("url", u), zap.Error(err))
			continue
		}
		if text != "" {
			sections = append(sections, text)
		}
	}
	if len(sections) == 0 {
		return "", ErrNoContent
	}
	return strings.Join(sections, "\n\n"), nil
}

func (s *SiteScraper) scrape(ctx context.Context, pageURL string) (string, error) {
	var text string
	err := s.pool.Do(ctx, "faq_scrape", func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", "tripchat-faq/1.0")
		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("do request: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		text, err = VisibleText(io.LimitReader(resp.Body, 2<<20))
		return err
	})
	return text, err
}

var textElements = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "li": true, "dt": true, "dd": true,
}

var skipElements = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true, "svg": true,
}

// VisibleText returns one line per heading, paragraph or list item.
func VisibleText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	var lines []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if skipElements[n.Data] {
				return
			}
			if textElements[n.Data] {
				if line := collapse(nodeText(n)); line != "" {
					lines = append(lines, line)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.Join(lines, "\n"), nil
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
			b.WriteByte(' ')
		case n.Type == html.ElementNode && skipElements[n.Data]:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FirstOf tries each provider in order and returns the first non-empty content.
func FirstOf(providers ...Provider) Provider {
	return chain(providers)
}

type chain []Provider

func (c chain) Load(ctx context.Context) (string, error) {
	var errs []error
	for _, p := range c {
		text, err := p.Load(ctx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if strings.TrimSpace(text) != "" {
			return text, nil
		}
	}
	if len(errs) > 0 {
		return "", errors.Join(append([]error{ErrNoContent}, errs...)...)
	}
	return "", ErrNoContent
}
